// Package chunker splits long Japanese text into pieces the engine can take
// in one call. Splitting is lossless: concatenating the chunks gives back the
// original text, including every line break and space.
package chunker

import (
	"unicode"
)

// Chunk splits text into pieces of at most maxRunes code points. Splits are
// made, in order of preference, after:
//  1. a line break
//  2. sentence-ending punctuation (。！？ and their ASCII forms), together
//     with any closing brackets that follow it
//  3. whitespace
//  4. the maxRunes-th rune if no boundary is found
//
// If text fits, or maxRunes ≤ 0, a single-element slice is returned.
func Chunk(text string, maxRunes int) []string {
	runes := []rune(text)
	if maxRunes <= 0 || len(runes) <= maxRunes {
		return []string{text}
	}

	var chunks []string
	for len(runes) > maxRunes {
		n := split(runes[:maxRunes])
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}
	return chunks
}

// split returns how many runes of window go into the next chunk.
func split(window []rune) int {
	if i := lastIndex(window, isLineBreak); i >= 0 {
		return i + 1
	}
	if i := lastIndex(window, isSentenceEnd); i >= 0 {
		i++
		for i < len(window) && isCloser(window[i]) {
			i++
		}
		return i
	}
	if i := lastIndex(window, unicode.IsSpace); i >= 0 {
		return i + 1
	}
	return len(window)
}

// lastIndex returns the last index in rs matching f, or -1. Index 0 is never
// returned so every chunk makes progress past a leading boundary.
func lastIndex(rs []rune, f func(rune) bool) int {
	for i := len(rs) - 1; i > 0; i-- {
		if f(rs[i]) {
			return i
		}
	}
	if len(rs) > 0 && f(rs[0]) {
		return 0
	}
	return -1
}

func isLineBreak(r rune) bool { return r == '\n' }

func isSentenceEnd(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?', '…':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '」', '』', '）', '】', '〉', '》', ')', '"', '\'':
		return true
	}
	return false
}

// IsBlank reports whether s has nothing to translate.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
