// Package hangul protects text the J2K engine cannot consume safely. Hangul,
// '@', NUL and a fixed table of symbols are rewritten as ASCII escapes of the
// form "+xHHHH" (Hangul, '@', NUL) or "+XHHHH" (symbols) before translation,
// and Unescape turns them back into the original characters afterwards.
//
// The escape carries exactly four hex digits, so it can only represent code
// points up to U+FFFF. Nothing above that range is in the escape set, which
// means such characters are always passed through untouched.
package hangul

import (
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// IsHangul reports whether r lies in one of the Hangul blocks: Jamo,
// Compatibility Jamo, Jamo Extended-A, Syllables and Jamo Extended-B.
func IsHangul(r rune) bool {
	switch {
	case r >= 0x1100 && r <= 0x11FF:
		return true
	case r >= 0x3130 && r <= 0x318F:
		return true
	case r >= 0xA960 && r <= 0xA97F:
		return true
	case r >= 0xAC00 && r <= 0xD7A3:
		return true
	case r >= 0xD7B0 && r <= 0xD7FF:
		return true
	}
	return false
}

// IsSymbol reports whether r is one of the special symbols escaped with the
// upper-case "+X" marker.
func IsSymbol(r rune) bool {
	return symbols.has(r)
}

func lowerMarked(r rune) bool {
	return r == '@' || r == 0 || IsHangul(r)
}

// NeedsEscape reports whether text contains at least one character Escape
// would rewrite.
func NeedsEscape(text string) bool {
	for _, r := range text {
		if lowerMarked(r) || IsSymbol(r) {
			return true
		}
	}
	return false
}

// Escape rewrites every character in the escape set as a marker followed by
// its code point in four upper-case hex digits. Other characters are copied
// unchanged.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)

	for _, r := range text {
		switch {
		case lowerMarked(r):
			writeEscape(&b, 'x', r)
		case IsSymbol(r):
			writeEscape(&b, 'X', r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func writeEscape(b *strings.Builder, marker byte, r rune) {
	b.WriteByte('+')
	b.WriteByte(marker)
	b.WriteByte(hexDigits[(r>>12)&0xF])
	b.WriteByte(hexDigits[(r>>8)&0xF])
	b.WriteByte(hexDigits[(r>>4)&0xF])
	b.WriteByte(hexDigits[r&0xF])
}

// Unescape reverses Escape. A "+x" or "+X" marker consumes up to four
// following characters; when they are four hex digits naming a valid scalar
// value the character is emitted, otherwise the marker and the consumed
// characters are written back verbatim. A '+' without a marker is literal.
func Unescape(text string) string {
	if !strings.Contains(text, "+") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	rs := []rune(text)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r != '+' || i+1 >= len(rs) || (rs[i+1] != 'x' && rs[i+1] != 'X') {
			b.WriteRune(r)
			continue
		}

		marker := rs[i+1]
		end := i + 2 + 4
		if end > len(rs) {
			end = len(rs)
		}
		digits := rs[i+2 : end]
		i = end - 1

		if decoded, ok := decodeHex(digits); ok {
			b.WriteRune(decoded)
			continue
		}
		b.WriteByte('+')
		b.WriteRune(marker)
		for _, d := range digits {
			b.WriteRune(d)
		}
	}
	return b.String()
}

func decodeHex(digits []rune) (rune, bool) {
	if len(digits) != 4 {
		return 0, false
	}
	var v rune
	for _, d := range digits {
		var n rune
		switch {
		case d >= '0' && d <= '9':
			n = d - '0'
		case d >= 'a' && d <= 'f':
			n = d - 'a' + 10
		case d >= 'A' && d <= 'F':
			n = d - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | n
	}
	// surrogate halves are not scalar values
	if v >= 0xD800 && v <= 0xDFFF {
		return 0, false
	}
	return v, true
}
