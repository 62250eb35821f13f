package ipc

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

// ExitLine is the request line that ends a stream session.
const ExitLine = "exit"

// Stream frames messages as lines over a byte stream. Inside a payload a
// newline is written as `\n` and a backslash as `\\`. A line reading exactly
// ExitLine, or the end of input, ends the session.
type Stream struct {
	r *bufio.Reader

	mu sync.Mutex
	w  *bufio.Writer
}

func NewStream(r io.Reader, w io.Writer) *Stream {
	return &Stream{r: bufio.NewReader(r), w: bufio.NewWriter(w)}
}

func (s *Stream) Receive() Message {
	line, err := s.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return Message{Kind: Error, Text: err.Error()}
	}
	if err != nil && line == "" {
		return Message{Kind: Exit}
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if line == ExitLine {
		return Message{Kind: Exit}
	}
	return Message{Kind: Text, Text: unescapeLine(line)}
}

// Send writes data as one line and flushes it.
func (s *Stream) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.w.WriteString(escapeLine(string(data))); err != nil {
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

var lineEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

func escapeLine(s string) string {
	return lineEscaper.Replace(s)
}

// unescapeLine reverses escapeLine. A backslash before any other character,
// or at the end of the line, is kept as is.
func unescapeLine(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
			i++
		case '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
