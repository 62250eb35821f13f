// Package charset converts between UTF-8 and the legacy encodings used by the
// engine's narrow entry points: Shift_JIS for input and EUC-KR for output.
package charset

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// ErrInvalidSequence is returned when legacy bytes do not form a valid
// sequence in the source encoding.
var ErrInvalidSequence = errors.New("invalid byte sequence")

// EncodeShiftJIS converts text to Shift_JIS. Characters with no Shift_JIS
// mapping are written as HTML numeric character references ("&#44032;").
func EncodeShiftJIS(text string) ([]byte, error) {
	enc := encoding.HTMLEscapeUnsupported(japanese.ShiftJIS.NewEncoder())
	out, _, err := transform.Bytes(enc, []byte(text))
	if err != nil {
		return nil, fmt.Errorf("shift_jis encode: %w", err)
	}
	return out, nil
}

// DecodeEUCKR converts EUC-KR bytes to UTF-8. Unlike the x/text decoder on its
// own, any byte sequence that does not decode cleanly is reported as an error
// instead of being replaced with U+FFFD.
func DecodeEUCKR(data []byte) (string, error) {
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return "", fmt.Errorf("euc-kr decode: %w", err)
	}
	for i := 0; i < len(out); {
		r, size := utf8.DecodeRune(out[i:])
		if r == utf8.RuneError {
			return "", fmt.Errorf("euc-kr decode: %w", ErrInvalidSequence)
		}
		i += size
	}
	return string(out), nil
}
