package engine

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/valpere/eztrans/internal/charset"
	"github.com/valpere/eztrans/internal/hangul"
	"github.com/valpere/eztrans/internal/native"
)

// Translate sends text to the engine and returns its translation. Engines
// with J2K_TranslateMMNTW get UTF-16; older ones get Shift_JIS and answer in
// EUC-KR. Text containing NUL is rejected because the engine would stop
// reading at it.
func (e *Engine) Translate(text string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ready(); err != nil {
		return "", err
	}
	if strings.IndexByte(text, 0) >= 0 {
		return "", fmt.Errorf("%w: input contains a NUL character", ErrInvalidString)
	}

	// J2K_FreeMem is resolved up front so a result is never left without a
	// way to release it.
	free, err := e.reg.Resolve(native.FreeMem)
	if err != nil {
		return "", err
	}

	if e.wide {
		return e.translateWide(text, free)
	}
	return e.translateNarrow(text, free)
}

// TranslateEscaped escapes Hangul and the characters the engine mishandles,
// translates, and reverses the escapes in the result. Text that needs no
// escaping goes to Translate as is.
func (e *Engine) TranslateEscaped(text string) (string, error) {
	if !hangul.NeedsEscape(text) {
		return e.Translate(text)
	}
	out, err := e.Translate(hangul.Escape(text))
	if err != nil {
		return "", err
	}
	return hangul.Unescape(out), nil
}

func (e *Engine) ready() error {
	switch e.state {
	case StateUnconstructed:
		return ErrNotConstructed
	case StateConstructed:
		return ErrNotInitialized
	case StateTerminated:
		return ErrTerminated
	}
	return nil
}

func (e *Engine) translateWide(text string, free native.Proc) (string, error) {
	proc, err := e.reg.Resolve(native.TranslateMMNTW)
	if err != nil {
		return "", err
	}

	in := append(utf16.Encode([]rune(text)), 0)
	var pin runtime.Pinner
	pin.Pin(&in[0])
	ret := proc.Call(0, addr16(in))
	pin.Unpin()

	if ret == 0 {
		return "", ErrNullPointer
	}
	buf := &resultBuffer{ptr: ret, free: free}
	defer buf.release()

	units := buf.wide()
	if !validUTF16(units) {
		return "", fmt.Errorf("%w: unpaired surrogate in UTF-16 result", ErrDecodeFailed)
	}
	return string(utf16.Decode(units)), nil
}

func (e *Engine) translateNarrow(text string, free native.Proc) (string, error) {
	name, reserved := e.narrowMode.entry()
	proc, err := e.reg.Resolve(name)
	if err != nil {
		return "", err
	}

	encoded, err := charset.EncodeShiftJIS(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranslation, err)
	}
	in := append(encoded, 0)

	pin := pinAll(in)
	var ret uintptr
	if reserved {
		ret = proc.Call(0, addr(in))
	} else {
		ret = proc.Call(addr(in))
	}
	pin.Unpin()

	if ret == 0 {
		return "", ErrNullPointer
	}
	buf := &resultBuffer{ptr: ret, free: free}
	defer buf.release()

	out, err := charset.DecodeEUCKR(buf.narrow())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}
	return out, nil
}

func validUTF16(units []uint16) bool {
	for i := 0; i < len(units); i++ {
		if !utf16.IsSurrogate(rune(units[i])) {
			continue
		}
		if i+1 >= len(units) || utf16.DecodeRune(rune(units[i]), rune(units[i+1])) == unicode.ReplacementChar {
			return false
		}
		i++
	}
	return true
}
