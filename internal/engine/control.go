package engine

import (
	"github.com/valpere/eztrans/internal/native"
)

// The setters below expose the engine's tuning exports. None of them is
// required for translation; each fails with native.ErrSymbolUnresolved when
// the installed engine lacks it. Return values are the engine's raw codes.

// SetField selects the subject-area dictionary used for translation.
func (e *Engine) SetField(field int) (int, error) {
	return e.callInt(native.SetField, uintptr(field))
}

func (e *Engine) SetProperty(key, value int) (int, error) {
	return e.callInt(native.SetProperty, uintptr(key), uintptr(value))
}

func (e *Engine) Property(key int) (int, error) {
	return e.callInt(native.GetProperty, uintptr(key))
}

// ReloadUserDict makes the engine re-read the user dictionary from disk.
func (e *Engine) ReloadUserDict() (int, error) {
	return e.callInt(native.ReloadUserDict)
}

func (e *Engine) StopTranslation() (int, error) {
	return e.callInt(native.StopTranslation)
}

// SetDelJPN toggles removal of untranslated Japanese from the output.
func (e *Engine) SetDelJPN(on bool) (int, error) {
	return e.callInt(native.SetDelJPN, flag(on))
}

// SetHanjaToHangul toggles rendering of Hanja as Hangul.
func (e *Engine) SetHanjaToHangul(on bool) (int, error) {
	return e.callInt(native.SetHnj2han, flag(on))
}

func (e *Engine) SetJWin(on bool) (int, error) {
	return e.callInt(native.SetJWin, flag(on))
}

func (e *Engine) PriorDict() (int, error) {
	return e.callInt(native.GetPriorDict)
}

func (e *Engine) SetPriorDict(name string) (int, error) {
	b, err := cString(name)
	if err != nil {
		return 0, err
	}
	pin := pinAll(b)
	defer pin.Unpin()
	return e.callInt(native.SetPriorDict, addr(b))
}

func (e *Engine) callInt(name string, args ...uintptr) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ready(); err != nil {
		return 0, err
	}
	proc, err := e.reg.Resolve(name)
	if err != nil {
		return 0, err
	}
	return int(int32(proc.Call(args...))), nil
}

func flag(on bool) uintptr {
	if on {
		return 1
	}
	return 0
}
