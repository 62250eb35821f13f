package engine

import (
	"fmt"
	"strings"

	"github.com/valpere/eztrans/internal/native"
)

// Mode selects the narrow translate entry point used when the wide one is
// unavailable.
type Mode int

const (
	// ModeMMNT is J2K_TranslateMMNT, the non-threaded general translator.
	ModeMMNT Mode = iota
	// ModeMM is J2K_TranslateMM.
	ModeMM
	// ModeMMEx is J2K_TranslateMMEx.
	ModeMMEx
	// ModeFM is J2K_TranslateFM.
	ModeFM
	// ModeChat is J2K_TranslateChat, tuned for conversational text.
	ModeChat
)

func (m Mode) String() string {
	switch m {
	case ModeMMNT:
		return "mmnt"
	case ModeMM:
		return "mm"
	case ModeMMEx:
		return "mmex"
	case ModeFM:
		return "fm"
	case ModeChat:
		return "chat"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a mode name (case-insensitive) to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mmnt":
		return ModeMMNT, nil
	case "mm":
		return ModeMM, nil
	case "mmex":
		return ModeMMEx, nil
	case "fm":
		return ModeFM, nil
	case "chat":
		return ModeChat, nil
	}
	return 0, fmt.Errorf("unknown translate mode %q", name)
}

// entry returns the export name and whether it takes the leading reserved
// integer argument.
func (m Mode) entry() (string, bool) {
	switch m {
	case ModeMM:
		return native.TranslateMM, false
	case ModeMMEx:
		return native.TranslateMMEx, true
	case ModeFM:
		return native.TranslateFM, false
	case ModeChat:
		return native.TranslateChat, false
	default:
		return native.TranslateMMNT, true
	}
}
