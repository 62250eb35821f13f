package translator

import (
	"context"

	"github.com/valpere/eztrans/internal/engine"
)

// Session is the part of *engine.Engine a Translator drives.
type Session interface {
	Translate(text string) (string, error)
	TranslateEscaped(text string) (string, error)
	SupportsWide() bool
	NarrowMode() engine.Mode
}

// EzTrans adapts an engine session to Translator.
type EzTrans struct {
	session Session
	escape  bool
}

// NewEzTrans wraps session. With escape set, Hangul and the symbols the
// engine mishandles are protected around each call.
func NewEzTrans(session Session, escape bool) *EzTrans {
	return &EzTrans{session: session, escape: escape}
}

// Name is "wide" or the narrow entry point, plus "+escape" when escaping.
func (t *EzTrans) Name() string {
	name := "wide"
	if !t.session.SupportsWide() {
		name = t.session.NarrowMode().String()
	}
	if t.escape {
		name += "+escape"
	}
	return name
}

// Translate runs one engine call. The engine cannot be interrupted, so ctx is
// only checked before the call starts.
func (t *EzTrans) Translate(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.escape {
		return t.session.TranslateEscaped(text)
	}
	return t.session.Translate(text)
}
