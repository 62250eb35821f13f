// Package translator defines the translation interface the CLI and the IPC
// loop consume, and the decorators stacked on the engine.
package translator

import (
	"context"
)

// Translator turns Japanese text into Korean.
type Translator interface {
	// Name identifies the translation path. Results from translators with
	// different names are not interchangeable.
	Name() string
	Translate(ctx context.Context, text string) (string, error)
}

// Cache is the subset of store.Store used by Cached.
type Cache interface {
	Get(ctx context.Context, sourceText, mode string) (string, bool, error)
	Put(ctx context.Context, sourceText, mode, translated string) error
}
