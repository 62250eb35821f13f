package translator

import (
	"context"

	"go.uber.org/zap"
)

// Cached serves repeated requests from a translation memory. Cache failures
// are logged and never fail a translation.
type Cached struct {
	next  Translator
	cache Cache
	log   *zap.Logger
}

func NewCached(next Translator, cache Cache, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{next: next, cache: cache, log: log}
}

func (c *Cached) Name() string { return c.next.Name() }

func (c *Cached) Translate(ctx context.Context, text string) (string, error) {
	mode := c.next.Name()

	hit, found, err := c.cache.Get(ctx, text, mode)
	if err != nil {
		c.log.Warn("translation memory lookup failed", zap.Error(err))
	} else if found {
		c.log.Debug("translation memory hit", zap.String("mode", mode))
		return hit, nil
	}

	out, err := c.next.Translate(ctx, text)
	if err != nil {
		return "", err
	}

	if err := c.cache.Put(ctx, text, mode, out); err != nil {
		c.log.Warn("translation memory save failed", zap.Error(err))
	}
	return out, nil
}
