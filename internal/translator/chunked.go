package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/valpere/eztrans/internal/chunker"
)

// Chunked translates long text piece by piece through next. Blank pieces are
// copied through without a call.
type Chunked struct {
	next     Translator
	maxRunes int
}

func NewChunked(next Translator, maxRunes int) *Chunked {
	return &Chunked{next: next, maxRunes: maxRunes}
}

func (c *Chunked) Name() string { return c.next.Name() }

func (c *Chunked) Translate(ctx context.Context, text string) (string, error) {
	chunks := chunker.Chunk(text, c.maxRunes)
	if len(chunks) == 1 {
		return c.next.Translate(ctx, text)
	}

	var b strings.Builder
	for i, chunk := range chunks {
		if chunker.IsBlank(chunk) {
			b.WriteString(chunk)
			continue
		}
		out, err := c.next.Translate(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("chunk %d of %d: %w", i+1, len(chunks), err)
		}
		b.WriteString(out)
	}
	return b.String(), nil
}
