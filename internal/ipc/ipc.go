// Package ipc connects a translator to a request/response channel. Each
// received text is translated and answered in order; failures are answered
// with an error string so the peer keeps its session.
package ipc

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/valpere/eztrans/internal/translator"
)

type Kind int

const (
	// Text carries a translation request.
	Text Kind = iota
	// Exit asks the server to stop.
	Exit
	// Error reports a broken channel. The server stops.
	Error
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Exit:
		return "exit"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Message struct {
	Kind Kind
	// Text is the request for Text and the failure description for Error.
	Text string
}

// Channel is the transport a Serve loop consumes.
type Channel interface {
	Receive() Message
	Send(data []byte) error
}

// Serve answers requests from ch until it reports Exit or Error. It returns
// nil on Exit, the channel failure on Error, and the send error if a reply
// cannot be delivered.
func Serve(ctx context.Context, ch Channel, tr translator.Translator, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	for n := 0; ; n++ {
		msg := ch.Receive()
		switch msg.Kind {
		case Exit:
			log.Info("channel closed", zap.Int("served", n))
			return nil
		case Error:
			log.Error("channel failed", zap.String("reason", msg.Text), zap.Int("served", n))
			return fmt.Errorf("%w: %s", ErrChannel, msg.Text)
		case Text:
		default:
			log.Warn("ignoring message", zap.Stringer("kind", msg.Kind))
			continue
		}

		reply, err := tr.Translate(ctx, msg.Text)
		if err != nil {
			log.Warn("translation failed", zap.Error(err), zap.Int("len", len(msg.Text)))
			reply = "Translation error: " + err.Error()
		}

		if err := ch.Send([]byte(reply)); err != nil {
			return fmt.Errorf("failed to send reply: %w", err)
		}
	}
}
