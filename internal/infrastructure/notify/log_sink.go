package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/ports"
)

// LogSink writes messages to the log instead of delivering them.
// Development only: the body carries the confirmation code.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Send(_ context.Context, msg ports.Message) error {
	s.log.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("body", msg.Body).
		Msg("outbound message")
	return nil
}
