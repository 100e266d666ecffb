// internal/mail/log.go
//
// Log backend.  Records each message through zap and returns nil so the
// caller proceeds as if the relay accepted it.  Used in development and
// whenever SMTP credentials are absent.

package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
)

// LogMailer writes messages to the log instead of the network.
type LogMailer struct {
	from string
	log  *zap.SugaredLogger
}

// NewLog returns a LogMailer.  A nil log falls back to the request logger.
func NewLog(from string, log *zap.SugaredLogger) *LogMailer {
	return &LogMailer{from: from, log: log}
}

// Send logs the envelope and the plain-text body.
func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	l := m.log
	if l == nil {
		l = logger.FromContext(ctx)
	}
	l.Infow("mail (log backend)",
		"from", m.from,
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
		"html_len", len(msg.HTML),
	)
	return nil
}
