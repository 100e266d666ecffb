// internal/mail/mail.go
//
// Outbound mail collaborator.
//
// Context
//   The intake pipeline and the newsletter flow hand a Message to a Mailer
//   and treat any returned error as a delivery failure.  Two backends
//   exist: SMTP for production and a log backend that records the payload
//   through zap.  An SMTP relay without credentials is dialled without
//   AUTH; only backend "log" or an smtp backend with no host logs instead.
//
//------------------------------------------------------------------------------

package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/config"
)

// Message is one outbound email.  HTML is optional; when present the mail
// is sent as multipart/alternative.
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the backend from cfg.  "smtp" with a host always dials the
// relay, authenticating only when a username is set.
func New(cfg config.Mail, log *zap.SugaredLogger) Mailer {
	if cfg.Backend == "smtp" && cfg.Host != "" {
		log.Infow("mail backend online", "backend", "smtp", "host", cfg.Host, "port", cfg.Port,
			"auth", cfg.Username != "")
		return NewSMTP(cfg)
	}
	if cfg.Backend == "smtp" {
		log.Warnw("smtp host missing, using log mail backend")
	}
	return NewLog(cfg.From, log)
}
