// internal/membership/service.go
//
// Application intake pipeline.
//
// Workflow
//   1. Decode the JSON object body.
//   2. Validate required fields, email, expectation, and child age.
//   3. Refuse with a server error when no notification address is set.
//   4. Build the Q&A snapshot (explicit list or catalog-driven).
//   5. Persist the application and QA rows.
//   6. Send the office notification.  A failed send is reported but the
//      stored application stays.
//
//------------------------------------------------------------------------------

package membership

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/apperr"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/mail"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/metrics"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/question"
)

// Options tune a Service.
type Options struct {
	NotifyTo    string         // office address; empty means unconfigured
	MinChildAge int            // defaults to 4
	Location    *time.Location // for the "submitted at" stamp; defaults to time.Local
}

// Service runs the intake pipeline.
type Service struct {
	store  Store
	mailer mail.Mailer
	opts   Options
	now    func() time.Time
}

// NewService builds a Service.
func NewService(store Store, mailer mail.Mailer, opts Options) *Service {
	if opts.MinChildAge <= 0 {
		opts.MinChildAge = 4
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	opts.NotifyTo = strings.TrimSpace(opts.NotifyTo)
	return &Service{store: store, mailer: mailer, opts: opts, now: time.Now}
}

// Submit validates and stores one application and notifies the office.
// On mail failure it returns the stored id together with a
// *apperr.ServerError of kind MailDeliveryFailed.
func (s *Service) Submit(ctx context.Context, body []byte, meta RequestMeta, questions []question.Definition) (uint64, error) {
	id, err := s.submit(ctx, body, meta, questions)
	metrics.ApplicationsTotal.WithLabelValues(outcome(err)).Inc()
	return id, err
}

func (s *Service) submit(ctx context.Context, body []byte, meta RequestMeta, questions []question.Definition) (uint64, error) {
	log := logger.FromContext(ctx)

	p, err := decodePayload(body)
	if err != nil {
		return 0, err
	}
	app, err := validateFields(p, s.opts.MinChildAge)
	if err != nil {
		return 0, err
	}

	if s.opts.NotifyTo == "" {
		return 0, apperr.Server(apperr.Unconfigured, "Server is not configured with a destination email.", nil)
	}

	app.QASnapshot, err = buildSnapshot(app, p, questions)
	if err != nil {
		return 0, err
	}
	app.IP = meta.IP
	app.UserAgent = strings.TrimSpace(meta.UserAgent)
	app.CreatedAt = s.now().UTC()
	app.RawPayload = rawPayload(body)

	app.ID, err = s.store.Create(ctx, app, qaRows(app.QASnapshot))
	if err != nil {
		return 0, fmt.Errorf("store application: %w", err)
	}
	log.Infow("membership application stored", "id", app.ID, "qa_items", len(app.QASnapshot), "source", app.Source)

	msg, err := buildNotification(app, s.opts.NotifyTo, s.opts.Location)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		metrics.MailFailuresTotal.WithLabelValues("membership").Inc()
		log.Errorw("membership notification failed", "id", app.ID, "err", err)
		return app.ID, apperr.Server(apperr.MailDeliveryFailed, "Failed to send email.", err)
	}
	return app.ID, nil
}

// rawPayload keeps the submitted bytes for audit; an empty body is "{}".
func rawPayload(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage("{}")
	}
	return append(json.RawMessage(nil), body...)
}

// outcome labels the metrics counter.
func outcome(err error) string {
	switch {
	case err == nil:
		return "created"
	case apperr.IsKind(err, apperr.MailDeliveryFailed):
		return "mail_failed"
	case apperr.IsKind(err, apperr.Unconfigured):
		return "unconfigured"
	}
	if _, ok := apperr.AsValidation(err); ok {
		return "invalid"
	}
	return "error"
}
