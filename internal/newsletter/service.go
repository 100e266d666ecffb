// internal/newsletter/service.go
//
// Subscription state machine.
//
//   Unknown ──subscribe──▶ PendingConfirmation ──confirm──▶ Confirmed
//                           ▲            │
//                           └─subscribe──┘  (fresh token every time)
//
// Expiry is computed when a token is redeemed; nothing is stored for it.
// An expired token stays in place until the next subscribe replaces it.

package newsletter

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/apperr"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/logger"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/mail"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/metrics"
)

// ConfirmPath is where confirmation links point, relative to the base URL.
const ConfirmPath = "/api/newsletter/confirm/"

// DefaultConfirmTTL bounds how long a confirmation link stays valid.
const DefaultConfirmTTL = 72 * time.Hour

// tokenBytes is the entropy of a confirmation token before encoding.
const tokenBytes = 32

var validate = validator.New()

// Options tune a Service.
type Options struct {
	ConfirmTTL    time.Duration
	PublicBaseURL string
}

// Service runs subscribe and confirm.
type Service struct {
	store  Store
	mailer mail.Mailer
	opts   Options
	now    func() time.Time
	token  func() (string, error)
}

// NewService builds a Service.
func NewService(store Store, mailer mail.Mailer, opts Options) *Service {
	if opts.ConfirmTTL <= 0 {
		opts.ConfirmTTL = DefaultConfirmTTL
	}
	opts.PublicBaseURL = strings.TrimRight(strings.TrimSpace(opts.PublicBaseURL), "/")
	return &Service{store: store, mailer: mailer, opts: opts, now: time.Now, token: newToken}
}

// Subscribe registers email, or re-sends the confirmation link while it
// is still pending.
func (s *Service) Subscribe(ctx context.Context, email string, meta RequestMeta) (Result, error) {
	res, err := s.subscribe(ctx, email, meta)
	metrics.NewsletterTotal.WithLabelValues("subscribe", outcome(err, res.Status)).Inc()
	return res, err
}

func (s *Service) subscribe(ctx context.Context, email string, meta RequestMeta) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		ve := apperr.Validation(apperr.MissingFields, "Email is required.")
		ve.Fields = []string{"email"}
		return Result{}, ve
	}
	if err := validate.Var(email, "email"); err != nil {
		return Result{}, apperr.Validation(apperr.InvalidEmail, "Email invalid.")
	}

	now := s.now().UTC()
	ip := strings.TrimSpace(meta.IP)
	ua := truncate(strings.TrimSpace(meta.UserAgent), MaxUserAgentLen)

	sub, created, err := s.store.GetOrCreate(ctx, Subscriber{
		Email:     email,
		CreatedAt: now,
		IP:        optional(ip),
		UserAgent: ua,
		Source:    DefaultSource,
		IsActive:  false,
	})
	if err != nil {
		return Result{}, err
	}

	if sub.Confirmed() {
		return Result{Status: StatusAlreadyConfirmed, Created: false, Message: "Ești deja abonat."}, nil
	}

	token, err := s.token()
	if err != nil {
		return Result{}, fmt.Errorf("generate token: %w", err)
	}
	sub.ConfirmToken = &token
	sub.ConfirmSentAt = &now
	if ip != "" {
		sub.IP = &ip
	}
	if ua != "" {
		sub.UserAgent = ua
	}
	if err := s.store.Reissue(ctx, sub); err != nil {
		return Result{}, err
	}

	link := s.confirmURL(meta.BaseURL, token)
	msg, err := confirmationMessage(email, link)
	if err == nil {
		err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		metrics.MailFailuresTotal.WithLabelValues("newsletter").Inc()
		logger.FromContext(ctx).Errorw("newsletter confirmation mail failed", "subscriber", sub.ID, "err", err)
		return Result{}, apperr.Server(apperr.MailDeliveryFailed, "Failed to send confirmation email.", err)
	}

	logger.FromContext(ctx).Infow("newsletter confirmation sent", "subscriber", sub.ID, "created", created)
	return Result{Status: StatusPending, Created: created, Message: "Verifică emailul și confirmă abonarea."}, nil
}

// Confirm redeems token at time now.
func (s *Service) Confirm(ctx context.Context, token string, now time.Time) error {
	err := s.confirm(ctx, token, now)
	metrics.NewsletterTotal.WithLabelValues("confirm", outcome(err, "")).Inc()
	return err
}

func (s *Service) confirm(ctx context.Context, token string, now time.Time) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return apperr.Validation(apperr.MissingToken, "Link-ul nu conține un token valid.")
	}

	sub, err := s.store.ByToken(ctx, token)
	if errors.Is(err, ErrNotFound) {
		return apperr.Validation(apperr.InvalidToken, "Link invalid sau deja folosit.")
	}
	if err != nil {
		return err
	}

	if sub.ConfirmSentAt != nil && now.Sub(*sub.ConfirmSentAt) > s.opts.ConfirmTTL {
		return apperr.Validation(apperr.TokenExpired,
			"Link-ul a expirat. Reîncearcă abonarea din footer, apoi confirmă din nou.")
	}

	ok, err := s.store.Activate(ctx, sub.ID, token, now.UTC())
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Validation(apperr.InvalidToken, "Link invalid sau deja folosit.")
	}
	logger.FromContext(ctx).Infow("newsletter subscription confirmed", "subscriber", sub.ID)
	return nil
}

// confirmURL prefers the configured public base URL over the request's.
func (s *Service) confirmURL(requestBase, token string) string {
	base := s.opts.PublicBaseURL
	if base == "" {
		base = strings.TrimRight(requestBase, "/")
	}
	return base + ConfirmPath + "?token=" + url.QueryEscape(token)
}

// newToken returns 32 random bytes, base64url without padding.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func truncate(s string, n int) string {
	if r := []rune(s); len(r) > n {
		return string(r[:n])
	}
	return s
}

func outcome(err error, status string) string {
	if err == nil {
		if status != "" {
			return status
		}
		return "ok"
	}
	if ve, ok := apperr.AsValidation(err); ok {
		return string(ve.Kind)
	}
	if se, ok := apperr.AsServer(err); ok {
		return string(se.Kind)
	}
	return "error"
}
