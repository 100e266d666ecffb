// Package newsletter implements the double opt-in subscription flow:
// subscribe issues a fresh confirmation token and mails a link, confirm
// redeems the token within a TTL and activates the subscriber.
package newsletter

import "time"

// Statuses returned by Subscribe.
const (
	StatusPending          = "pending_confirm"
	StatusAlreadyConfirmed = "already_confirmed"
)

// DefaultSource is stored on subscribers created by the public form.
const DefaultSource = "website"

// MaxUserAgentLen matches the user_agent column width.
const MaxUserAgentLen = 255

// Subscriber mirrors one newsletter_subscriber row.
type Subscriber struct {
	ID            uint64     `db:"id"`
	Email         string     `db:"email"`
	CreatedAt     time.Time  `db:"created_at"`
	IP            *string    `db:"ip_address"`
	UserAgent     string     `db:"user_agent"`
	Source        string     `db:"source"`
	IsActive      bool       `db:"is_active"`
	ConfirmedAt   *time.Time `db:"confirmed_at"`
	ConfirmToken  *string    `db:"confirm_token"`
	ConfirmSentAt *time.Time `db:"confirm_sent_at"`
}

// Confirmed reports whether the subscriber finished double opt-in.
func (s *Subscriber) Confirmed() bool {
	return s.IsActive && s.ConfirmedAt != nil
}

// Result is what Subscribe reports to the caller.
type Result struct {
	Status  string
	Created bool
	Message string
}

// RequestMeta carries caller details.  BaseURL is the scheme and host of
// the incoming request, used for links when no public base URL is set.
type RequestMeta struct {
	IP        string
	UserAgent string
	BaseURL   string
}
