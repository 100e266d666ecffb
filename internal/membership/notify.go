// internal/membership/notify.go
//
// Office notification for a stored application.
//
// Context
//   One message per application, plain text plus an HTML part rendered
//   from the embedded view template.  submitted_at is shown in the
//   configured location.
//
//------------------------------------------------------------------------------

package membership

import (
	"fmt"
	"strings"
	"time"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/mail"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/view"
)

const notificationTemplate = "membership_application_email.html"

// notificationView feeds the HTML template.
type notificationView struct {
	ApplicationID    uint64
	ParentName       string
	Phone            string
	Email            string
	ChildName        string
	ChildAge         string
	ExpectationLabel string
	Source           string
	SubmittedAt      time.Time
	QAItems          []QAItem
	IP               string
	UserAgent        string
}

// buildNotification composes the office mail for a stored application.
func buildNotification(app *Application, to string, loc *time.Location) (mail.Message, error) {
	subject := fmt.Sprintf("[Membrie] Aplicație nouă – %s / %s", app.ParentName, app.ChildName)

	lines := []string{
		"A fost trimisă o aplicație nouă (Membrie):",
		"",
		"Părinte: " + app.ParentName,
		"Telefon: " + app.Phone,
		"Email: " + app.Email,
		"",
		"Copil: " + app.ChildName,
		"Vârsta: " + app.ChildAge,
		"",
		"Așteptări: " + app.ExpectationLabel(),
		"Sursa: " + app.Source,
		"IP: " + app.IP,
		"",
		"Întrebări + răspunsuri:",
		"",
	}
	for _, it := range app.QASnapshot {
		q := strings.TrimSpace(it.Question)
		if q == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s", q, strings.TrimSpace(it.Answer)))
	}

	html, err := view.RenderToString(notificationTemplate, notificationView{
		ApplicationID:    app.ID,
		ParentName:       app.ParentName,
		Phone:            app.Phone,
		Email:            app.Email,
		ChildName:        app.ChildName,
		ChildAge:         app.ChildAge,
		ExpectationLabel: app.ExpectationLabel(),
		Source:           app.Source,
		SubmittedAt:      app.CreatedAt.In(loc),
		QAItems:          app.QASnapshot,
		IP:               app.IP,
		UserAgent:        app.UserAgent,
	})
	if err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		To:      []string{to},
		Subject: subject,
		Text:    strings.Join(lines, "\n"),
		HTML:    html,
	}, nil
}
