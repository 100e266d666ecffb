// internal/newsletter/mail.go
//
// Double opt-in confirmation mail.
//
// Context
//   Sent on every subscribe that leaves the subscriber pending.  The link
//   carries the freshly issued token.
//
//------------------------------------------------------------------------------

package newsletter

import (
	"github.com/FlorinRO/ateliere-la-scanteia/internal/mail"
	"github.com/FlorinRO/ateliere-la-scanteia/internal/view"
)

const confirmSubject = "Confirmă abonarea la Newsletter — Ateliere la Scânteia"

// confirmationMessage builds the double opt-in mail for link.
func confirmationMessage(to, link string) (mail.Message, error) {
	text := "Bună!\n\n" +
		"Mai este un singur pas pentru a confirma abonarea la newsletter.\n" +
		"Apasă pe linkul de mai jos:\n\n" +
		link + "\n\n" +
		"Dacă nu ai cerut această abonare, poți ignora mesajul.\n"

	html, err := view.RenderToString("newsletter_confirm_email.html", map[string]any{"ConfirmURL": link})
	if err != nil {
		return mail.Message{}, err
	}
	return mail.Message{To: []string{to}, Subject: confirmSubject, Text: text, HTML: html}, nil
}
