// Package mailtest provides an in-memory Mailer for tests.
package mailtest

import (
	"context"
	"sync"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/mail"
)

// Recorder keeps every message it is asked to send.  When Err is set, Send
// records nothing and returns Err.
type Recorder struct {
	mu   sync.Mutex
	sent []mail.Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, msg mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the recorded messages.
func (r *Recorder) Sent() []mail.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]mail.Message(nil), r.sent...)
}
