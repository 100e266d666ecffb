package mail

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	netmail "net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/FlorinRO/ateliere-la-scanteia/internal/config"
)

func TestBuildMessageMultipart(t *testing.T) {
	raw, err := buildMessage("no-reply@example.com", Message{
		To:      []string{"office@example.com"},
		Subject: "[Membrie] Aplicație nouă – Ana / Ioana",
		Text:    "Părinte: Ana",
		HTML:    "<p>Părinte: Ana</p>",
	})
	require.NoError(t, err)

	msg, err := netmail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "[Membrie] Aplicație nouă – Ana / Ioana", subject)
	assert.Equal(t, "office@example.com", msg.Header.Get("To"))

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/alternative", mediaType)

	mr := multipart.NewReader(msg.Body, params["boundary"])
	var bodies []string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		b, err := io.ReadAll(p)
		require.NoError(t, err)
		bodies = append(bodies, string(b))
	}
	assert.Equal(t, []string{"Părinte: Ana", "<p>Părinte: Ana</p>"}, bodies)
}

func TestBuildMessagePlainOnly(t *testing.T) {
	raw, err := buildMessage("no-reply@example.com", Message{
		To:      []string{"a@example.com"},
		Subject: "hello",
		Text:    "body",
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `Content-Type: text/plain; charset="utf-8"`)
	assert.NotContains(t, string(raw), "multipart")
}

func TestLogMailerRecords(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := NewLog("no-reply@example.com", zap.New(core).Sugar())

	require.NoError(t, m.Send(context.Background(), Message{To: []string{"x@example.com"}, Subject: "s", Text: "t"}))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "s", logs.All()[0].ContextMap()["subject"])
}

func TestNewPicksBackend(t *testing.T) {
	log := zap.NewNop().Sugar()

	relay, isSMTP := New(config.Mail{Backend: "smtp", Host: "relay.internal", Port: 25}, log).(*SMTPMailer)
	require.True(t, isSMTP, "smtp without credentials still dials the relay")
	assert.Nil(t, relay.auth)

	authed, isSMTP := New(config.Mail{Backend: "smtp", Host: "smtp.example.com", Username: "u", Password: "p"}, log).(*SMTPMailer)
	require.True(t, isSMTP)
	assert.NotNil(t, authed.auth)

	_, isLog := New(config.Mail{Backend: "smtp"}, log).(*LogMailer)
	assert.True(t, isLog, "no host")

	_, isLog = New(config.Mail{Backend: "log", Host: "smtp.example.com"}, log).(*LogMailer)
	assert.True(t, isLog)
}

func TestUnauthenticatedRelayReportsFailure(t *testing.T) {
	m := New(config.Mail{Backend: "smtp", Host: "127.0.0.1", Port: 1, From: "no-reply@example.com"}, zap.NewNop().Sugar())
	err := m.Send(context.Background(), Message{To: []string{"office@example.com"}, Subject: "x", Text: "y"})
	assert.Error(t, err)
}

func TestSMTPRejectsNoRecipients(t *testing.T) {
	err := NewSMTP(config.Mail{Host: "127.0.0.1", Port: 1}).Send(context.Background(), Message{Subject: "x"})
	assert.Error(t, err)
}
