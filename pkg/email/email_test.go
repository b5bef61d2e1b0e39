package email

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingSender struct {
	to      []string
	subject string
	message []byte
}

func (s *recordingSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	s.to = to
	s.subject = subject
	s.message = rawMessage
	return nil
}

func sampleData() SubmissionData {
	return SubmissionData{
		ID:          "65a1b2c3d4e5f60718293a4b",
		Name:        "Ann",
		Email:       "ann@x.com",
		Message:     "hi there",
		IPAddress:   "10.0.0.1",
		SubmittedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSendAdminNotification(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "noreply@vastorn.com", "support@vastorn.com")

	err := mailer.SendAdminNotification(context.Background(), sampleData())
	assert.NoError(t, err)

	assert.Equal(t, []string{"support@vastorn.com"}, sender.to)
	assert.Equal(t, "New Contact Form Submission from Ann", sender.subject)

	msg := string(sender.message)
	assert.True(t, strings.HasPrefix(msg, "From: noreply@vastorn.com\r\n"))
	assert.Contains(t, msg, "Reply-To: ann@x.com\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, msg, "hi there")
	assert.Contains(t, msg, "65a1b2c3d4e5f60718293a4b")
	assert.Contains(t, msg, "10.0.0.1")
}

func TestSendUserAutoReply(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "noreply@vastorn.com", "support@vastorn.com")

	err := mailer.SendUserAutoReply(context.Background(), sampleData())
	assert.NoError(t, err)

	assert.Equal(t, []string{"ann@x.com"}, sender.to)
	assert.Equal(t, "Thank you for contacting Vastorn OTS", sender.subject)

	msg := string(sender.message)
	assert.Contains(t, msg, "Hi Ann,")
	assert.Contains(t, msg, "hi there")
	assert.NotContains(t, msg, "Reply-To:")
}

func TestTemplatesEscapeHTML(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "noreply@vastorn.com", "support@vastorn.com")

	data := sampleData()
	data.Message = `<script>alert("x")</script>`

	err := mailer.SendAdminNotification(context.Background(), data)
	assert.NoError(t, err)
	assert.NotContains(t, string(sender.message), "<script>")
}

func TestHeadersStripNewlines(t *testing.T) {
	sender := &recordingSender{}
	mailer := NewMailer(sender, "noreply@vastorn.com", "support@vastorn.com")

	data := sampleData()
	data.Name = "Ann\r\nX-Injected: attacker\r\n\r\nfake body"

	err := mailer.SendAdminNotification(context.Background(), data)
	assert.NoError(t, err)

	headers, _, found := strings.Cut(string(sender.message), "\r\n\r\n")
	assert.True(t, found)
	assert.NotContains(t, headers, "X-Injected:")
	assert.NotContains(t, sender.subject, "\r")
	assert.NotContains(t, sender.subject, "\n")
}

func TestNewSenderFallsBackToLogging(t *testing.T) {
	sender := NewSender(SMTPConfig{Host: "smtp.example.com", Port: "587"})
	_, ok := sender.(*LoggingSender)
	assert.True(t, ok, "missing credentials should yield the logging sender")

	sender = NewSender(SMTPConfig{Host: "smtp.example.com", Port: "587", Username: "u", Password: "p"})
	_, ok = sender.(*SMTPSender)
	assert.True(t, ok)
}
