package email

import (
	"context"
	"fmt"
	"net/smtp"

	"vastorn-backend/pkg/logger"
)

// Sender delivers a fully formatted mail message (headers included) to a
// list of recipients.
type Sender interface {
	Send(ctx context.Context, to []string, subject string, rawMessage []byte) error
}

// SMTPSender implements Sender using net/smtp with PLAIN auth.
type SMTPSender struct {
	auth smtp.Auth
	addr string
	from string
}

// SMTPConfig carries the transport settings for SMTPSender.
type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
}

// NewSender returns an SMTP-backed sender when credentials are present,
// otherwise a LoggingSender so the rest of the app keeps working in
// development.
func NewSender(cfg SMTPConfig) Sender {
	if cfg.Username == "" || cfg.Password == "" {
		return &LoggingSender{}
	}
	return &SMTPSender{
		auth: smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
		addr: fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		from: cfg.FromEmail,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	if err := smtp.SendMail(s.addr, s.auth, s.from, to, rawMessage); err != nil {
		return fmt.Errorf("smtp error: %w", err)
	}
	logger.Log.Info("Email sent", "to", to, "subject", subject)
	return nil
}

// LoggingSender logs mail instead of sending it. Used when SMTP is not
// configured.
type LoggingSender struct{}

func (s *LoggingSender) Send(ctx context.Context, to []string, subject string, rawMessage []byte) error {
	logger.Log.Info("Email logged (SMTP not configured)",
		"to", to,
		"subject", subject,
		"bytes", len(rawMessage),
	)
	return nil
}
