package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// SubmissionData holds the fields rendered into the notification mails.
type SubmissionData struct {
	ID          string
	Name        string
	Email       string
	Message     string
	IPAddress   string
	SubmittedAt time.Time
}

// adminMailTemplate notifies the site owner about a new submission.
const adminMailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #8b5cf6;">New Contact Form Submission</h2>
    <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <p><strong>Name:</strong> {{.Name}}</p>
        <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
        <p><strong>Submitted:</strong> {{.SubmittedAt.Format "Jan 2, 2006 3:04 PM MST"}}</p>
    </div>
    <div style="background: white; padding: 20px; border-left: 4px solid #8b5cf6; margin: 20px 0;">
        <h3>Message:</h3>
        <p style="white-space: pre-wrap;">{{.Message}}</p>
    </div>
    <p style="color: #666; font-size: 12px;">
        Submission ID: {{.ID}}<br>
        IP Address: {{.IPAddress}}
    </p>
</div>`

// userMailTemplate is the auto-reply sent back to the submitter.
const userMailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #8b5cf6;">Thank You for Reaching Out!</h2>
    <p>Hi {{.Name}},</p>
    <p>We&#39;ve received your message and will get back to you within 48 hours.</p>
    <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3>Your Message:</h3>
        <p style="white-space: pre-wrap;">{{.Message}}</p>
    </div>
    <p>Best regards,<br>The Vastorn Team</p>
    <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
    <p style="color: #666; font-size: 12px;">
        This is an automated response. Please do not reply to this email.
    </p>
</div>`

var (
	adminTmpl = template.Must(template.New("admin").Parse(adminMailTemplate))
	userTmpl  = template.Must(template.New("user").Parse(userMailTemplate))
)

// Mailer builds and delivers the two notification emails per submission.
type Mailer struct {
	sender     Sender
	fromEmail  string
	adminEmail string
}

func NewMailer(sender Sender, fromEmail, adminEmail string) *Mailer {
	return &Mailer{
		sender:     sender,
		fromEmail:  fromEmail,
		adminEmail: adminEmail,
	}
}

// SendAdminNotification mails the submission to the configured admin address.
func (m *Mailer) SendAdminNotification(ctx context.Context, data SubmissionData) error {
	var body bytes.Buffer
	if err := adminTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render admin notification: %w", err)
	}

	subject := fmt.Sprintf("New Contact Form Submission from %s", sanitizeHeader(data.Name))
	msg := buildMessage(m.fromEmail, m.adminEmail, data.Email, subject, body.Bytes())
	return m.sender.Send(ctx, []string{m.adminEmail}, subject, msg)
}

// SendUserAutoReply mails the acknowledgement back to the submitter.
func (m *Mailer) SendUserAutoReply(ctx context.Context, data SubmissionData) error {
	var body bytes.Buffer
	if err := userTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render auto-reply: %w", err)
	}

	subject := "Thank you for contacting Vastorn OTS"
	msg := buildMessage(m.fromEmail, data.Email, "", subject, body.Bytes())
	return m.sender.Send(ctx, []string{data.Email}, subject, msg)
}

var headerReplacer = strings.NewReplacer("\r", " ", "\n", " ")

// sanitizeHeader strips CR and LF so a user-supplied value cannot
// terminate a header line and inject its own.
func sanitizeHeader(v string) string {
	return headerReplacer.Replace(v)
}

// buildMessage assembles the MIME message. replyTo is optional.
func buildMessage(from, to, replyTo, subject string, body []byte) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", sanitizeHeader(from))
	fmt.Fprintf(&buf, "To: %s\r\n", sanitizeHeader(to))
	if replyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", sanitizeHeader(replyTo))
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", sanitizeHeader(subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.Write(body)
	return buf.Bytes()
}
