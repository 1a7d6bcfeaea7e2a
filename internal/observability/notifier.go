package observability

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/allaithw/taskboard/pkg/models"
)

// Notifier dispatches a contact-form submission to an external channel.
// Dispatch is best-effort: acceptance of the submission never depends on
// delivery.
type Notifier interface {
	Notify(submission models.ContactSubmission) error
}

// smtpNotifier sends contact submissions as email over SMTP. When no
// password is configured it runs in simulation mode: the submission is
// recorded to the event log and accepted without sending. That degraded
// mode is intentional, not an error.
type smtpNotifier struct {
	cfg      models.SMTPConfig
	eventLog EventLog
	send     func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a Notifier that emails contact submissions using
// the given SMTP settings. eventLog may be nil.
func NewSMTPNotifier(cfg models.SMTPConfig, eventLog EventLog) Notifier {
	return &smtpNotifier{
		cfg:      cfg,
		eventLog: eventLog,
		send:     smtp.SendMail,
	}
}

// Notify emails the submission to the configured recipient, or logs it in
// simulation mode when no SMTP password is present.
func (n *smtpNotifier) Notify(submission models.ContactSubmission) error {
	n.logEvent("contact.received", map[string]any{
		"name":  submission.Name,
		"email": submission.Email,
	})

	if n.cfg.Password == "" {
		n.logEvent("contact.simulated", map[string]any{"name": submission.Name})
		return nil
	}

	msg := n.buildMessage(submission)
	addr := fmt.Sprintf("%s:%d", n.cfg.Host, n.cfg.Port)
	auth := smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)

	if err := n.send(addr, auth, n.cfg.From, []string{n.cfg.To}, msg); err != nil {
		return fmt.Errorf("sending contact email: %w", err)
	}

	n.logEvent("contact.sent", map[string]any{"name": submission.Name})
	return nil
}

// buildMessage renders the email with the submitter set as reply-to so the
// recipient can answer directly.
func (n *smtpNotifier) buildMessage(submission models.ContactSubmission) []byte {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("From: %s\r\n", n.cfg.From))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", n.cfg.To))
	sb.WriteString(fmt.Sprintf("Reply-To: %s\r\n", submission.Email))
	sb.WriteString(fmt.Sprintf("Subject: New website message from %s\r\n", submission.Name))
	sb.WriteString("\r\n")
	sb.WriteString("You have a new message from the website:\r\n\r\n")
	sb.WriteString(fmt.Sprintf("Name: %s\r\n", submission.Name))
	sb.WriteString(fmt.Sprintf("Email: %s\r\n", submission.Email))
	sb.WriteString(fmt.Sprintf("Phone: %s\r\n", submission.Phone))
	sb.WriteString("\r\nMessage:\r\n")
	sb.WriteString(submission.Message)
	sb.WriteString("\r\n")

	return []byte(sb.String())
}

func (n *smtpNotifier) logEvent(eventType string, data map[string]any) {
	if n.eventLog == nil {
		return
	}
	_ = n.eventLog.Write(Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
