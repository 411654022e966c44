// services/mailer.go
package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"careloom-backend/models"

	"gopkg.in/gomail.v2"
)

// Mailer is the outbound email transport. Failures are per-message and
// non-fatal to a reminder run.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SMTPMailer sends through a configured SMTP relay.
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPMailer() *SMTPMailer {
	port := 587
	if env := os.Getenv("SMTP_PORT"); env != "" {
		if p, err := strconv.Atoi(env); err == nil {
			port = p
		}
	}
	return &SMTPMailer{
		host: os.Getenv("SMTP_HOST"),
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.host, m.port, m.user, m.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

const reminderBodyTemplate = `<p>Hi [OwnerName],</p>
<p>[RelationshipName]'s [EventType] is coming up on [EventDate] ([DaysUntil]).</p>
<p>Now's a good time to plan something special.</p>
<p>— Careloom</p>`

// RenderReminderEmail builds the subject and body for one reminder, using the
// same placeholder-replacement style as the digest templates.
func RenderReminderEmail(ownerName string, rel models.Relationship, eventType string, eventDate string, daysUntil int) (subject, body string) {
	until := "today"
	switch {
	case daysUntil == 1:
		until = "tomorrow"
	case daysUntil > 1:
		until = fmt.Sprintf("in %d days", daysUntil)
	}

	subject = fmt.Sprintf("%s's %s is %s", rel.Name, eventType, until)

	replacer := strings.NewReplacer(
		"[OwnerName]", ownerName,
		"[RelationshipName]", rel.Name,
		"[EventType]", eventType,
		"[EventDate]", eventDate,
		"[DaysUntil]", until,
	)
	return subject, replacer.Replace(reminderBodyTemplate)
}
