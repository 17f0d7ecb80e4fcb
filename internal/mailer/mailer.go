// Package mailer is the outbound-notification capability behind the contact
// form. Delivery is injected so the handler only sees success or failure.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"go-shop/internal/models"
)

// Mailer delivers a contact form submission to the shop operator.
type Mailer interface {
	Send(msg models.ContactMessage) error
}

// SMTPMailer delivers contact messages over plain SMTP.
type SMTPMailer struct {
	addr   string
	from   string
	to     string
	logger zerolog.Logger
}

func NewSMTPMailer(addr, from, to string, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		addr:   addr,
		from:   from,
		to:     to,
		logger: logger,
	}
}

func (m *SMTPMailer) Send(msg models.ContactMessage) error {
	body := fmt.Sprintf(
		"Subject: New Contact Form Submission\r\n\r\nName: %s\nEmail: %s\nPhone Number: %s\nMessage:\n%s\n",
		msg.Name, msg.Email, msg.Number, msg.Message,
	)

	err := smtp.SendMail(m.addr, nil, m.from, []string{m.to}, []byte(body))
	if err != nil {
		m.logger.Error().Err(err).Str("to", m.to).Msg("Contact mail delivery failed")
		return err
	}

	m.logger.Info().Str("from", msg.Email).Msg("Contact mail delivered")
	return nil
}

// LogMailer is the stubbed delivery path used when no SMTP server is
// configured. It records the submission and always succeeds.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(msg models.ContactMessage) error {
	m.logger.Info().
		Str("name", msg.Name).
		Str("email", msg.Email).
		Str("number", msg.Number).
		Str("message", msg.Message).
		Msg("Contact form submission (delivery disabled)")
	return nil
}
