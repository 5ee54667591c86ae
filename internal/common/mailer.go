package common

import (
	"crypto/tls"
	"fmt"
	"regexp"
	"time"

	"gopkg.in/gomail.v2"

	"junta-vecinos/backend/internal/logging"
)

// Mailer sends a single email and returns a transport message ID. Callers must
// not depend on delivery confirmation.
type Mailer interface {
	Send(to, subject, htmlBody, textBody string) (string, error)
	Enabled() bool
}

// SMTPConfig holds the mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ReplyTo  string
}

// Configured reports whether the transport has everything it needs to dial.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Port != 0 && c.Username != "" && c.Password != ""
}

// SMTPMailer delivers mail over SMTP. When the transport is not configured it
// degrades to a logged no-op that returns a synthetic message ID, so business
// operations never fail on missing mail settings.
type SMTPMailer struct {
	cfg SMTPConfig
}

var _ Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Enabled() bool { return m.cfg.Configured() }

var htmlTagPattern = regexp.MustCompile(`<[^>]*>?`)

func (m *SMTPMailer) Send(to, subject, htmlBody, textBody string) (string, error) {
	if !m.Enabled() {
		logging.Debug("mail transport disabled, skipping send", "to", to, "subject", subject)
		return fmt.Sprintf("disabled-%d", time.Now().UnixMilli()), nil
	}

	if textBody == "" {
		textBody = htmlTagPattern.ReplaceAllString(htmlBody, "")
	}

	replyTo := m.cfg.ReplyTo
	if replyTo == "" {
		replyTo = m.cfg.From
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Reply-To", replyTo)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}

	if err := d.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send mail to %s: %w", to, err)
	}

	return fmt.Sprintf("smtp-%d", time.Now().UnixMilli()), nil
}
