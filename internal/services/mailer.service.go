package services

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"gamenight/config"

	logger "github.com/Bparsons0904/goLogger"
)

// Mailer sends notification mail. Delivery is best-effort: lifecycle
// transitions log failures but never propagate them.
type Mailer interface {
	Send(ctx context.Context, subject, body string, recipients []string) error
}

type smtpMailer struct {
	addr string
	from string
	log  logger.Logger
}

type noopMailer struct {
	log logger.Logger
}

// NewMailer returns an SMTP-backed mailer, or a logging no-op when no SMTP
// host is configured (local development).
func NewMailer(config config.Config) Mailer {
	log := logger.New("mailer")

	if config.SMTPHost == "" {
		log.Warn("SMTP_HOST not set, mail delivery disabled")
		return &noopMailer{log: log}
	}

	return &smtpMailer{
		addr: fmt.Sprintf("%s:%d", config.SMTPHost, config.SMTPPort),
		from: config.SMTPFrom,
		log:  log,
	}
}

func (m *smtpMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	log := m.log.Function("Send")

	if len(recipients) == 0 {
		log.Debug("no recipients, skipping send", "subject", subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + strings.Join(recipients, ", "),
		"Subject: " + subject,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(m.addr, nil, m.from, recipients, []byte(msg)); err != nil {
		return log.Err("failed to send mail", err,
			"subject", subject, "recipients", len(recipients))
	}

	log.Info("mail sent", "subject", subject, "recipients", len(recipients))
	return nil
}

func (m *noopMailer) Send(ctx context.Context, subject, body string, recipients []string) error {
	m.log.Info("mail suppressed (no SMTP configured)",
		"subject", subject, "recipients", len(recipients))
	return nil
}
