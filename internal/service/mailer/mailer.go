// Package mailer is the email side channel used by the verification and
// password-reset flows. The ledger core itself never sends mail.
package mailer

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTP struct {
	client *mail.Client
	from   string
}

func NewSMTP(conf SMTPConfig) (*SMTP, error) {
	opts := []mail.Option{
		mail.WithPort(conf.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(conf.Username),
		mail.WithPassword(conf.Password),
	}
	client, err := mail.NewClient(conf.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating smtp client")
	}
	return &SMTP{client: client, from: conf.From}, nil
}

func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return errors.Wrap(err, "setting mail sender")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "setting mail recipient")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "sending mail")
	}
	return nil
}

// Log writes outgoing messages to the logger instead of delivering them.
// Used when SMTP credentials are not configured (local development).
type Log struct {
	l *logrus.Logger
}

func NewLog(l *logrus.Logger) *Log {
	return &Log{l: l}
}

func (m *Log) Send(_ context.Context, to, subject, htmlBody string) error {
	m.l.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info(htmlBody)
	return nil
}
