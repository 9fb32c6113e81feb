package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"

	"yamdb/internal/config"
)

// Message is a plain-text mail with a single recipient.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages. A returned error means the message was not accepted.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the backend configured by MAIL_BACKEND.
func New(cfg *config.Config, log *logrus.Logger) Mailer {
	if cfg.MailBackend == "smtp" {
		return &SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}
	}
	return &ConsoleMailer{From: cfg.MailFrom, Log: log}
}

// ConsoleMailer writes messages to the log instead of sending them (development).
type ConsoleMailer struct {
	From string
	Log  *logrus.Logger
}

func (m *ConsoleMailer) Send(_ context.Context, msg Message) error {
	m.Log.WithFields(logrus.Fields{
		"from":    m.From,
		"to":      msg.To,
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}

// SMTPMailer delivers through an SMTP relay, upgrading with STARTTLS when offered.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out, err := m.build(msg)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(m.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(10 * time.Second),
	}
	if m.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(m.Username),
			gomail.WithPassword(m.Password),
		)
	}
	client, err := gomail.NewClient(m.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send mail via %s: %w", m.Host, err)
	}
	return nil
}

// build renders msg with Date, Message-ID and MIME-encoded headers.
func (m *SMTPMailer) build(msg Message) (*gomail.Msg, error) {
	out := gomail.NewMsg()
	if err := out.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := out.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	out.Subject(msg.Subject)
	out.SetDate()
	out.SetMessageID()
	out.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return out, nil
}
