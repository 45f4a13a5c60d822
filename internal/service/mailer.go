package service

import (
	"context"

	"glimmer/internal/config"
	"glimmer/internal/logger"

	"github.com/wneessen/go-mail"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// SendResult mirrors the mail collaborator contract: delivery failures come
// back as Success=false, never as a Go error.
type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

type Mailer interface {
	SendEmail(ctx context.Context, msg Email) SendResult
}

// SMTPMailer delivers mail over SMTP with STARTTLS when the server offers it.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) SendEmail(ctx context.Context, msg Email) SendResult {
	mm := mail.NewMsg()
	if err := mm.From(m.from); err != nil {
		return SendResult{Error: err.Error()}
	}
	if err := mm.To(msg.To); err != nil {
		return SendResult{Error: err.Error()}
	}
	mm.Subject(msg.Subject)
	mm.SetMessageID()
	mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	}

	if err := m.client.DialAndSendWithContext(ctx, mm); err != nil {
		logger.Warn("mail send failed", "to", msg.To, "err", err)
		return SendResult{Error: err.Error()}
	}
	return SendResult{Success: true, MessageID: mm.GetMessageID()}
}
