package mail

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"

	"github.com/go-gomail/gomail"
	"github.com/rs/zerolog/log"
)

type smtpDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpSender struct {
	dialer    smtpDialer
	fromEmail string
	fromName  string
	otel      otel.Otel
}

func NewSMTP(cfg *config.Config, ot otel.Otel) Sender {
	smtp := cfg.Notification.SMTP

	return newSMTP(gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password), cfg, ot)
}

func newSMTP(dialer smtpDialer, cfg *config.Config, ot otel.Otel) Sender {
	return &smtpSender{
		dialer:    dialer,
		fromEmail: cfg.Notification.FromEmail,
		fromName:  cfg.Notification.FromName,
		otel:      ot,
	}
}

func (s *smtpSender) Send(ctx context.Context, msg Message) (err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".smtp.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{otelAttrProvider: ProviderSMTP, otelAttrRecipients: msg.To})

	if err = msg.validate(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.fromEmail, s.fromName)
	m.SetAddressHeader("To", msg.To, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)

	if msg.HTML != "" {
		m.AddAlternative("text/html", msg.HTML)
	}

	if err = s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("smtp send failed")

		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent via smtp")

	return nil
}
