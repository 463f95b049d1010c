package mail

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgMail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *sgMail.SGMailV3) (*rest.Response, error)
}

type sendGridSender struct {
	client    sendGridClient
	fromEmail string
	fromName  string
	otel      otel.Otel
}

func NewSendGrid(cfg *config.Config, ot otel.Otel) Sender {
	return newSendGrid(sendgrid.NewSendClient(cfg.Notification.SendGrid.APIKey), cfg, ot)
}

func newSendGrid(client sendGridClient, cfg *config.Config, ot otel.Otel) Sender {
	return &sendGridSender{
		client:    client,
		fromEmail: cfg.Notification.FromEmail,
		fromName:  cfg.Notification.FromName,
		otel:      ot,
	}
}

func (s *sendGridSender) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".sendgrid.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{otelAttrProvider: ProviderSendGrid, otelAttrRecipients: msg.To})

	if err = msg.validate(); err != nil {
		return err
	}

	html := msg.HTML
	if html == "" {
		html = msg.Text
	}

	message := sgMail.NewSingleEmail(
		sgMail.NewEmail(s.fromName, s.fromEmail),
		msg.Subject,
		sgMail.NewEmail(msg.ToName, msg.To),
		msg.Text,
		html,
	)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("sendgrid send failed")

		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}

	if response.StatusCode >= http.StatusBadRequest {
		log.Error().Int("status", response.StatusCode).Str("body", response.Body).Str("to", msg.To).Msg("sendgrid returned error status")

		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Int("status", response.StatusCode).Msg("email sent via sendgrid")

	return nil
}
