// Package sms sends text messages through Twilio.
package sms

//go:generate go run go.uber.org/mock/mockgen -source=./sms.go -destination=./mocks/sms_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const otelScopeName = "sms"

var ErrNoPhone = errors.New("sms has no recipient phone number")

type Sender interface {
	Send(ctx context.Context, to, body string) error
}

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

type twilioSender struct {
	api  messageCreator
	from string
	otel otel.Otel
}

// New returns a Twilio sender, or a sender that drops messages when SMS is disabled.
func New(cfg *config.Config, ot otel.Otel) Sender {
	twilioCfg := cfg.Notification.Twilio

	if !twilioCfg.Enable || twilioCfg.AccountSID == "" {
		log.Info().Msg("Twilio disabled, SMS will not be sent")

		return &disabledSender{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: twilioCfg.AccountSID,
		Password: twilioCfg.AuthToken,
	})

	return newTwilio(client.Api, twilioCfg.From, ot)
}

func newTwilio(api messageCreator, from string, ot otel.Otel) Sender {
	return &twilioSender{
		api:  api,
		from: from,
		otel: ot,
	}
}

func (s *twilioSender) Send(ctx context.Context, to, body string) (err error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".twilio.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	to = strings.TrimSpace(to)
	if to == "" {
		return ErrNoPhone
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.api.CreateMessage(params)
	if err != nil {
		log.Error().Err(err).Str("to", to).Msg("twilio send failed")

		return fmt.Errorf("failed to send sms: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}

	log.Info().Str("to", to).Str("sid", sid).Msg("sms sent via twilio")

	return nil
}

type disabledSender struct{}

func (*disabledSender) Send(_ context.Context, to, _ string) error {
	log.Debug().Str("to", to).Msg("sms disabled, dropping message")

	return nil
}
