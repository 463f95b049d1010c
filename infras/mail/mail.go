// Package mail delivers transactional email through one configured provider.
package mail

//go:generate go run go.uber.org/mock/mockgen -source=./mail.go -destination=./mocks/mail_mock.go -package=mocks

import (
	"context"
	"errors"
	"mediconnect/config"
	"mediconnect/infras/otel"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	ProviderStub     = "stub"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderSMTP     = "smtp"

	otelScopeName      = "mail"
	otelAttrProvider   = "mail.provider"
	otelAttrRecipients = "mail.to"
)

var ErrNoRecipient = errors.New("mail has no recipient")

// Message is a rendered email. Text is required, HTML is optional.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

func (m Message) validate() error {
	if strings.TrimSpace(m.To) == "" {
		return ErrNoRecipient
	}

	return nil
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the provider named in NOTIFICATION_EMAIL_PROVIDER. Unknown names
// fall back to the stub sender.
func New(cfg *config.Config, ot otel.Otel) Sender {
	provider := strings.ToLower(cfg.Notification.EmailProvider)

	log.Info().Str("provider", provider).Msg("Mail sender initialized")

	switch provider {
	case ProviderSendGrid:
		return NewSendGrid(cfg, ot)
	case ProviderSES:
		return NewSES(cfg, ot)
	case ProviderSMTP:
		return NewSMTP(cfg, ot)
	case ProviderStub:
		return NewStub()
	default:
		log.Warn().Str("provider", provider).Msg("Unknown email provider, falling back to stub")

		return NewStub()
	}
}

type stubSender struct{}

// NewStub returns a sender that only logs.
func NewStub() Sender {
	return &stubSender{}
}

func (*stubSender) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("stub mail sender: would send email")

	return nil
}
