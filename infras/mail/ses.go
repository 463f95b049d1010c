package mail

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/rs/zerolog/log"
)

const sesCharset = "UTF-8"

type sesClient interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client    sesClient
	fromEmail string
	fromName  string
	otel      otel.Otel
}

func NewSES(cfg *config.Config, ot otel.Otel) Sender {
	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(cfg.Notification.SES.Region),
	}

	if cfg.Notification.SES.AccessKeyID != "" {
		options = append(options, awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Notification.SES.AccessKeyID,
			cfg.Notification.SES.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(context.TODO(), options...)
	if err != nil {
		log.Err(err).Msg("Error loading AWS configuration")
	}

	return newSES(sesv2.NewFromConfig(awsCfg), cfg, ot)
}

func newSES(client sesClient, cfg *config.Config, ot otel.Otel) Sender {
	return &sesSender{
		client:    client,
		fromEmail: cfg.Notification.FromEmail,
		fromName:  cfg.Notification.FromName,
		otel:      ot,
	}
}

func (s *sesSender) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".ses.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{otelAttrProvider: ProviderSES, otelAttrRecipients: msg.To})

	if err = msg.validate(); err != nil {
		return err
	}

	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String(sesCharset)},
	}

	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(sesCharset)}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(sesCharset)},
				Body:    body,
			},
		},
	}

	output, err := s.client.SendEmail(ctx, input)
	if err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("SES send failed")

		return fmt.Errorf("failed to send email via ses: %w", err)
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Str("message_id", aws.ToString(output.MessageId)).Msg("email sent via SES")

	return nil
}
