package mail

import (
	"context"
	"errors"
	"mediconnect/config"
	"mediconnect/infras/otel/mocks"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/go-gomail/gomail"
	"github.com/sendgrid/rest"
	sgMail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSendGrid struct {
	status int
	err    error
	sent   []*sgMail.SGMailV3
}

func (f *fakeSendGrid) SendWithContext(_ context.Context, email *sgMail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	if f.err != nil {
		return nil, f.err
	}

	return &rest.Response{StatusCode: f.status}, nil
}

type fakeSES struct {
	err   error
	input *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}

	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

type fakeDialer struct {
	err  error
	sent int
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent += len(m)

	return f.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Notification.FromEmail = "noreply@mediconnect.test"
	cfg.Notification.FromName = "MediConnect"

	return cfg
}

var message = Message{
	To:      "patient@example.com",
	ToName:  "Pat",
	Subject: "Your Appointment Needs Rescheduling",
	Text:    "plain",
	HTML:    "<p>html</p>",
}

func TestSendGrid(t *testing.T) {
	tests := []struct {
		name    string
		client  *fakeSendGrid
		wantErr bool
	}{
		{name: "accepted", client: &fakeSendGrid{status: http.StatusAccepted}},
		{name: "rejected", client: &fakeSendGrid{status: http.StatusUnauthorized}, wantErr: true},
		{name: "transport error", client: &fakeSendGrid{err: errors.New("dial")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newSendGrid(tt.client, testConfig(), mocks.NewOtel())

			err := sender.Send(context.Background(), message)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			require.Len(t, tt.client.sent, 1)
			assert.Equal(t, message.Subject, tt.client.sent[0].Subject)
		})
	}
}

func TestSES(t *testing.T) {
	client := &fakeSES{}
	sender := newSES(client, testConfig(), mocks.NewOtel())

	require.NoError(t, sender.Send(context.Background(), message))
	assert.Equal(t, []string{"patient@example.com"}, client.input.Destination.ToAddresses)
	assert.Equal(t, "MediConnect <noreply@mediconnect.test>", aws.ToString(client.input.FromEmailAddress))
	assert.Equal(t, "<p>html</p>", aws.ToString(client.input.Content.Simple.Body.Html.Data))

	client.err = errors.New("throttled")
	assert.Error(t, sender.Send(context.Background(), message))
}

func TestSMTP(t *testing.T) {
	dialer := &fakeDialer{}
	sender := newSMTP(dialer, testConfig(), mocks.NewOtel())

	require.NoError(t, sender.Send(context.Background(), message))
	assert.Equal(t, 1, dialer.sent)

	dialer.err = errors.New("auth failed")
	assert.Error(t, sender.Send(context.Background(), message))
}

func TestMissingRecipient(t *testing.T) {
	senders := []Sender{
		NewStub(),
		newSendGrid(&fakeSendGrid{status: http.StatusAccepted}, testConfig(), mocks.NewOtel()),
		newSES(&fakeSES{}, testConfig(), mocks.NewOtel()),
		newSMTP(&fakeDialer{}, testConfig(), mocks.NewOtel()),
	}

	for _, sender := range senders {
		assert.ErrorIs(t, sender.Send(context.Background(), Message{Subject: "x"}), ErrNoRecipient)
	}
}

func TestNew_SelectsProvider(t *testing.T) {
	cfg := testConfig()

	cfg.Notification.EmailProvider = "STUB"
	assert.IsType(t, &stubSender{}, New(cfg, mocks.NewOtel()))

	cfg.Notification.EmailProvider = "pigeon"
	assert.IsType(t, &stubSender{}, New(cfg, mocks.NewOtel()))

	cfg.Notification.EmailProvider = "smtp"
	assert.IsType(t, &smtpSender{}, New(cfg, mocks.NewOtel()))
}
