package kafka_test

import (
	"context"
	"mediconnect/config"
	"mediconnect/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type event struct {
	Type          string `json:"type"`
	AppointmentID string `json:"appointment_id"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "appt-1", Value: event{Type: "needs_rescheduling", AppointmentID: "appt-1"}}

	raw, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("appt-1"), raw.Key)

	decoded, err := kafka.DecodeKafkaMessage[event](raw)
	require.NoError(t, err)
	assert.Equal(t, "appt-1", decoded.Key)
	assert.Equal(t, event{Type: "needs_rescheduling", AppointmentID: "appt-1"}, decoded.Value)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_WithoutBrokers(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.NoError(t, client.SendMessages(context.Background(), "appointment.notifications", kafka.Message{Key: "k", Value: "v"}))
	assert.NoError(t, client.Close())
}
