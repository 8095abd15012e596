package event

import (
	"context"
	"testing"

	"flight-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNewPublisher_NoBrokersIsNoop(t *testing.T) {
	pub := NewPublisher(utils.KafkaConfig{Topic: "booking-events"}, zap.NewNop())

	assert.IsType(t, NoopPublisher{}, pub)
	assert.NoError(t, pub.Publish(context.Background(), Event{Type: BookingCreated, BookingID: 1}))
	assert.NoError(t, pub.Close())
}

func TestNewPublisher_WithBrokers(t *testing.T) {
	pub := NewPublisher(utils.KafkaConfig{Brokers: []string{"localhost:9092"}, Topic: "booking-events"}, zap.NewNop())

	assert.IsType(t, &Producer{}, pub)
	assert.NoError(t, pub.Close())
}
