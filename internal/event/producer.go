package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"flight-booking/pkg/utils"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Type string

const (
	BookingCreated   Type = "booking.created"
	BookingCancelled Type = "booking.cancelled"
	PaymentConfirmed Type = "payment.confirmed"
)

// Event is published only after the transaction that produced it commits.
type Event struct {
	Type          Type      `json:"type"`
	BookingID     int64     `json:"booking_id"`
	UserID        int64     `json:"user_id"`
	FlightID      int64     `json:"flight_id"`
	NumSeats      int       `json:"num_seats"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount,omitempty"`
	TransactionID string    `json:"transaction_id,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// NewPublisher returns a Kafka publisher, or a no-op one when no brokers
// are configured.
func NewPublisher(cfg utils.KafkaConfig, log *zap.Logger) Publisher {
	if len(cfg.Brokers) == 0 {
		return NoopPublisher{}
	}
	return NewProducer(cfg, log)
}

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewProducer builds an async writer keyed by booking id, so events of one
// booking stay ordered within a partition.
func NewProducer(cfg utils.KafkaConfig, log *zap.Logger) *Producer {
	log = log.With(zap.String("component", "kafka-producer"))

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.Error("Failed to deliver events", zap.Error(err), zap.Int("count", len(messages)))
			}
		},
	}

	return &Producer{writer: writer, log: log}
}

func (p *Producer) Publish(ctx context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", evt.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.BookingID, 10)),
		Value: data,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(evt.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("write event %s: %w", evt.Type, err)
	}

	p.log.Debug("Event queued", zap.String("type", string(evt.Type)), zap.Int64("booking_id", evt.BookingID))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
