package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"careconnect/pkg/model"
)

// KafkaPublisher writes booking events to a single topic, keyed by activity
// so all events for one activity land on the same partition in order.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
	}

	return &KafkaPublisher{writer: writer}, nil
}

func (p *KafkaPublisher) PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, TypeBookingConfirmed, booking)
}

func (p *KafkaPublisher) PublishBookingCancelled(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, TypeBookingCancelled, booking)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) error {
	event := BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ActivityID: booking.ActivityID,
		UserRole:   booking.UserRole,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(booking.ActivityID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
