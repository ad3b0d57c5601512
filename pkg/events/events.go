// Package events publishes booking lifecycle events for downstream
// consumers (notifications, rosters). Publishing is best-effort: a failed
// publish is logged by the caller and never fails the booking itself.
package events

import (
	"context"
	"time"

	"careconnect/pkg/model"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	BookingID  string         `json:"booking_id"`
	UserID     string         `json:"user_id"`
	ActivityID string         `json:"activity_id"`
	UserRole   model.UserRole `json:"user_role"`
}

type Publisher interface {
	PublishBookingConfirmed(ctx context.Context, booking *model.Booking) error
	PublishBookingCancelled(ctx context.Context, booking *model.Booking) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishBookingConfirmed(context.Context, *model.Booking) error { return nil }
func (NoopPublisher) PublishBookingCancelled(context.Context, *model.Booking) error { return nil }
func (NoopPublisher) Close() error                                                  { return nil }
