package model

import "time"

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "Confirmed"
	StatusCancelled BookingStatus = "Cancelled"
)

// Booking joins a user to an activity. Bookings are never deleted: a
// cancellation flips the status so the ledger stays auditable and weekly
// token counting can exclude cancelled rows.
type Booking struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	UserID     string        `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	ActivityID string        `json:"activity_id" bson:"activity_id" validate:"required,mongodb"`
	Status     BookingStatus `json:"status" bson:"status" validate:"required,oneof=Confirmed Cancelled"`

	// UserRole is snapshotted at commit time so capacity math over historical
	// bookings does not depend on later account changes.
	UserRole UserRole `json:"user_role" bson:"user_role" validate:"required,oneof=Participant Caregiver Staff Volunteer"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" validate:"omitempty"`
}

// BookingRequest is the admission request body.
type BookingRequest struct {
	UserID     string `json:"user_id" validate:"required,mongodb"`
	ActivityID string `json:"activity_id" validate:"required,mongodb"`
}

// TokenBalance reports a user's weekly entitlement standing.
type TokenBalance struct {
	UserID    string         `json:"user_id"`
	Tier      MembershipTier `json:"membership_tier"`
	Role      UserRole       `json:"role"`
	Unlimited bool           `json:"unlimited"`
	Limit     int            `json:"tokens_total"`
	Used      int            `json:"tokens_used"`
	Remaining int            `json:"tokens_remaining"`
}
