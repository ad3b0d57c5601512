package model

import "time"

// VolunteerCapacityBoost is the number of participant slots each confirmed
// volunteer adds on top of an activity's base capacity.
const VolunteerCapacityBoost = 2

type Activity struct {
	ID          string     `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Title       string     `json:"title" bson:"title" validate:"required,min=2,max=200"`
	Description string     `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	StartTime   time.Time  `json:"start_time" bson:"start_time" validate:"required"`
	EndTime     *time.Time `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty"`
	Location    string     `json:"location,omitempty" bson:"location,omitempty" validate:"omitempty,max=200"`

	BaseCapacity int `json:"base_capacity" bson:"base_capacity" validate:"min=0,max=500"`

	// VolunteerSlots is the maximum number of volunteers the activity can
	// take on. The number of volunteers currently confirmed is derived from
	// the booking ledger, never stored here.
	VolunteerSlots int `json:"volunteer_slots" bson:"volunteer_slots" validate:"min=0,max=50"`

	// Requirements an attending user must satisfy, e.g. {"accessible": true}.
	Requirements map[string]bool `json:"requirements" bson:"requirements" validate:"omitempty,flag_map"`

	PaymentRequired bool `json:"payment_required" bson:"payment_required"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" validate:"omitempty"`
}

// EffectiveCapacity is the participant capacity given the number of
// volunteers confirmed right now. Recomputed at every decision point.
func (a *Activity) EffectiveCapacity(confirmedVolunteers int) int {
	return a.BaseCapacity + VolunteerCapacityBoost*confirmedVolunteers
}

// IsAccessible reports whether the activity declares itself wheelchair
// accessible. A missing flag means not accessible, matching the product rule.
func (a *Activity) IsAccessible() bool {
	return a.Requirements["accessible"]
}

// ActivitySummary is the list/detail projection of an activity with the
// capacity figures derived from the booking ledger.
type ActivitySummary struct {
	Activity

	EffectiveCap      int `json:"effective_capacity"`
	ConfirmedCount    int `json:"confirmed_count"`
	AvailableSlots    int `json:"available_slots"`
	ConfirmedVols     int `json:"volunteer_slot_count"`
	AvailableVolSlots int `json:"available_volunteer_slots"`
}

type RosterEntry struct {
	BookingID string    `json:"booking_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserRole  UserRole  `json:"user_role"`
	BookedAt  time.Time `json:"booked_at"`
}

type ActivityDetail struct {
	ActivitySummary

	Roster []RosterEntry `json:"bookings"`
}
