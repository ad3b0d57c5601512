package model

import "time"

type UserRole string

const (
	RoleParticipant UserRole = "Participant"
	RoleCaregiver   UserRole = "Caregiver"
	RoleStaff       UserRole = "Staff"
	RoleVolunteer   UserRole = "Volunteer"
)

type MembershipTier string

const (
	TierAdhoc     MembershipTier = "Adhoc"
	TierWeekly1   MembershipTier = "Weekly_1"
	TierWeekly2   MembershipTier = "Weekly_2"
	TierUnlimited MembershipTier = "Unlimited"
	TierStaff     MembershipTier = "Staff"
	TierVolunteer MembershipTier = "Volunteer"
)

// TokenLimit returns the weekly token allowance for the tier. The second
// return value is true for tiers that are not token-accounted at all.
func (t MembershipTier) TokenLimit() (int, bool) {
	switch t {
	case TierUnlimited, TierStaff, TierVolunteer:
		return 0, true
	case TierWeekly1:
		return 1, false
	case TierWeekly2:
		return 2, false
	default: // Adhoc: entitlement is always exhausted, admission is pay-per-booking
		return 0, false
	}
}

type User struct {
	ID             string          `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string          `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email          string          `json:"email" bson:"email" validate:"required,email"`
	Role           UserRole        `json:"role" bson:"role" validate:"required,oneof=Participant Caregiver Staff Volunteer"`
	MembershipTier MembershipTier  `json:"membership_tier" bson:"membership_tier" validate:"required,oneof=Adhoc Weekly_1 Weekly_2 Unlimited Staff Volunteer"`
	MedicalFlags   map[string]bool `json:"medical_flags" bson:"medical_flags" validate:"omitempty,flag_map"`

	// Caregivers may manage a dependent's account.
	LinkedAccountID string `json:"linked_account_id,omitempty" bson:"linked_account_id,omitempty" validate:"omitempty,mongodb"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty" validate:"omitempty"`
}
