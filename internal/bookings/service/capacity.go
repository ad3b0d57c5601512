package service

import "careconnect/pkg/model"

// hasOpenSlot reports whether one more participant fits. Effective capacity
// is derived fresh from the volunteer count every time; both counts must be
// read under the same atomicity scope as the commit that depends on them.
func hasOpenSlot(activity *model.Activity, confirmedParticipants, confirmedVolunteers int) bool {
	return confirmedParticipants < activity.EffectiveCapacity(confirmedVolunteers)
}

// hasVolunteerSlot checks the configured volunteer allotment.
func hasVolunteerSlot(activity *model.Activity, confirmedVolunteers int) bool {
	return confirmedVolunteers < activity.VolunteerSlots
}
