package validator

import (
	"testing"

	"careconnect/pkg/logger"
	"careconnect/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func validUser() *model.User {
	return &model.User{
		Name:           "Dana Levi",
		Email:          "dana@example.org",
		Role:           model.RoleParticipant,
		MembershipTier: model.TierWeekly2,
	}
}

func TestValidate_ValidUser(t *testing.T) {
	v := NewUserValidator(testLogger())
	if err := v.Validate(validUser()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsBadInput(t *testing.T) {
	v := NewUserValidator(testLogger())

	tests := []struct {
		name   string
		mutate func(*model.User)
	}{
		{"missing name", func(u *model.User) { u.Name = "" }},
		{"bad email", func(u *model.User) { u.Email = "not-an-email" }},
		{"unknown role", func(u *model.User) { u.Role = "Admin" }},
		{"unknown tier", func(u *model.User) { u.MembershipTier = "Monthly" }},
		{"uppercase flag name", func(u *model.User) {
			u.MedicalFlags = map[string]bool{"Wheelchair": true}
		}},
		{"caregiver without linked account", func(u *model.User) {
			u.Role = model.RoleCaregiver
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := validUser()
			tt.mutate(u)
			if err := v.Validate(u); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestValidate_CaregiverWithLinkedAccount(t *testing.T) {
	v := NewUserValidator(testLogger())
	u := validUser()
	u.Role = model.RoleCaregiver
	u.LinkedAccountID = "507f1f77bcf86cd799439011"
	if err := v.Validate(u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_FlagMap(t *testing.T) {
	v := NewUserValidator(testLogger())

	u := validUser()
	u.MedicalFlags = map[string]bool{"wheelchair": true, "hearing_loop": false}
	if err := v.Validate(u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u.MedicalFlags = map[string]bool{"bad name!": true}
	if err := v.Validate(u); err == nil {
		t.Error("expected a validation error for a malformed flag name")
	}
}
