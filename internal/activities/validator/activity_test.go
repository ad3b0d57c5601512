package validator

import (
	"testing"
	"time"

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

func validActivity() *model.Activity {
	return &model.Activity{
		Title:          "Art Workshop",
		StartTime:      time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		BaseCapacity:   10,
		VolunteerSlots: 2,
		Requirements:   map[string]bool{"accessible": true},
	}
}

func TestValidate_ValidActivity(t *testing.T) {
	v := NewActivityValidator(testLogger())
	if err := v.Validate(validActivity()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RejectsBadActivity(t *testing.T) {
	v := NewActivityValidator(testLogger())

	tests := []struct {
		name   string
		mutate func(*model.Activity)
	}{
		{"missing title", func(a *model.Activity) { a.Title = "" }},
		{"missing start time", func(a *model.Activity) { a.StartTime = time.Time{} }},
		{"negative capacity", func(a *model.Activity) { a.BaseCapacity = -1 }},
		{"too many volunteer slots", func(a *model.Activity) { a.VolunteerSlots = 51 }},
		{"end before start", func(a *model.Activity) {
			end := a.StartTime.Add(-time.Hour)
			a.EndTime = &end
		}},
		{"no capacity at all", func(a *model.Activity) {
			a.BaseCapacity = 0
			a.VolunteerSlots = 0
		}},
		{"malformed requirement flag", func(a *model.Activity) {
			a.Requirements = map[string]bool{"Not A Flag": true}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validActivity()
			tt.mutate(a)
			if err := v.Validate(a); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
