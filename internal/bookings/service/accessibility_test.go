package service

import (
	"testing"

	"careconnect/pkg/model"
)

func TestCompatible(t *testing.T) {
	tests := []struct {
		name         string
		userFlags    map[string]bool
		requirements map[string]bool
		want         bool
	}{
		{
			name: "no flags, no requirements",
			want: true,
		},
		{
			name:         "wheelchair user, accessible activity",
			userFlags:    map[string]bool{"wheelchair": true},
			requirements: map[string]bool{"accessible": true},
			want:         true,
		},
		{
			name:      "wheelchair user, activity silent on accessibility",
			userFlags: map[string]bool{"wheelchair": true},
			want:      false,
		},
		{
			name:         "wheelchair user, activity explicitly not accessible",
			userFlags:    map[string]bool{"wheelchair": true},
			requirements: map[string]bool{"accessible": false},
			want:         false,
		},
		{
			name:         "wheelchair flag off imposes nothing",
			userFlags:    map[string]bool{"wheelchair": false},
			requirements: map[string]bool{"accessible": false},
			want:         true,
		},
		{
			name:         "generic flag fails only when declared unsupported",
			userFlags:    map[string]bool{"hearing_loop": true},
			requirements: map[string]bool{"hearing_loop": false},
			want:         false,
		},
		{
			name:      "generic flag passes when activity is silent",
			userFlags: map[string]bool{"hearing_loop": true},
			want:      true,
		},
		{
			name:         "one failing flag fails the whole match",
			userFlags:    map[string]bool{"wheelchair": true, "hearing_loop": true},
			requirements: map[string]bool{"accessible": true, "hearing_loop": false},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &model.User{MedicalFlags: tt.userFlags}
			activity := &model.Activity{Requirements: tt.requirements}
			if got := Compatible(user, activity); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
