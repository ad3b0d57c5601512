package sanitizer

import (
	"reflect"
	"testing"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims ends", "  Morning Yoga  ", "Morning Yoga"},
		{"collapses whitespace", "Art  &\tCraft\nWorkshop", "Art & Craft Workshop"},
		{"strips control chars", "Main\x00Hall\x1f", "Main Hall"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFlagName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Wheelchair", "wheelchair"},
		{" seizure risk ", "seizure_risk"},
		{"ACCESSIBLE", "accessible"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := SanitizeFlagName(tt.input); got != tt.want {
			t.Errorf("SanitizeFlagName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizeFlagMap(t *testing.T) {
	got := SanitizeFlagMap(map[string]bool{
		"Wheelchair":   true,
		" wheelchair ": false, // collision resolves to true
		"Seizure Risk": false,
		"!!!":          true, // unusable key dropped
	})

	want := map[string]bool{
		"wheelchair":   true,
		"seizure_risk": false,
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeFlagMap = %v, want %v", got, want)
	}
}

func TestSanitizeFlagMap_Nil(t *testing.T) {
	if SanitizeFlagMap(nil) != nil {
		t.Error("nil map should stay nil")
	}
}
