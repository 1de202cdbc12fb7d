package utils

import "testing"

func TestValidateTimeFormat(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, s := range valid {
		if !ValidateTimeFormat(s) {
			t.Errorf("ValidateTimeFormat(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "24:00", "12:60", "noon", "12-30"}
	for _, s := range invalid {
		if ValidateTimeFormat(s) {
			t.Errorf("ValidateTimeFormat(%q) = true, want false", s)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	for _, tz := range []string{"", "Local", "UTC", "America/New_York"} {
		if !ValidateTimezone(tz) {
			t.Errorf("ValidateTimezone(%q) = false, want true", tz)
		}
	}
	if ValidateTimezone("Mars/Olympus_Mons") {
		t.Error("ValidateTimezone accepted an unknown zone")
	}
}

func TestTodayInTimezone(t *testing.T) {
	day, err := TodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("TodayInTimezone failed: %v", err)
	}
	if _, err := ParseDay(day); err != nil {
		t.Errorf("TodayInTimezone returned a bad day key %q: %v", day, err)
	}

	if _, err := TodayInTimezone("Not/AZone"); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
