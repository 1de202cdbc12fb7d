package utils

import (
	"testing"
	"time"
)

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if day.Year != 2026 || day.Month != time.March || day.Date != 15 {
		t.Errorf("got %+v, want 2026-03-15", day)
	}

	if _, err := ParseDay("03/15/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
	if _, err := ParseDay("2026-13-01"); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	for _, key := range []string{"2026-01-01", "2026-02-28", "2024-02-29", "2026-12-31"} {
		day, err := ParseDay(key)
		if err != nil {
			t.Fatalf("ParseDay(%q) failed: %v", key, err)
		}
		if got := day.Key(); got != key {
			t.Errorf("Key() = %q, want %q", got, key)
		}
	}
}

func TestDaySub(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same day", "2026-03-15", "2026-03-15", 0},
		{"consecutive", "2026-03-16", "2026-03-15", 1},
		{"reverse", "2026-03-15", "2026-03-16", -1},
		{"across month", "2026-04-01", "2026-03-31", 1},
		{"across year", "2027-01-01", "2026-12-31", 1},
		{"leap february", "2024-03-01", "2024-02-29", 1},
		{"week apart", "2026-03-22", "2026-03-15", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := ParseDay(tt.a)
			b, _ := ParseDay(tt.b)
			if got := a.Sub(b); got != tt.want {
				t.Errorf("Sub = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDayOfIgnoresClockTime(t *testing.T) {
	morning := time.Date(2026, 3, 15, 0, 0, 1, 0, time.Local)
	night := time.Date(2026, 3, 15, 23, 59, 59, 0, time.Local)
	if DayOf(morning) != DayOf(night) {
		t.Error("two times on the same calendar day must map to the same Day")
	}
}

func TestDayAddDays(t *testing.T) {
	day, _ := ParseDay("2026-02-28")
	if got := day.AddDays(1).Key(); got != "2026-03-01" {
		t.Errorf("AddDays(1) = %q, want 2026-03-01", got)
	}
	if got := day.AddDays(-28).Key(); got != "2026-01-31" {
		t.Errorf("AddDays(-28) = %q, want 2026-01-31", got)
	}
}

func TestDayBefore(t *testing.T) {
	a, _ := ParseDay("2026-03-15")
	b, _ := ParseDay("2026-03-16")
	if !a.Before(b) {
		t.Error("2026-03-15 should be before 2026-03-16")
	}
	if b.Before(a) {
		t.Error("2026-03-16 should not be before 2026-03-15")
	}
	if a.Before(a) {
		t.Error("a day is not before itself")
	}
}
