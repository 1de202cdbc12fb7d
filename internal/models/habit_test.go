package models

import "testing"

func TestHabitStreakFirstCompletion(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	s.Update(true, "2026-03-15")

	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", s.CurrentStreak)
	}
	if s.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", s.LongestStreak)
	}
	if s.LastCompletedDate != "2026-03-15" {
		t.Errorf("LastCompletedDate = %q, want 2026-03-15", s.LastCompletedDate)
	}
	if s.TotalCompletions != 1 {
		t.Errorf("TotalCompletions = %d, want 1", s.TotalCompletions)
	}
}

func TestHabitStreakConsecutiveDays(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	for _, day := range []string{"2026-03-15", "2026-03-16", "2026-03-17"} {
		s.Update(true, day)
	}

	if s.CurrentStreak != 3 {
		t.Errorf("CurrentStreak = %d, want 3", s.CurrentStreak)
	}
	if s.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", s.LongestStreak)
	}
}

func TestHabitStreakSameDayNoDoubleCount(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	s.Update(true, "2026-03-15")
	s.Update(true, "2026-03-16")
	s.Update(true, "2026-03-16")

	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 (same day counts once)", s.CurrentStreak)
	}
	if s.TotalCompletions != 3 {
		t.Errorf("TotalCompletions = %d, want 3", s.TotalCompletions)
	}
}

func TestHabitStreakGapResetsToOne(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	s.Update(true, "2026-03-15")
	s.Update(true, "2026-03-16")
	s.Update(true, "2026-03-20")

	if s.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1 after a gap", s.CurrentStreak)
	}
	if s.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", s.LongestStreak)
	}
	if s.LastCompletedDate != "2026-03-20" {
		t.Errorf("LastCompletedDate = %q, want 2026-03-20", s.LastCompletedDate)
	}
}

func TestHabitStreakCrossesMonthBoundary(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	s.Update(true, "2026-03-31")
	s.Update(true, "2026-04-01")

	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2 across the month boundary", s.CurrentStreak)
	}
}

func TestHabitStreakUncompleteIsNoOp(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	s.Update(true, "2026-03-15")
	s.Update(true, "2026-03-16")

	before := s
	s.Update(false, "2026-03-16")
	if s != before {
		t.Errorf("un-completing mutated the streak: %+v -> %+v", before, s)
	}
}

func TestHabitStreakInvalidDayKeyIsNoOp(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	s.Update(true, "2026-03-15")

	before := s
	s.Update(true, "not-a-day")
	if s != before {
		t.Errorf("invalid day key mutated the streak: %+v -> %+v", before, s)
	}
}

func TestHabitStreakLongestSurvivesReset(t *testing.T) {
	s := HabitStreak{HabitID: "h1"}
	days := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-10", "2026-03-11"}
	for _, day := range days {
		s.Update(true, day)
	}

	if s.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", s.CurrentStreak)
	}
	if s.LongestStreak != 4 {
		t.Errorf("LongestStreak = %d, want 4", s.LongestStreak)
	}
}

func TestNewHabit(t *testing.T) {
	h := NewHabit("Read", "book", "yellow", 30, "minutes", HabitCategoryLearning)
	if h.ID == "" {
		t.Error("expected a generated id")
	}
	if !h.Active {
		t.Error("new habits start active")
	}
	if h.Target != 30 || h.Unit != "minutes" {
		t.Errorf("target/unit = %d/%q, want 30/minutes", h.Target, h.Unit)
	}
}

func TestPresetHabitsHaveUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, preset := range PresetHabits() {
		if seen[preset.Name] {
			t.Errorf("duplicate preset name %q", preset.Name)
		}
		seen[preset.Name] = true
		if preset.Target < 1 {
			t.Errorf("preset %q has target %d", preset.Name, preset.Target)
		}
	}
}
