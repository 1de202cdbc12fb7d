package models

import (
	"testing"
	"time"
)

func TestNewDailyTask(t *testing.T) {
	task := NewDailyTask("Make the bed")
	if task.ID == "" {
		t.Error("expected a generated id")
	}
	if task.Kind != TaskKindDaily || !task.RepeatDaily {
		t.Errorf("daily task has kind %q, repeat %v", task.Kind, task.RepeatDaily)
	}
	if task.SpecificDate != nil {
		t.Error("daily task must not carry a date")
	}
}

func TestNewSpecificTask(t *testing.T) {
	task := NewSpecificTask("Dentist", "2026-04-02")
	if task.Kind != TaskKindSpecific || task.RepeatDaily {
		t.Errorf("specific task has kind %q, repeat %v", task.Kind, task.RepeatDaily)
	}
	if task.SpecificDate == nil || *task.SpecificDate != "2026-04-02" {
		t.Errorf("SpecificDate = %v, want 2026-04-02", task.SpecificDate)
	}
}

func TestDailyRecordCounts(t *testing.T) {
	now := time.Now()
	rec := NewDailyRecord("2026-03-15", []TaskStatus{
		{TaskID: "a", Completed: true, CompletedAt: &now},
		{TaskID: "b"},
		{TaskID: "c", Completed: true, CompletedAt: &now},
	})

	if got := rec.CompletedCount(); got != 2 {
		t.Errorf("CompletedCount = %d, want 2", got)
	}
	if got := rec.TotalCount(); got != 3 {
		t.Errorf("TotalCount = %d, want 3", got)
	}
	if rec.AllCompleted() {
		t.Error("AllCompleted should be false with a pending status")
	}
	if got := rec.CompletionRate(); got < 0.66 || got > 0.67 {
		t.Errorf("CompletionRate = %f, want ~0.667", got)
	}
}

func TestDailyRecordAllCompleted(t *testing.T) {
	now := time.Now()
	rec := NewDailyRecord("2026-03-15", []TaskStatus{
		{TaskID: "a", Completed: true, CompletedAt: &now},
	})
	if !rec.AllCompleted() {
		t.Error("single completed status should be a perfect day")
	}

	empty := NewDailyRecord("2026-03-15", nil)
	if empty.AllCompleted() {
		t.Error("an empty record is never a perfect day")
	}
	if empty.CompletionRate() != 0 {
		t.Errorf("empty CompletionRate = %f, want 0", empty.CompletionRate())
	}
}

func TestStatusIndex(t *testing.T) {
	rec := NewDailyRecord("2026-03-15", []TaskStatus{{TaskID: "a"}, {TaskID: "b"}})
	if got := rec.StatusIndex("b"); got != 1 {
		t.Errorf("StatusIndex(b) = %d, want 1", got)
	}
	if got := rec.StatusIndex("missing"); got != -1 {
		t.Errorf("StatusIndex(missing) = %d, want -1", got)
	}
}
