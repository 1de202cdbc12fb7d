package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chorekeep/chorekeep/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestJSONStoreNotFoundOnFreshStore(t *testing.T) {
	s := newTestJSONStore(t)

	if _, err := s.LoadTasks(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadTasks on fresh store: %v, want ErrNotFound", err)
	}
	if _, err := s.LoadGamification(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadGamification on fresh store: %v, want ErrNotFound", err)
	}
	if _, err := s.LoadFocus(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFocus on fresh store: %v, want ErrNotFound", err)
	}
}

func TestJSONStoreSavedEmptyCollectionIsNotMissing(t *testing.T) {
	s := newTestJSONStore(t)

	if err := s.SaveTasks([]models.Task{}); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}
	tasks, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks after saving empty: %v, want nil", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestJSONStoreTasksRoundTrip(t *testing.T) {
	s := newTestJSONStore(t)

	daily := models.NewDailyTask("Make the bed")
	specific := models.NewSpecificTask("Dentist", "2026-04-02")
	specific.HasReminder = true
	specific.ReminderTime = "09:30"

	if err := s.SaveTasks([]models.Task{daily, specific}); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	loaded, err := s.LoadTasks()
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("got %d tasks, want 2", len(loaded))
	}
	if loaded[0].ID != daily.ID || loaded[0].Kind != models.TaskKindDaily {
		t.Errorf("first task mismatch: %+v", loaded[0])
	}
	if loaded[1].SpecificDate == nil || *loaded[1].SpecificDate != "2026-04-02" {
		t.Errorf("SpecificDate lost: %+v", loaded[1])
	}
	if loaded[1].ReminderTime != "09:30" {
		t.Errorf("ReminderTime = %q, want 09:30", loaded[1].ReminderTime)
	}
}

func TestJSONStoreRecordsRoundTrip(t *testing.T) {
	s := newTestJSONStore(t)

	completedAt := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	rec := models.NewDailyRecord("2026-03-15", []models.TaskStatus{
		{TaskID: "a", Completed: true, CompletedAt: &completedAt},
		{TaskID: "b"},
	})
	rec.BonusAwarded = true

	if err := s.SaveRecords([]models.DailyRecord{rec}); err != nil {
		t.Fatalf("SaveRecords failed: %v", err)
	}

	loaded, err := s.LoadRecords()
	if err != nil {
		t.Fatalf("LoadRecords failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].Date != "2026-03-15" || !loaded[0].BonusAwarded {
		t.Fatalf("record mismatch: %+v", loaded)
	}
	if got := loaded[0].Statuses[0].CompletedAt; got == nil || !got.Equal(completedAt) {
		t.Errorf("CompletedAt = %v, want %v", got, completedAt)
	}
	if loaded[0].Statuses[1].CompletedAt != nil {
		t.Error("pending status gained a CompletedAt")
	}
}

func TestJSONStoreGamificationRoundTrip(t *testing.T) {
	s := newTestJSONStore(t)

	data := models.NewGamificationData()
	data.AddPoints(125)
	data.Streak = 3
	data.LastTaskDate = "2026-03-15"

	if err := s.SaveGamification(data); err != nil {
		t.Fatalf("SaveGamification failed: %v", err)
	}
	loaded, err := s.LoadGamification()
	if err != nil {
		t.Fatalf("LoadGamification failed: %v", err)
	}
	if loaded.TotalPoints != 125 || loaded.Level != 2 || loaded.Streak != 3 {
		t.Errorf("gamification mismatch: %+v", loaded)
	}
	if len(loaded.Achievements) != len(data.Achievements) {
		t.Errorf("achievements lost: %d vs %d", len(loaded.Achievements), len(data.Achievements))
	}
}

func TestJSONStoreCorruptDocument(t *testing.T) {
	s := newTestJSONStore(t)

	if err := os.WriteFile(filepath.Join(s.Path(), "tasks.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := s.LoadTasks()
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("corrupt documents must not be reported as ErrNotFound")
	}
}

func TestJSONStoreOverwrite(t *testing.T) {
	s := newTestJSONStore(t)

	if err := s.SaveHabits([]models.Habit{models.NewHabit("Read", "book", "yellow", 30, "minutes", models.HabitCategoryLearning)}); err != nil {
		t.Fatal(err)
	}
	replacement := models.NewHabit("Meditate", "brain", "purple", 10, "minutes", models.HabitCategoryMindfulness)
	if err := s.SaveHabits([]models.Habit{replacement}); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.LoadHabits()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Name != "Meditate" {
		t.Errorf("saves must replace the whole document, got %+v", loaded)
	}
}
