package tracker

import (
	"fmt"
	"strings"

	"github.com/chorekeep/chorekeep/internal/logger"
	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/validation"
)

// AddHabit validates and appends a new habit.
func (t *Tracker) AddHabit(habit models.Habit) (models.Habit, error) {
	habit.Name = strings.TrimSpace(habit.Name)
	if err := t.validate.ValidateHabit(habit); err != nil {
		return models.Habit{}, err
	}
	t.habits = append(t.habits, habit)
	t.saveHabits()

	if habit.HasReminder {
		reminderTask := models.Task{ID: habit.ID, Title: habit.Name, RepeatDaily: true}
		if err := t.notify.ScheduleReminder(reminderTask, habit.ReminderTime, true); err != nil {
			logger.Debug("habit reminder not scheduled", "habit", habit.ID, "error", err)
		}
	}

	t.emit(EventHabits)
	return habit, nil
}

// AddPresetHabit instantiates a habit from the fixed template catalog by
// case-insensitive name.
func (t *Tracker) AddPresetHabit(name string) (models.Habit, error) {
	for _, preset := range models.PresetHabits() {
		if strings.EqualFold(preset.Name, strings.TrimSpace(name)) {
			return t.AddHabit(preset)
		}
	}
	return models.Habit{}, fmt.Errorf("%w: no preset named %q", ErrHabitNotFound, name)
}

// HabitByID returns the habit with the given id.
func (t *Tracker) HabitByID(id string) (models.Habit, error) {
	for _, h := range t.habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
}

// HabitByName finds a habit by case-insensitive name.
func (t *Tracker) HabitByName(name string) (models.Habit, error) {
	for _, h := range t.habits {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, name)
}

// UpdateHabit replaces the stored habit with the given edit.
func (t *Tracker) UpdateHabit(habit models.Habit) error {
	if err := t.validate.ValidateHabit(habit); err != nil {
		return err
	}
	for i := range t.habits {
		if t.habits[i].ID == habit.ID {
			t.habits[i] = habit
			t.saveHabits()
			t.emit(EventHabits)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrHabitNotFound, habit.ID)
}

// DeactivateHabit soft-removes a habit by clearing its active flag,
// keeping its entry and streak history.
func (t *Tracker) DeactivateHabit(habitID string) error {
	for i := range t.habits {
		if t.habits[i].ID == habitID {
			t.habits[i].Active = false
			t.saveHabits()
			t.emit(EventHabits)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
}

// DeleteHabit hard-removes a habit, cascading to its entry history and
// cached streak.
func (t *Tracker) DeleteHabit(habitID string) error {
	hi := -1
	for i := range t.habits {
		if t.habits[i].ID == habitID {
			hi = i
			break
		}
	}
	if hi < 0 {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
	}

	t.habits = append(t.habits[:hi], t.habits[hi+1:]...)
	t.saveHabits()

	kept := t.habitEntries[:0]
	for _, e := range t.habitEntries {
		if e.HabitID != habitID {
			kept = append(kept, e)
		}
	}
	t.habitEntries = kept
	t.saveHabitEntries()

	for i := range t.habitStreaks {
		if t.habitStreaks[i].HabitID == habitID {
			t.habitStreaks = append(t.habitStreaks[:i], t.habitStreaks[i+1:]...)
			break
		}
	}
	t.saveHabitStreaks()

	if err := t.notify.CancelReminder(habitID); err != nil {
		logger.Debug("habit reminder not cancelled", "habit", habitID, "error", err)
	}

	t.emit(EventHabits)
	return nil
}

// habitEntryIndex returns the index of the unique entry for the habit
// and day, or -1.
func (t *Tracker) habitEntryIndex(habitID, date string) int {
	for i := range t.habitEntries {
		if t.habitEntries[i].HabitID == habitID && t.habitEntries[i].Date == date {
			return i
		}
	}
	return -1
}

// streakIndex returns the index of the habit's streak record, creating
// one if absent.
func (t *Tracker) streakIndex(habitID string) int {
	for i := range t.habitStreaks {
		if t.habitStreaks[i].HabitID == habitID {
			return i
		}
	}
	t.habitStreaks = append(t.habitStreaks, models.HabitStreak{HabitID: habitID})
	return len(t.habitStreaks) - 1
}

// StreakFor returns the cached streak counters for the habit.
func (t *Tracker) StreakFor(habitID string) models.HabitStreak {
	for _, s := range t.habitStreaks {
		if s.HabitID == habitID {
			return s
		}
	}
	return models.HabitStreak{HabitID: habitID}
}

// EntriesForHabit returns the habit's entries within [startDate, endDate]
// inclusive; empty bounds are open.
func (t *Tracker) EntriesForHabit(habitID, startDate, endDate string) []models.HabitEntry {
	var out []models.HabitEntry
	for _, e := range t.habitEntries {
		if e.HabitID != habitID {
			continue
		}
		if startDate != "" && e.Date < startDate {
			continue
		}
		if endDate != "" && e.Date > endDate {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EntryFor returns the unique entry for the habit and day, if any.
func (t *Tracker) EntryFor(habitID, date string) (models.HabitEntry, bool) {
	if i := t.habitEntryIndex(habitID, date); i >= 0 {
		return t.habitEntries[i], true
	}
	return models.HabitEntry{}, false
}

// SetHabitProgress records progress toward the habit's daily target for
// the given day, creating the day's unique entry on first touch.
// Crossing the target completes the entry and feeds the streak engine;
// dropping back below the target un-completes the entry but never
// rewinds the streak counters.
func (t *Tracker) SetHabitProgress(habitID, date string, progress int) (models.HabitEntry, error) {
	habit, err := t.HabitByID(habitID)
	if err != nil {
		return models.HabitEntry{}, err
	}
	if progress < 0 {
		progress = 0
	}

	ei := t.habitEntryIndex(habitID, date)
	if ei < 0 {
		t.habitEntries = append(t.habitEntries, models.NewHabitEntry(habitID, date))
		ei = len(t.habitEntries) - 1
	}
	entry := &t.habitEntries[ei]

	wasCompleted := entry.Completed
	entry.Progress = progress

	switch {
	case progress >= habit.Target && !wasCompleted:
		now := t.now()
		entry.Completed = true
		entry.CompletedAt = &now
		si := t.streakIndex(habitID)
		t.habitStreaks[si].Update(true, date)
		t.saveHabitStreaks()
	case progress < habit.Target && wasCompleted:
		entry.Completed = false
		entry.CompletedAt = nil
	}

	t.saveHabitEntries()
	t.emit(EventHabits)
	return *entry, nil
}

// MarkHabitDone records the habit's full target for the day in one step.
func (t *Tracker) MarkHabitDone(habitID, date string) (models.HabitEntry, error) {
	habit, err := t.HabitByID(habitID)
	if err != nil {
		return models.HabitEntry{}, err
	}
	return t.SetHabitProgress(habitID, date, habit.Target)
}

// SetHabitNote attaches a sanitized free-text note to the day's entry.
func (t *Tracker) SetHabitNote(habitID, date, note string) error {
	if _, err := t.HabitByID(habitID); err != nil {
		return err
	}
	ei := t.habitEntryIndex(habitID, date)
	if ei < 0 {
		t.habitEntries = append(t.habitEntries, models.NewHabitEntry(habitID, date))
		ei = len(t.habitEntries) - 1
	}
	t.habitEntries[ei].Note = validation.SanitizeText(note)
	t.saveHabitEntries()
	t.emit(EventHabits)
	return nil
}
