// Package tracker is the single mutation surface over the task/habit
// domain. It owns every top-level collection for the lifetime of the
// session and sequences the daily record engine, the gamification engine,
// and the persistence gateway so they cannot drift out of sync. All
// methods must be invoked from one logical execution context; the
// in-memory collections, not the stored copy, are the source of truth
// for every read within a session.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/chorekeep/chorekeep/internal/gamification"
	"github.com/chorekeep/chorekeep/internal/logger"
	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/notifier"
	"github.com/chorekeep/chorekeep/internal/storage"
	"github.com/chorekeep/chorekeep/internal/utils"
	"github.com/chorekeep/chorekeep/internal/validation"
)

// EventKind names a collection that changed.
type EventKind string

const (
	EventTasks        EventKind = "tasks"
	EventRecords      EventKind = "records"
	EventCategories   EventKind = "categories"
	EventGamification EventKind = "gamification"
	EventHabits       EventKind = "habits"
	EventUser         EventKind = "user"
	EventFocus        EventKind = "focus"
)

// Event is emitted to observers after each successful mutation.
type Event struct {
	Kind EventKind
}

// ErrTaskNotFound is returned when an operation names an unknown task.
var ErrTaskNotFound = errors.New("task not found")

// ErrHabitNotFound is returned when an operation names an unknown habit.
var ErrHabitNotFound = errors.New("habit not found")

// ErrCategoryNotFound is returned when an operation names an unknown category.
var ErrCategoryNotFound = errors.New("category not found")

// Config carries the tracker's injected collaborators.
type Config struct {
	// Notifier receives reminder side effects. Defaults to the no-op
	// implementation; the tracker never depends on delivery succeeding.
	Notifier notifier.Scheduler
	// Now supplies the current time. Defaults to time.Now.
	Now func() time.Time
	// Timezone determines which calendar day is "today". Empty means
	// the system local timezone.
	Timezone string
}

// Tracker is the model facade.
type Tracker struct {
	store    storage.Provider
	notify   notifier.Scheduler
	engine   *gamification.Engine
	validate *validation.Validator
	now      func() time.Time
	loc      *time.Location

	tasks        []models.Task
	records      []models.DailyRecord
	categories   []models.TaskCategory
	gamification models.GamificationData
	user         models.UserData
	habits       []models.Habit
	habitEntries []models.HabitEntry
	habitStreaks []models.HabitStreak

	advisories []string
	observers  []func(Event)
}

// New creates a Tracker over the given provider. Call LoadAll before use.
func New(store storage.Provider, cfg Config) (*Tracker, error) {
	if cfg.Notifier == nil {
		cfg.Notifier = notifier.NewNop()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return &Tracker{
		store:    store,
		notify:   cfg.Notifier,
		engine:   gamification.New(),
		validate: validation.New(),
		now:      cfg.Now,
		loc:      loc,
	}, nil
}

// OnChange registers an observer invoked after each successful mutation.
// Observers run synchronously on the mutating context and must not call
// back into the tracker.
func (t *Tracker) OnChange(fn func(Event)) {
	t.observers = append(t.observers, fn)
}

func (t *Tracker) emit(kind EventKind) {
	for _, fn := range t.observers {
		fn(Event{Kind: kind})
	}
}

// Advisories returns the non-fatal messages accumulated from degraded
// loads and failed saves, for optional display.
func (t *Tracker) Advisories() []string {
	return t.advisories
}

func (t *Tracker) advise(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	t.advisories = append(t.advisories, msg)
	logger.Warn(msg)
}

// LoadAll loads every document, substituting a well-defined default for
// anything missing or unreadable. This is the only place load errors are
// converted; nothing on the startup path ever fails hard on data. Seeded
// defaults are persisted back immediately so the next load finds them.
func (t *Tracker) LoadAll() {
	tasks, err := t.store.LoadTasks()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("tasks could not be loaded, starting from defaults: %v", err)
		}
		tasks = nil
		for i, title := range models.DefaultTaskTitles() {
			task := models.NewDailyTask(title)
			task.SortOrder = i
			tasks = append(tasks, task)
		}
		t.tasks = tasks
		t.saveTasks()
	} else {
		t.tasks = tasks
	}

	records, err := t.store.LoadRecords()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("daily records could not be loaded, starting empty: %v", err)
		}
		records = nil
	}
	t.records = records

	categories, err := t.store.LoadCategories()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("categories could not be loaded, restoring the default set: %v", err)
		}
		t.categories = models.DefaultCategories()
		t.saveCategories()
	} else {
		t.categories = categories
	}

	gami, err := t.store.LoadGamification()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("gamification data could not be loaded, resetting: %v", err)
		}
		t.gamification = models.NewGamificationData()
		t.saveGamification()
	} else {
		t.gamification = gami
	}

	user, err := t.store.LoadUserData()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("user data could not be loaded, resetting: %v", err)
		}
		t.user = models.NewUserData()
		t.saveUserData()
	} else {
		t.user = user
	}

	habits, err := t.store.LoadHabits()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("habits could not be loaded, starting empty: %v", err)
		}
		habits = nil
	}
	t.habits = habits

	entries, err := t.store.LoadHabitEntries()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("habit entries could not be loaded, starting empty: %v", err)
		}
		entries = nil
	}
	t.habitEntries = entries

	streaks, err := t.store.LoadHabitStreaks()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.advise("habit streaks could not be loaded, starting empty: %v", err)
		}
		streaks = nil
	}
	t.habitStreaks = streaks

	t.CleanupOrphanedTasks()
}

// Save wrappers. A failed save is logged and recorded as an advisory but
// never propagated: the in-memory state stays authoritative and the next
// mutation retries the write.

func (t *Tracker) saveTasks() {
	if err := t.store.SaveTasks(t.tasks); err != nil {
		t.advise("failed to save tasks: %v", err)
	}
}

func (t *Tracker) saveRecords() {
	if err := t.store.SaveRecords(t.records); err != nil {
		t.advise("failed to save records: %v", err)
	}
}

func (t *Tracker) saveCategories() {
	if err := t.store.SaveCategories(t.categories); err != nil {
		t.advise("failed to save categories: %v", err)
	}
}

func (t *Tracker) saveGamification() {
	if err := t.store.SaveGamification(t.gamification); err != nil {
		t.advise("failed to save gamification data: %v", err)
	}
}

func (t *Tracker) saveUserData() {
	if err := t.store.SaveUserData(t.user); err != nil {
		t.advise("failed to save user data: %v", err)
	}
}

func (t *Tracker) saveHabits() {
	if err := t.store.SaveHabits(t.habits); err != nil {
		t.advise("failed to save habits: %v", err)
	}
}

func (t *Tracker) saveHabitEntries() {
	if err := t.store.SaveHabitEntries(t.habitEntries); err != nil {
		t.advise("failed to save habit entries: %v", err)
	}
}

func (t *Tracker) saveHabitStreaks() {
	if err := t.store.SaveHabitStreaks(t.habitStreaks); err != nil {
		t.advise("failed to save habit streaks: %v", err)
	}
}

// Today returns the current calendar day in the tracker's timezone.
// Callers deriving day keys must go through this rather than the system
// clock so every surface agrees on which day "today" is.
func (t *Tracker) Today() utils.Day {
	return utils.DayOf(t.now().In(t.loc))
}

// TodayKey returns today's day key in the tracker's timezone.
func (t *Tracker) TodayKey() string {
	return t.Today().Key()
}

// Read accessors. The returned slices are the tracker's own backing
// storage; callers must treat them as read-only.

func (t *Tracker) Tasks() []models.Task                  { return t.tasks }
func (t *Tracker) Records() []models.DailyRecord         { return t.records }
func (t *Tracker) Categories() []models.TaskCategory     { return t.categories }
func (t *Tracker) Gamification() models.GamificationData { return t.gamification }
func (t *Tracker) User() models.UserData                 { return t.user }
func (t *Tracker) Habits() []models.Habit                { return t.habits }
func (t *Tracker) HabitEntries() []models.HabitEntry     { return t.habitEntries }

// TaskByID returns the task with the given id.
func (t *Tracker) TaskByID(id string) (models.Task, error) {
	for _, task := range t.tasks {
		if task.ID == id {
			return task, nil
		}
	}
	return models.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// SetUserName stores the sanitized display name.
func (t *Tracker) SetUserName(name string) {
	t.user.Name = validation.SanitizeUserName(name)
	t.saveUserData()
	t.emit(EventUser)
}

// MarkLaunched clears the first-launch flag.
func (t *Tracker) MarkLaunched() {
	if !t.user.FirstLaunch {
		return
	}
	t.user.FirstLaunch = false
	t.saveUserData()
	t.emit(EventUser)
}
