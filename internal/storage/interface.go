package storage

import (
	"errors"

	"github.com/chorekeep/chorekeep/internal/models"
)

// ErrNotFound is returned by Load* methods when the document has never
// been written. Callers substitute a default rather than treating this
// as a failure; the facade's LoadAll is the single place that does so.
var ErrNotFound = errors.New("document not found")

// Provider persists the application's collections as independently keyed
// whole documents. Every save overwrites the prior value; there is no
// incremental or delta persistence. Providers hold no retained ownership
// of the data they are handed.
type Provider interface {
	// Lifecycle
	Init() error
	Close() error

	// Tasks
	SaveTasks([]models.Task) error
	LoadTasks() ([]models.Task, error)

	// Daily records
	SaveRecords([]models.DailyRecord) error
	LoadRecords() ([]models.DailyRecord, error)

	// Categories
	SaveCategories([]models.TaskCategory) error
	LoadCategories() ([]models.TaskCategory, error)

	// Gamification
	SaveGamification(models.GamificationData) error
	LoadGamification() (models.GamificationData, error)

	// User data
	SaveUserData(models.UserData) error
	LoadUserData() (models.UserData, error)

	// Habits
	SaveHabits([]models.Habit) error
	LoadHabits() ([]models.Habit, error)
	SaveHabitEntries([]models.HabitEntry) error
	LoadHabitEntries() ([]models.HabitEntry, error)
	SaveHabitStreaks([]models.HabitStreak) error
	LoadHabitStreaks() ([]models.HabitStreak, error)

	// Focus timer
	SaveFocus(models.FocusData) error
	LoadFocus() (models.FocusData, error)

	// Utils
	Path() string
}
