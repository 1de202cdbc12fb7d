package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/chorekeep/chorekeep/internal/utils"
)

type HabitCategory string

const (
	HabitCategoryHealth       HabitCategory = "health"
	HabitCategoryFitness      HabitCategory = "fitness"
	HabitCategoryMindfulness  HabitCategory = "mindfulness"
	HabitCategoryProductivity HabitCategory = "productivity"
	HabitCategoryLearning     HabitCategory = "learning"
	HabitCategorySocial       HabitCategory = "social"
	HabitCategoryCreative     HabitCategory = "creative"
	HabitCategoryFinance      HabitCategory = "finance"
)

// Habit is a recurring behavior tracked against a daily numeric target.
type Habit struct {
	ID           string        `json:"id"`
	Name         string        `json:"name" validate:"required,max=100"`
	Icon         string        `json:"icon"`
	Color        string        `json:"color"`
	Target       int           `json:"target" validate:"gte=1"`
	Unit         string        `json:"unit"`
	Category     HabitCategory `json:"category"`
	Active       bool          `json:"active"`
	CreatedAt    time.Time     `json:"created_at"`
	ReminderTime string        `json:"reminder_time,omitempty"` // HH:MM format
	HasReminder  bool          `json:"has_reminder"`
}

// NewHabit creates an active habit with a fresh identity.
func NewHabit(name, icon, color string, target int, unit string, category HabitCategory) Habit {
	return Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Icon:      icon,
		Color:     color,
		Target:    target,
		Unit:      unit,
		Category:  category,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

// HabitEntry is one habit's progress on one calendar day. At most one
// entry exists per (HabitID, Date) pair.
type HabitEntry struct {
	ID          string     `json:"id"`
	HabitID     string     `json:"habit_id"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Note        string     `json:"note,omitempty"`
}

// NewHabitEntry creates an entry for the given habit and day key.
func NewHabitEntry(habitID, date string) HabitEntry {
	return HabitEntry{
		ID:      uuid.New().String(),
		HabitID: habitID,
		Date:    date,
	}
}

// HabitStreak caches streak counters per habit. It is recomputable from
// the entry history but maintained incrementally on each completion.
type HabitStreak struct {
	HabitID           string `json:"habit_id"`
	CurrentStreak     int    `json:"current_streak"`
	LongestStreak     int    `json:"longest_streak"`
	LastCompletedDate string `json:"last_completed_date,omitempty"` // YYYY-MM-DD
	TotalCompletions  int    `json:"total_completions"`
}

// Update applies one completion event for the given day key. Un-completing
// a day never rewinds the counters; only completions mutate the streak.
// Day adjacency is calendar-day based, so two completions on the same day
// never advance the streak twice.
func (s *HabitStreak) Update(completed bool, date string) {
	if !completed {
		return
	}

	day, err := utils.ParseDay(date)
	if err != nil {
		return
	}

	s.TotalCompletions++

	switch {
	case s.LastCompletedDate == "":
		// First-ever completion.
		s.CurrentStreak = 1
	default:
		last, err := utils.ParseDay(s.LastCompletedDate)
		if err != nil {
			s.CurrentStreak = 1
			break
		}
		switch day.Sub(last) {
		case 0:
			// Same day re-marked; streak length unchanged.
		case 1:
			s.CurrentStreak++
		default:
			// Gap detected. The completing day itself counts, so the
			// streak restarts at 1, not 0.
			s.CurrentStreak = 1
		}
	}

	s.LastCompletedDate = date
	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
}

// PresetHabits is the fixed catalog of templates users can instantiate.
func PresetHabits() []Habit {
	return []Habit{
		NewHabit("Drink water", "drop", "cyan", 8, "glasses", HabitCategoryHealth),
		NewHabit("Sleep 8 hours", "moon", "indigo", 8, "hours", HabitCategoryHealth),
		NewHabit("Take vitamins", "pills", "orange", 1, "dose", HabitCategoryHealth),
		NewHabit("Walk", "walk", "green", 10000, "steps", HabitCategoryFitness),
		NewHabit("Exercise", "run", "red", 30, "minutes", HabitCategoryFitness),
		NewHabit("Stretch", "flex", "mint", 15, "minutes", HabitCategoryFitness),
		NewHabit("Meditate", "brain", "purple", 10, "minutes", HabitCategoryMindfulness),
		NewHabit("Gratitude journal", "heart", "pink", 3, "things", HabitCategoryMindfulness),
		NewHabit("Plan the day", "calendar", "orange", 1, "time", HabitCategoryProductivity),
		NewHabit("Inbox zero", "envelope", "blue", 1, "time", HabitCategoryProductivity),
		NewHabit("Read", "book", "yellow", 30, "minutes", HabitCategoryLearning),
		NewHabit("Practice a language", "globe", "green", 20, "minutes", HabitCategoryLearning),
		NewHabit("Call family", "phone", "pink", 1, "call", HabitCategorySocial),
		NewHabit("Draw", "pencil", "yellow", 15, "minutes", HabitCategoryCreative),
		NewHabit("Play an instrument", "music", "purple", 30, "minutes", HabitCategoryCreative),
		NewHabit("Review spending", "chart", "mint", 1, "time", HabitCategoryFinance),
	}
}
