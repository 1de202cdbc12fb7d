package models

import "time"

// GamificationData is the points/level/achievement state derived from
// completion events. Points only ever accumulate; there is no deduction
// path, and the level never lowers once reached.
type GamificationData struct {
	TotalPoints  int           `json:"total_points"`
	Level        int           `json:"level"`
	Streak       int           `json:"streak"`     // consecutive days with at least one completion
	MaxStreak    int           `json:"max_streak"`
	LastTaskDate string        `json:"last_task_date,omitempty"` // YYYY-MM-DD
	Achievements []Achievement `json:"achievements"`
}

// NewGamificationData returns fresh state seeded with the achievement catalog.
func NewGamificationData() GamificationData {
	return GamificationData{
		Level:        1,
		Achievements: DefaultAchievements(),
	}
}

// AddPoints adds to the total and recomputes the level. The level is
// floor(total/100)+1 but only ever raised, never lowered.
func (g *GamificationData) AddPoints(points int) {
	g.TotalPoints += points
	if newLevel := g.TotalPoints/100 + 1; newLevel > g.Level {
		g.Level = newLevel
	}
}

// Achievement is a named milestone. Its Points field is a display weight;
// unlocking an achievement does not feed the points total.
type Achievement struct {
	Title        string     `json:"title"`
	Unlocked     bool       `json:"unlocked"`
	UnlockedDate *time.Time `json:"unlocked_date,omitempty"`
	Points       int        `json:"points"`
}

// Unlock marks the achievement unlocked at the given time, once.
func (a *Achievement) Unlock(at time.Time) bool {
	if a.Unlocked {
		return false
	}
	a.Unlocked = true
	a.UnlockedDate = &at
	return true
}

// Achievement titles referenced by the gamification engine's unlock rules.
const (
	AchievementFirstTask     = "First Task"
	AchievementStreakOfThree = "Streak of 3"
	AchievementStreakOfSeven = "Streak of 7"
	AchievementConsistent    = "Consistent"
	AchievementPerfectionist = "Perfectionist"
	AchievementProductive    = "Productive"
	AchievementCentenary     = "Centenary"
	AchievementMillionaire   = "Millionaire"
)

// DefaultAchievements is the fixed catalog seeded at creation.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{Title: AchievementFirstTask, Points: 10},
		{Title: AchievementStreakOfThree, Points: 15},
		{Title: AchievementStreakOfSeven, Points: 25},
		{Title: AchievementConsistent, Points: 50},
		{Title: AchievementPerfectionist, Points: 100},
		{Title: AchievementProductive, Points: 20},
		{Title: AchievementCentenary, Points: 30},
		{Title: AchievementMillionaire, Points: 50},
	}
}
