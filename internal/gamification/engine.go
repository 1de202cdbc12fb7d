// Package gamification applies the point-award rules driven by completion
// events. The engine is stateless; it mutates the GamificationData record
// handed to it and assumes exclusive access for the duration of the call.
package gamification

import (
	"time"

	"github.com/chorekeep/chorekeep/internal/constants"
	"github.com/chorekeep/chorekeep/internal/models"
	"github.com/chorekeep/chorekeep/internal/utils"
)

type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// AwardTaskCompleted grants the per-task award and advances the
// daily-completion streak for the given day key.
func (e *Engine) AwardTaskCompleted(data *models.GamificationData, today string, now time.Time) {
	data.AddPoints(constants.PointsTaskCompleted)
	e.advanceDailyStreak(data, today)
	e.checkAchievements(data, now)
}

// AwardAllTasksCompleted grants the perfect-day bonus.
func (e *Engine) AwardAllTasksCompleted(data *models.GamificationData, now time.Time) {
	data.AddPoints(constants.PointsAllTasksCompleted)
	unlock(data, models.AchievementPerfectionist, now)
	e.checkAchievements(data, now)
}

// advanceDailyStreak updates the consecutive-day completion counters.
// Multiple completions on the same calendar day count once.
func (e *Engine) advanceDailyStreak(data *models.GamificationData, today string) {
	day, err := utils.ParseDay(today)
	if err != nil {
		return
	}

	switch {
	case data.LastTaskDate == "":
		data.Streak = 1
	default:
		last, err := utils.ParseDay(data.LastTaskDate)
		if err != nil {
			data.Streak = 1
			break
		}
		switch day.Sub(last) {
		case 0:
			// Already counted today.
		case 1:
			data.Streak++
		default:
			data.Streak = 1
		}
	}

	data.LastTaskDate = today
	if data.Streak > data.MaxStreak {
		data.MaxStreak = data.Streak
	}
}

// checkAchievements unlocks any milestone the current state satisfies.
// Unlocking records the flag and date only; achievement point values are
// display weights and never feed the total.
func (e *Engine) checkAchievements(data *models.GamificationData, now time.Time) {
	unlock(data, models.AchievementFirstTask, now)
	if data.Streak >= 3 {
		unlock(data, models.AchievementStreakOfThree, now)
	}
	if data.Streak >= 7 {
		unlock(data, models.AchievementStreakOfSeven, now)
	}
	if data.MaxStreak >= 14 {
		unlock(data, models.AchievementConsistent, now)
	}
	if data.TotalPoints >= 50 {
		unlock(data, models.AchievementProductive, now)
	}
	if data.TotalPoints >= 100 {
		unlock(data, models.AchievementCentenary, now)
	}
	if data.TotalPoints >= 1000 {
		unlock(data, models.AchievementMillionaire, now)
	}
}

func unlock(data *models.GamificationData, title string, at time.Time) {
	for i := range data.Achievements {
		if data.Achievements[i].Title == title {
			data.Achievements[i].Unlock(at)
			return
		}
	}
}
