package cli

import (
	"fmt"

	"github.com/chorekeep/chorekeep/internal/constants"
)

type StatsCmd struct {
	Achievements bool `help:"Include the full achievement list."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	gami := ctx.Tracker.Gamification()

	fmt.Println(titleStyle.Render("Progress"))
	fmt.Printf("Level %d  %s\n", gami.Level,
		pointsStyle.Render(fmt.Sprintf("%d points", gami.TotalPoints)))
	toNext := constants.PointsPerLevel - gami.TotalPoints%constants.PointsPerLevel
	fmt.Printf("%d points to level %d\n", toNext, gami.Level+1)
	if gami.Streak > 0 {
		fmt.Printf("Daily streak: %s (best %d)\n",
			streakStyle.Render(fmt.Sprintf("%d", gami.Streak)), gami.MaxStreak)
	}

	// Completion rate over the last 7 recorded days.
	today := ctx.Tracker.Today()
	weekStart := today.AddDays(-6).Key()
	var done, total int
	for _, rec := range ctx.Tracker.Records() {
		if rec.Date >= weekStart && rec.Date <= today.Key() {
			done += rec.CompletedCount()
			total += rec.TotalCount()
		}
	}
	if total > 0 {
		fmt.Printf("Last 7 days: %d/%d tasks (%.0f%%)\n", done, total, 100*float64(done)/float64(total))
	}

	if minutes := ctx.Timer.FocusMinutesOn(today); minutes > 0 {
		fmt.Printf("Focus today: %d min (week: %d min)\n", minutes, ctx.Timer.FocusMinutesSince(today, 7))
	}

	unlocked := 0
	for _, a := range gami.Achievements {
		if a.Unlocked {
			unlocked++
		}
	}
	fmt.Printf("\nAchievements: %d/%d unlocked\n", unlocked, len(gami.Achievements))
	if c.Achievements {
		for _, a := range gami.Achievements {
			if a.Unlocked {
				date := ""
				if a.UnlockedDate != nil {
					date = a.UnlockedDate.Format(constants.DateFormat)
				}
				fmt.Println(doneStyle.Render(fmt.Sprintf("  ★ %-16s %s", a.Title, date)))
			} else {
				fmt.Println(pendingStyle.Render(fmt.Sprintf("  ☆ %s", a.Title)))
			}
		}
	}

	var habitLines int
	for _, habit := range ctx.Tracker.Habits() {
		if !habit.Active {
			continue
		}
		streak := ctx.Tracker.StreakFor(habit.ID)
		if streak.TotalCompletions == 0 {
			continue
		}
		if habitLines == 0 {
			fmt.Println("\nHabit streaks:")
		}
		habitLines++
		fmt.Printf("  %-22s %s (best %d, total %d)\n", habit.Name,
			streakStyle.Render(fmt.Sprintf("%d", streak.CurrentStreak)),
			streak.LongestStreak, streak.TotalCompletions)
	}

	ctx.PrintAdvisories()
	return nil
}
