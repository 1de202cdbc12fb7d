package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/chorekeep/chorekeep/internal/models"
)

type HabitCmd struct {
	Add        HabitAddCmd        `cmd:"" help:"Add a new habit."`
	Preset     HabitPresetCmd     `cmd:"" help:"Add a habit from the preset catalog."`
	List       HabitListCmd       `cmd:"" help:"List habits with their streaks."`
	Track      HabitTrackCmd      `cmd:"" help:"Record progress toward a habit's daily target."`
	Done       HabitDoneCmd       `cmd:"" help:"Mark a habit fully done for a day."`
	Note       HabitNoteCmd       `cmd:"" help:"Attach a note to a habit's day entry."`
	Log        HabitLogCmd        `cmd:"" help:"Show habit history (ASCII grid)."`
	Deactivate HabitDeactivateCmd `cmd:"" help:"Deactivate a habit, keeping its history."`
	Delete     HabitDeleteCmd     `cmd:"" help:"Delete a habit and its entire history."`
}

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Target   int    `help:"Daily target amount." default:"1"`
	Unit     string `help:"Unit of the target (minutes, glasses, ...)." default:"time"`
	Category string `help:"Habit category." default:"health" enum:"health,fitness,mindfulness,productivity,learning,social,creative,finance"`
	Icon     string `help:"Display icon." default:"star"`
	Color    string `help:"Display color." default:"blue"`
	Remind   string `help:"Daily reminder time (HH:MM)."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	habit := models.NewHabit(c.Name, c.Icon, c.Color, c.Target, c.Unit, models.HabitCategory(c.Category))
	if c.Remind != "" {
		habit.HasReminder = true
		habit.ReminderTime = c.Remind
	}

	habit, err := ctx.Tracker.AddHabit(habit)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%d %s per day)\n", habit.Name, habit.Target, habit.Unit)
	ctx.PrintAdvisories()
	return nil
}

type HabitPresetCmd struct {
	Name string `arg:"" optional:"" help:"Preset name. Omit to list the catalog."`
}

func (c *HabitPresetCmd) Run(ctx *Context) error {
	if c.Name == "" {
		fmt.Println("Available presets:")
		for _, preset := range models.PresetHabits() {
			fmt.Printf("  %-22s %d %s per day (%s)\n", preset.Name, preset.Target, preset.Unit, preset.Category)
		}
		return nil
	}

	habit, err := ctx.Tracker.AddPresetHabit(c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s (%d %s per day)\n", habit.Name, habit.Target, habit.Unit)
	ctx.PrintAdvisories()
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include deactivated habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits := ctx.Tracker.Habits()
	if len(habits) == 0 {
		fmt.Println("No habits found. Try 'chorekeep habit preset' for ideas.")
		return nil
	}

	today := ctx.Tracker.TodayKey()
	for _, habit := range habits {
		if !habit.Active && !c.All {
			continue
		}

		marker := "[ ]"
		progress := ""
		if entry, ok := ctx.Tracker.EntryFor(habit.ID, today); ok {
			if entry.Completed {
				marker = doneStyle.Render("[x]")
			}
			progress = fmt.Sprintf("  %d/%d %s", entry.Progress, habit.Target, habit.Unit)
		}

		line := fmt.Sprintf("%s %s%s", marker, habit.Name, pendingStyle.Render(progress))
		streak := ctx.Tracker.StreakFor(habit.ID)
		if streak.CurrentStreak > 0 {
			line += streakStyle.Render(fmt.Sprintf("  🔥 %d", streak.CurrentStreak))
		}
		if !habit.Active {
			line += pendingStyle.Render("  [inactive]")
		}
		fmt.Println(line)
	}
	return nil
}

type HabitTrackCmd struct {
	Habit  string `arg:"" help:"Habit id or name."`
	Amount int    `arg:"" help:"Progress amount so far today (absolute, not a delta)."`
	Date   string `help:"Day to record (YYYY-MM-DD, default today)."`
}

func (c *HabitTrackCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.Tracker.SetHabitProgress(habit.ID, day, c.Amount)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d/%d %s\n", habit.Name, entry.Progress, habit.Target, habit.Unit)
	if entry.Completed {
		streak := ctx.Tracker.StreakFor(habit.ID)
		fmt.Println(doneStyle.Render(fmt.Sprintf("Target reached! Streak: %d", streak.CurrentStreak)))
	}
	ctx.PrintAdvisories()
	return nil
}

type HabitDoneCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Date  string `help:"Day to record (YYYY-MM-DD, default today)."`
}

func (c *HabitDoneCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Tracker.MarkHabitDone(habit.ID, day); err != nil {
		return err
	}
	streak := ctx.Tracker.StreakFor(habit.ID)
	fmt.Printf("Done: %s for %s. Streak: %d\n", habit.Name, day, streak.CurrentStreak)
	ctx.PrintAdvisories()
	return nil
}

type HabitNoteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Note  string `arg:"" help:"Note text."`
	Date  string `help:"Day to annotate (YYYY-MM-DD, default today)."`
}

func (c *HabitNoteCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	day, err := ctx.ResolveDay(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.SetHabitNote(habit.ID, day, c.Note); err != nil {
		return err
	}
	fmt.Printf("Noted on %s for %s.\n", day, habit.Name)
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for one habit only."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	var habits []models.Habit
	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	} else {
		for _, h := range ctx.Tracker.Habits() {
			if h.Active {
				habits = append(habits, h)
			}
		}
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	end := ctx.Tracker.Today()
	start := end.AddDays(-(c.Days - 1))

	const nameWidth = 20
	fmt.Printf("Habit log (last %d days):\n\n", c.Days)
	fmt.Print(strings.Repeat(" ", nameWidth))
	for i := 0; i < c.Days; i++ {
		fmt.Printf(" %5s", start.AddDays(i).Time(time.UTC).Format("01/02"))
	}
	fmt.Println()

	for _, habit := range habits {
		name := habit.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		fmt.Printf("%-*s", nameWidth, name)

		entries := ctx.Tracker.EntriesForHabit(habit.ID, start.Key(), end.Key())
		completed := make(map[string]bool, len(entries))
		for _, entry := range entries {
			completed[entry.Date] = entry.Completed
		}

		for i := 0; i < c.Days; i++ {
			day := start.AddDays(i).Key()
			if completed[day] {
				fmt.Print("   x  ")
			} else {
				fmt.Print("   .  ")
			}
		}
		fmt.Println()
	}
	return nil
}

type HabitDeactivateCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeactivateCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeactivateHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deactivated habit: %s (history kept)\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit %q and its history.\n", habit.Name)
	ctx.PrintAdvisories()
	return nil
}
