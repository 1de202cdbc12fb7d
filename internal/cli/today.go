package cli

import (
	"fmt"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	rec := ctx.Tracker.TodayRecord()
	user := ctx.Tracker.User()
	gami := ctx.Tracker.Gamification()

	greeting := "Today"
	if user.Name != "" {
		greeting = fmt.Sprintf("Today, %s", user.Name)
	}
	fmt.Printf("%s (%s)\n\n", titleStyle.Render(greeting), rec.Date)

	if len(rec.Statuses) == 0 {
		fmt.Println("No tasks for today. Add one with 'chorekeep task add'.")
		return nil
	}

	for _, status := range rec.Statuses {
		task, err := ctx.Tracker.TaskByID(status.TaskID)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("[ ] %s", task.Title)
		if status.Completed {
			line = doneStyle.Render(fmt.Sprintf("[x] %s", task.Title))
		}
		if cat := ctx.CategoryName(task.CategoryID); cat != "" {
			line += pendingStyle.Render(fmt.Sprintf("  (%s)", cat))
		}
		if task.HasReminder {
			line += pendingStyle.Render(fmt.Sprintf("  ⏰ %s", task.ReminderTime))
		}
		fmt.Println(line)
	}

	fmt.Printf("\nCompleted: %d/%d", rec.CompletedCount(), rec.TotalCount())
	if rec.AllCompleted() {
		fmt.Printf("  %s", doneStyle.Render("perfect day!"))
	}
	fmt.Printf("\n%s  Level %d",
		pointsStyle.Render(fmt.Sprintf("%d points", gami.TotalPoints)), gami.Level)
	if gami.Streak > 1 {
		fmt.Printf("  %s", streakStyle.Render(fmt.Sprintf("%d-day streak", gami.Streak)))
	}
	fmt.Println()

	ctx.PrintAdvisories()
	return nil
}

type ToggleCmd struct {
	Task string `arg:"" help:"Task id or title."`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	task, err := ctx.ResolveTask(c.Task)
	if err != nil {
		return err
	}

	before := ctx.Tracker.Gamification().TotalPoints
	if err := ctx.Tracker.Toggle(task.ID); err != nil {
		return err
	}

	rec := ctx.Tracker.TodayRecord()
	si := rec.StatusIndex(task.ID)
	if si >= 0 && rec.Statuses[si].Completed {
		fmt.Printf("Completed: %s\n", task.Title)
		if earned := ctx.Tracker.Gamification().TotalPoints - before; earned > 0 {
			fmt.Println(pointsStyle.Render(fmt.Sprintf("+%d points", earned)))
		}
		if rec.AllCompleted() {
			fmt.Println(doneStyle.Render("All tasks done. Perfect day!"))
		}
	} else {
		fmt.Printf("Reopened: %s\n", task.Title)
	}

	ctx.PrintAdvisories()
	return nil
}

type ActivateCmd struct {
	Task string `arg:"" help:"Task id or title."`
}

func (c *ActivateCmd) Run(ctx *Context) error {
	task, err := ctx.ResolveTask(c.Task)
	if err != nil {
		return err
	}
	if err := ctx.Tracker.ActivateTaskForToday(task.ID); err != nil {
		return err
	}
	fmt.Printf("Added %q to today's list.\n", task.Title)
	return nil
}

type DeactivateCmd struct {
	Task string `arg:"" help:"Task id or title."`
}

func (c *DeactivateCmd) Run(ctx *Context) error {
	task, err := ctx.ResolveTask(c.Task)
	if err != nil {
		return err
	}
	ctx.Tracker.DeactivateTaskForToday(task.ID)
	fmt.Printf("Removed %q from today's list.\n", task.Title)
	return nil
}
