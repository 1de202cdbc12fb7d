package cli

import (
	"fmt"
)

type InitCmd struct {
	Name string `help:"Your display name, used in greetings."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if c.Name != "" {
		ctx.Tracker.SetUserName(c.Name)
	}

	user := ctx.Tracker.User()
	if user.FirstLaunch {
		ctx.Tracker.MarkLaunched()
		fmt.Println(titleStyle.Render("Welcome to chorekeep!"))
		fmt.Printf("Seeded %d starter tasks and %d categories.\n",
			len(ctx.Tracker.Tasks()), len(ctx.Tracker.Categories()))
		fmt.Println("Run 'chorekeep today' to see your list.")
	} else {
		fmt.Println("Already initialized.")
		if user.Name != "" {
			fmt.Printf("Hello again, %s.\n", user.Name)
		}
	}

	fmt.Printf("Data directory: %s\n", ctx.Store.Path())
	ctx.PrintAdvisories()
	return nil
}

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println(titleStyle.Render("chorekeep doctor"))
	fmt.Printf("Data directory: %s\n\n", ctx.Store.Path())

	fmt.Printf("Tasks:         %d\n", len(ctx.Tracker.Tasks()))
	fmt.Printf("Records:       %d\n", len(ctx.Tracker.Records()))
	fmt.Printf("Categories:    %d\n", len(ctx.Tracker.Categories()))
	fmt.Printf("Habits:        %d\n", len(ctx.Tracker.Habits()))
	fmt.Printf("Habit entries: %d\n", len(ctx.Tracker.HabitEntries()))
	fmt.Printf("Focus log:     %d sessions\n", len(ctx.Timer.Sessions()))

	// Orphan check mirrors the startup cleanup but reports instead of
	// pruning, covering historical records too.
	known := make(map[string]bool)
	for _, task := range ctx.Tracker.Tasks() {
		known[task.ID] = true
	}
	orphans := 0
	for _, rec := range ctx.Tracker.Records() {
		for _, status := range rec.Statuses {
			if !known[status.TaskID] {
				orphans++
			}
		}
	}
	if orphans > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("\n%d orphaned statuses in historical records (harmless, kept as snapshots)", orphans)))
	}

	if advisories := ctx.Tracker.Advisories(); len(advisories) > 0 {
		fmt.Println()
		ctx.PrintAdvisories()
	} else {
		fmt.Println(doneStyle.Render("\nAll documents loaded cleanly."))
	}
	return nil
}
