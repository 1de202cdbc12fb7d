package cli

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/chorekeep/chorekeep/internal/focus"
	"github.com/chorekeep/chorekeep/internal/models"
)

type FocusCmd struct {
	Start  FocusStartCmd  `cmd:"" help:"Run a focus session to completion."`
	Next   FocusNextCmd   `cmd:"" help:"Show what kind of session comes next."`
	Log    FocusLogCmd    `cmd:"" help:"Show focus time for today and the last week."`
	Config FocusConfigCmd `cmd:"" help:"Show or change the focus cadence."`
}

type FocusStartCmd struct {
	Kind string `help:"Session kind." default:"work" enum:"work,short_break,long_break"`
	Task string `help:"Tie the session to a task (id or title)."`
}

// Run blocks for the whole session. Interrupting with Ctrl-C cancels the
// session; only fully elapsed sessions enter the log.
func (c *FocusStartCmd) Run(ctx *Context) error {
	var taskID *string
	if c.Task != "" {
		task, err := ctx.ResolveTask(c.Task)
		if err != nil {
			return err
		}
		taskID = &task.ID
	}

	kind := models.FocusSessionKind(c.Kind)
	session := ctx.Timer.Start(kind, taskID)
	fmt.Printf("%s session started (%s). Press Ctrl-C to cancel.\n",
		titleStyle.Render(string(kind)), session.Duration)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-interrupt:
			if err := ctx.Timer.Cancel(); err != nil {
				return err
			}
			fmt.Println("\nSession cancelled, nothing logged.")
			return nil
		case now := <-ticker.C:
			if ctx.Timer.State(now) == focus.StateCompleted {
				fmt.Println(doneStyle.Render("Session complete!"))
				fmt.Printf("Next up: %s\n", ctx.Timer.NextKind())
				return nil
			}
			fmt.Printf("%s remaining\n", ctx.Timer.Remaining(now).Round(time.Minute))
		}
	}
}

type FocusNextCmd struct{}

func (c *FocusNextCmd) Run(ctx *Context) error {
	fmt.Printf("Next session: %s (%s)\n", ctx.Timer.NextKind(),
		ctx.Timer.Settings().DurationFor(ctx.Timer.NextKind()))
	return nil
}

type FocusLogCmd struct{}

func (c *FocusLogCmd) Run(ctx *Context) error {
	today := ctx.Tracker.Today()
	fmt.Printf("Focus today: %d min\n", ctx.Timer.FocusMinutesOn(today))
	fmt.Printf("Last 7 days: %d min\n", ctx.Timer.FocusMinutesSince(today, 7))

	sessions := ctx.Timer.Sessions()
	work := 0
	for _, s := range sessions {
		if s.Kind == models.FocusWork {
			work++
		}
	}
	fmt.Printf("Completed work sessions: %d (all sessions: %d)\n", work, len(sessions))
	return nil
}

type FocusConfigCmd struct {
	Work     int `help:"Work session length in minutes." default:"0"`
	Short    int `help:"Short break length in minutes." default:"0"`
	Long     int `help:"Long break length in minutes." default:"0"`
	Sessions int `help:"Work sessions until a long break." default:"0"`
}

func (c *FocusConfigCmd) Run(ctx *Context) error {
	settings := ctx.Timer.Settings()
	changed := false
	if c.Work > 0 {
		settings.WorkDuration = time.Duration(c.Work) * time.Minute
		changed = true
	}
	if c.Short > 0 {
		settings.ShortBreakDuration = time.Duration(c.Short) * time.Minute
		changed = true
	}
	if c.Long > 0 {
		settings.LongBreakDuration = time.Duration(c.Long) * time.Minute
		changed = true
	}
	if c.Sessions > 0 {
		settings.SessionsUntilLongBreak = c.Sessions
		changed = true
	}
	if changed {
		if err := ctx.Timer.UpdateSettings(settings); err != nil {
			return err
		}
	}

	fmt.Printf("Work: %s  Short break: %s  Long break: %s  Long break every %d sessions\n",
		settings.WorkDuration, settings.ShortBreakDuration,
		settings.LongBreakDuration, settings.SessionsUntilLongBreak)
	return nil
}
