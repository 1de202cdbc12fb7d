package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/chorekeep/chorekeep/internal/cli"
	"github.com/chorekeep/chorekeep/internal/constants"
	"github.com/chorekeep/chorekeep/internal/errors"
	"github.com/chorekeep/chorekeep/internal/focus"
	"github.com/chorekeep/chorekeep/internal/logger"
	"github.com/chorekeep/chorekeep/internal/notifier"
	"github.com/chorekeep/chorekeep/internal/storage"
	"github.com/chorekeep/chorekeep/internal/tracker"
)

var CLI struct {
	Version  kong.VersionFlag
	Data     string `help:"Data directory." default:"~/.config/chorekeep"`
	Store    string `help:"Storage backend." default:"json" enum:"json,sqlite"`
	Timezone string `help:"IANA timezone for day boundaries (default: system local)."`
	Debug    bool   `help:"Enable debug logging to stderr."`

	Init       cli.InitCmd       `cmd:"" help:"Initialize chorekeep and seed starter data."`
	Today      cli.TodayCmd      `cmd:"" help:"Show today's task list." default:"1"`
	Toggle     cli.ToggleCmd     `cmd:"" help:"Toggle a task's completion for today."`
	Activate   cli.ActivateCmd   `cmd:"" help:"Add a task to today's list."`
	Deactivate cli.DeactivateCmd `cmd:"" help:"Remove a task from today's list."`
	Task       cli.TaskCmd       `cmd:"" help:"Manage tasks."`
	Category   cli.CategoryCmd   `cmd:"" help:"Manage categories."`
	Habit      cli.HabitCmd      `cmd:"" help:"Manage habits and habit tracking."`
	Stats      cli.StatsCmd      `cmd:"" help:"Show points, streaks, and achievements."`
	Focus      cli.FocusCmd      `cmd:"" help:"Run and review focus sessions."`
	Export     cli.ExportCmd     `cmd:"" help:"Export tasks to a share document."`
	Import     cli.ImportCmd     `cmd:"" help:"Import tasks from a share document."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks on stored data."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily task and habit tracker with streaks and points"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	dataDir := expandHome(CLI.Data)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create data directory %s: %v\n", dataDir, err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: dataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot initialize logging: %v\n", err)
		os.Exit(1)
	}

	var store storage.Provider
	if CLI.Store == "sqlite" {
		store = storage.NewSQLiteStore(filepath.Join(dataDir, constants.AppName+".db"))
	} else {
		store = storage.NewJSONStore(dataDir)
	}
	if err := store.Init(); err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	trk, err := tracker.New(store, tracker.Config{
		Notifier: notifier.NewDesktop(),
		Timezone: CLI.Timezone,
	})
	if err != nil {
		errors.Fatal(err)
	}
	trk.LoadAll()

	timer := focus.NewTimer(store, nil)
	timer.Load()

	if err := ctx.Run(&cli.Context{Store: store, Tracker: trk, Timer: timer}); err != nil {
		errors.Fatal(err)
	}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
