package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/cli/categories"
	"github.com/tallyapp/tally/internal/cli/habits"
	"github.com/tallyapp/tally/internal/cli/notes"
	"github.com/tallyapp/tally/internal/cli/stats"
	"github.com/tallyapp/tally/internal/cli/system"
	"github.com/tallyapp/tally/internal/constants"
	"github.com/tallyapp/tally/internal/keyring"
	"github.com/tallyapp/tally/internal/logger"
	"github.com/tallyapp/tally/internal/storage"
	"github.com/tallyapp/tally/internal/storage/postgres"
	"github.com/tallyapp/tally/internal/storage/sqlite"
	"github.com/tallyapp/tally/internal/tracker"
	"github.com/tallyapp/tally/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Local cache path." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init   system.InitCmd   `cmd:"" help:"Initialize tally storage."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Sync   system.SyncCmd   `cmd:"" help:"Pull the latest snapshot from the backend."`
	Remote system.RemoteCmd `cmd:"" help:"Manage the backend connection string."`
	Backup struct {
		Create  system.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    system.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore system.BackupRestoreCmd `cmd:"" help:"Restore the cache from a backup."`
	} `cmd:"" help:"Manage cache backups."`
	Habit    habits.HabitCmd        `cmd:"" help:"Manage habits and record completions."`
	Category categories.CategoryCmd `cmd:"" help:"Group habits into categories."`
	Note     notes.NoteCmd          `cmd:"" help:"Attach notes to habit days."`
	Stats    stats.StatsCmd         `cmd:"" help:"Show streaks, rates, and heatmaps."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with streaks, completion rates, and heatmaps"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cachePath := expandPath(CLI.Config)
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(cachePath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	cache := sqlite.NewStore(cachePath)

	// A backend is configured iff a connection string lives in the OS
	// keyring. Connection strings never appear in config files.
	var remote storage.Provider
	if connStr, err := keyring.GetConnectionString(); err == nil {
		if valid, verr := postgres.ValidateConnString(connStr); valid || errors.Is(verr, postgres.ErrEmbeddedCredentials) {
			remote = postgres.New(connStr)
		} else {
			logger.Warn("Ignoring invalid connection string from keyring", "error", verr)
		}
	} else if !errors.Is(err, keyring.ErrNotFound) {
		logger.Warn("OS keyring unavailable, running in local-only mode", "error", err)
	}

	today := resolveToday(cache)

	appCtx := &cli.Context{
		Cache:   cache,
		Remote:  remote,
		Tracker: tracker.New(remote, cache, today),
		Today:   today,
		Debug:   CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveToday reads the configured timezone from the cache settings when
// available; before init, the system timezone decides the current day.
func resolveToday(cache *sqlite.Store) string {
	timezone := constants.DefaultTimezone
	if err := cache.Load(); err == nil {
		if settings, err := cache.GetSettings(); err == nil && settings.Timezone != "" {
			timezone = settings.Timezone
		}
	}
	day, err := utils.Today(timezone)
	if err != nil {
		day, _ = utils.Today(constants.DefaultTimezone)
	}
	return day
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
