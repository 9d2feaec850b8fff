package cli

import (
	"fmt"

	"github.com/tallyapp/tally/internal/backup"
	"github.com/tallyapp/tally/internal/logger"
	"github.com/tallyapp/tally/internal/models"
	"github.com/tallyapp/tally/internal/storage"
	"github.com/tallyapp/tally/internal/tracker"
)

// Context carries the wired storage providers and the hydrated tracker into
// every command. Remote is nil when no backend connection string is
// configured; the client then runs purely against the local cache.
type Context struct {
	Cache   storage.Provider
	Remote  storage.Provider
	Tracker *tracker.Tracker
	Today   string
	Debug   bool

	loaded bool
}

// EnsureLoaded hydrates the tracker snapshot once per invocation. Commands
// that only touch configuration (init, keyring) skip it.
func (c *Context) EnsureLoaded() error {
	if c.loaded {
		return nil
	}
	if err := c.Tracker.LoadSnapshot(); err != nil {
		return err
	}
	if c.Tracker.Stale() {
		fmt.Println("⚠ Backend unreachable; showing cached data. Run 'tally sync' once it is back.")
	}
	c.loaded = true
	return nil
}

// Settings reads the current settings from the cache.
func (c *Context) Settings() (models.Settings, error) {
	return c.Cache.GetSettings()
}

// PerformAutomaticBackup snapshots the cache without interrupting the
// command on failure.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Cache.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
