package system

import (
	"fmt"

	"github.com/tallyapp/tally/internal/cli"
)

type SyncCmd struct{}

func (c *SyncCmd) Run(ctx *cli.Context) error {
	if ctx.Remote == nil {
		return fmt.Errorf("no backend configured; store a connection string with 'tally remote set'")
	}

	if err := ctx.EnsureLoaded(); err != nil {
		return err
	}
	if ctx.Tracker.Stale() {
		return fmt.Errorf("backend is unreachable; cache left as is")
	}

	n := ctx.Tracker.Store().Len()
	fmt.Printf("✓ Synced snapshot from backend: %d habit(s), %d completion record(s)\n",
		len(ctx.Tracker.Habits(true)), n)
	return nil
}
