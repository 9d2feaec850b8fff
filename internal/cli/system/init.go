package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/keyring"
	"github.com/tallyapp/tally/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing local cache before initializing."`
	Remote string `help:"Backend PostgreSQL connection string to store in the OS keyring."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Cache.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Cache.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing cache at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Cache.Init(); err != nil {
		return err
	}
	fmt.Printf("✓ Initialized tally cache at: %s\n", ctx.Cache.GetConfigPath())

	if c.Remote != "" {
		if valid, err := postgres.ValidateConnString(c.Remote); !valid {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("connection string must not embed a password; use .pgpass or environment variables")
			}
			return err
		}
		if err := keyring.SetConnectionString(c.Remote); err != nil {
			return err
		}

		remote := postgres.New(c.Remote)
		if err := remote.Init(); err != nil {
			return fmt.Errorf("failed to initialize backend: %w", err)
		}
		defer remote.Close()
		fmt.Println("✓ Backend initialized and connection string stored in OS keyring")
	}

	return nil
}
