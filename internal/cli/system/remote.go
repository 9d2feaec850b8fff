package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tallyapp/tally/internal/cli"
	"github.com/tallyapp/tally/internal/keyring"
	"github.com/tallyapp/tally/internal/storage/postgres"
)

type RemoteCmd struct {
	Set    RemoteSetCmd    `cmd:"" help:"Store the backend connection string in the OS keyring."`
	Show   RemoteShowCmd   `cmd:"" help:"Show the stored connection string (password masked)."`
	Clear  RemoteClearCmd  `cmd:"" help:"Remove the connection string from the OS keyring."`
	Status RemoteStatusCmd `cmd:"" help:"Check OS keyring availability."`
}

type RemoteSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string for the backend."`
}

func (c *RemoteSetCmd) Run(ctx *cli.Context) error {
	if !strings.HasPrefix(c.ConnectionString, "postgres://") &&
		!strings.HasPrefix(c.ConnectionString, "postgresql://") &&
		!strings.Contains(c.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(c.ConnectionString); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			// The keyring is encrypted, so storing a password there is
			// acceptable; it just never goes anywhere else.
			fmt.Println("⚠ Connection string contains an embedded password; it will live only in the encrypted OS keyring.")
		} else {
			return fmt.Errorf("invalid connection string: %w", err)
		}
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	fmt.Println("✓ Connection string stored in OS keyring")
	fmt.Println("  Run 'tally sync' to pull the backend snapshot.")
	return nil
}

type RemoteShowCmd struct{}

func (c *RemoteShowCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring; use 'tally remote set' to store one")
		}
		return fmt.Errorf("failed to read keyring: %w", err)
	}

	fmt.Println(maskPassword(connStr))
	return nil
}

// maskPassword hides the password component of a connection string.
func maskPassword(connStr string) string {
	if u, err := url.Parse(connStr); err == nil && u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "****")
			// url.UserPassword escapes the asterisks; undo that for display.
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(strings.ToLower(part), "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}

type RemoteClearCmd struct{}

func (c *RemoteClearCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return fmt.Errorf("failed to delete connection string: %w", err)
	}
	fmt.Println("✓ Connection string removed from OS keyring")
	return nil
}

type RemoteStatusCmd struct{}

func (c *RemoteStatusCmd) Run(ctx *cli.Context) error {
	if keyring.IsAvailable() {
		fmt.Println("✓ OS keyring is available")
	} else {
		fmt.Println("✗ OS keyring is not available on this system")
	}
	if _, err := keyring.GetConnectionString(); err == nil {
		fmt.Println("✓ Backend connection string is stored")
	} else {
		fmt.Println("  No backend connection string stored (local-only mode)")
	}
	return nil
}
