package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitstack/internal/cli"
	"github.com/julianstephens/habitstack/internal/keyring"
	"github.com/julianstephens/habitstack/internal/storage/postgres"
)

// KeyringSetCmd stores the PostgreSQL connection string in the OS keyring
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		ctx.Printf("%s\n", cli.WarningStyle.Render("⚠️  Connection string contains embedded credentials; storing it in the encrypted OS keyring."))
	}

	if err := keyring.Default().Set(cmd.ConnectionString); err != nil {
		return err
	}

	ctx.Printf("%s\n", cli.SuccessStyle.Render("✓ Connection string stored in OS keyring"))
	ctx.Printf("  habitstack will use it when --db / HABITSTACK_DB is not set\n")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.Default().Get()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring, use 'habitstack keyring set' to store one")
	}
	if err != nil {
		return err
	}
	ctx.Printf("%s\n", keyring.Redact(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Default().Delete(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Printf("%s\n", cli.SuccessStyle.Render("✓ Connection string deleted from OS keyring"))
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	creds := keyring.Default()
	if !creds.Available() {
		ctx.Printf("%s\n", cli.DangerStyle.Render("❌ OS keyring is not available on this system"))
		return errors.New("keyring unavailable")
	}

	ctx.Printf("✓ OS keyring is available\n")
	if _, err := creds.Get(); err == nil {
		ctx.Printf("✓ Connection string is stored in keyring\n")
	} else if errors.Is(err, keyring.ErrNotFound) {
		ctx.Printf("ℹ No connection string stored in keyring\n")
	}
	return nil
}
