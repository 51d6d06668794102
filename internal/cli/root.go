// Package cli holds the shared command context. Commands live in the
// subpackages and receive *Context from kong.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/habitstack/internal/backup"
	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/logger"
	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/service"
	"github.com/julianstephens/habitstack/internal/storage"
	"github.com/julianstephens/habitstack/internal/utils"
)

type Context struct {
	Ctx     context.Context
	Store   storage.Provider
	Service *service.Service
	Clock   utils.Clock
	// UserRef is the --user flag: a user id or username
	UserRef string
	Out     io.Writer
}

// CurrentUser resolves the acting user from --user / HABITSTACK_USER.
func (c *Context) CurrentUser() (models.User, error) {
	if strings.TrimSpace(c.UserRef) == "" {
		return models.User{}, apperrors.Validationf("no user selected, pass --user or set HABITSTACK_USER")
	}
	return c.Service.ResolveUser(c.Ctx, c.UserRef)
}

// IsSQLite reports whether the store is a local database file
func (c *Context) IsSQLite() bool {
	return c.Store.Driver() == "sqlite"
}

// PerformAutomaticBackup snapshots a SQLite database before a destructive
// command. Failures are logged and otherwise ignored.
func (c *Context) PerformAutomaticBackup() {
	if !c.IsSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath(), c.Clock)
	if _, err := mgr.Create(c.Ctx); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Printf writes to the command output.
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

// PrintJSON writes v as indented JSON followed by a newline.
func (c *Context) PrintJSON(v interface{}) error {
	enc := json.NewEncoder(c.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// IsPostgres reports whether s is a PostgreSQL connection URL.
func IsPostgres(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// ConfigDir is where logs live for a given database location.
func ConfigDir(db string) (string, error) {
	if IsPostgres(db) {
		db = constants.DefaultConfigPath
	}
	path, err := ExpandPath(db)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
