// Package sqldb implements storage.Repository over sqlx for both SQL drivers.
// Queries are written with ? placeholders and rebound per driver.
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/storage"
)

// Dialect holds the few places where SQLite and PostgreSQL differ
type Dialect struct {
	Name string
	// LockClause is appended to the habit stack select in LockHabitStack
	LockClause string
	// IsUniqueViolation recognizes the driver's unique constraint error
	IsUniqueViolation func(error) bool
}

// Repo runs queries against a *sqlx.DB or a *sqlx.Tx
type Repo struct {
	ex sqlx.ExtContext
	d  Dialect
}

var _ storage.Repository = (*Repo)(nil)

func NewRepo(ex sqlx.ExtContext, d Dialect) *Repo {
	return &Repo{ex: ex, d: d}
}

// RunInTx runs fn against a transaction-scoped Repo, committing when fn
// returns nil and rolling back otherwise.
func RunInTx(ctx context.Context, db *sqlx.DB, d Dialect, fn func(storage.Repository) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(NewRepo(tx, d)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *Repo) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, r.ex, dest, r.ex.Rebind(query), args...)
}

func (r *Repo) selectAll(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, r.ex, dest, r.ex.Rebind(query), args...)
}

func (r *Repo) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return r.ex.ExecContext(ctx, r.ex.Rebind(query), args...)
}

func (r *Repo) uniqueViolation(err error) bool {
	return r.d.IsUniqueViolation != nil && r.d.IsUniqueViolation(err)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339)
}

func parseTimestamp(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

func nullString(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

func rowsAffected(res sql.Result) (int, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

func notFoundOr(err error, kind, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(kind, id)
	}
	return err
}
