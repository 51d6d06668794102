package sqldb

import (
	"context"
	"fmt"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

type userRow struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	CreatedAt string `db:"created_at"`
}

func (row userRow) toModel() (models.User, error) {
	createdAt, err := parseTimestamp("created_at", row.CreatedAt)
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: row.ID, Username: row.Username, CreatedAt: createdAt}, nil
}

func (r *Repo) AddUser(ctx context.Context, user models.User) error {
	_, err := r.exec(ctx, `
		INSERT INTO users (id, username, created_at)
		VALUES (?, ?, ?)`,
		user.ID, user.Username, formatTimestamp(user.CreatedAt))
	if err != nil {
		if r.uniqueViolation(err) {
			return fmt.Errorf("%w: user %q already exists", apperrors.ErrConflict, user.Username)
		}
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

func (r *Repo) GetUser(ctx context.Context, id string) (models.User, error) {
	var row userRow
	if err := r.get(ctx, &row, `SELECT id, username, created_at FROM users WHERE id = ?`, id); err != nil {
		return models.User{}, notFoundOr(err, "user", id)
	}
	return row.toModel()
}

func (r *Repo) GetUserByName(ctx context.Context, username string) (models.User, error) {
	var row userRow
	if err := r.get(ctx, &row, `SELECT id, username, created_at FROM users WHERE username = ?`, username); err != nil {
		return models.User{}, notFoundOr(err, "user", username)
	}
	return row.toModel()
}

func (r *Repo) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var rows []userRow
	if err := r.selectAll(ctx, &rows, `SELECT id, username, created_at FROM users ORDER BY username`); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		u, err := row.toModel()
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
