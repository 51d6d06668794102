package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

const selectLog = `
	SELECT id, habit_stack_id, user_id, day, completed, streak_message, created_at, updated_at
	FROM habit_logs`

type logRow struct {
	ID            string `db:"id"`
	HabitStackID  string `db:"habit_stack_id"`
	UserID        string `db:"user_id"`
	Day           string `db:"day"`
	Completed     bool   `db:"completed"`
	StreakMessage string `db:"streak_message"`
	CreatedAt     string `db:"created_at"`
	UpdatedAt     string `db:"updated_at"`
}

func (row logRow) toModel() (models.LogEntry, error) {
	createdAt, err := parseTimestamp("created_at", row.CreatedAt)
	if err != nil {
		return models.LogEntry{}, err
	}
	updatedAt, err := parseTimestamp("updated_at", row.UpdatedAt)
	if err != nil {
		return models.LogEntry{}, err
	}
	return models.LogEntry{
		ID:            row.ID,
		HabitStackID:  row.HabitStackID,
		UserID:        row.UserID,
		Day:           row.Day,
		Completed:     row.Completed,
		StreakMessage: row.StreakMessage,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

func (r *Repo) GetLogEntry(ctx context.Context, userID, id string) (models.LogEntry, error) {
	var row logRow
	if err := r.get(ctx, &row, selectLog+` WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return models.LogEntry{}, notFoundOr(err, "log entry", id)
	}
	return row.toModel()
}

func (r *Repo) GetLogEntryForDay(ctx context.Context, userID, stackID, day string) (models.LogEntry, error) {
	var row logRow
	err := r.get(ctx, &row, selectLog+` WHERE habit_stack_id = ? AND user_id = ? AND day = ?`, stackID, userID, day)
	if err != nil {
		return models.LogEntry{}, notFoundOr(err, "log entry", day)
	}
	return row.toModel()
}

func (r *Repo) GetLogEntries(ctx context.Context, userID, stackID string) ([]models.LogEntry, error) {
	var rows []logRow
	if err := r.selectAll(ctx, &rows, selectLog+` WHERE habit_stack_id = ? AND user_id = ? ORDER BY day`, stackID, userID); err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}

	entries := make([]models.LogEntry, 0, len(rows))
	for _, row := range rows {
		e, err := row.toModel()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *Repo) GetLogDaysInRange(ctx context.Context, userID, stackID, from, to string) ([]string, error) {
	days := []string{}
	err := r.selectAll(ctx, &days, `
		SELECT day FROM habit_logs
		WHERE habit_stack_id = ? AND user_id = ? AND day >= ? AND day <= ?
		ORDER BY day`,
		stackID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to read log days: %w", err)
	}
	return days, nil
}

func (r *Repo) GetCompletedDays(ctx context.Context, userID, stackID string) ([]string, error) {
	days := []string{}
	err := r.selectAll(ctx, &days, `
		SELECT day FROM habit_logs
		WHERE habit_stack_id = ? AND user_id = ? AND completed = ?
		ORDER BY day DESC`,
		stackID, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to read completed days: %w", err)
	}
	return days, nil
}

func (r *Repo) GetLatestLogDay(ctx context.Context, userID, stackID string) (string, bool, error) {
	var day sql.NullString
	err := r.get(ctx, &day, `
		SELECT MAX(day) FROM habit_logs
		WHERE habit_stack_id = ? AND user_id = ?`,
		stackID, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", false, fmt.Errorf("failed to read latest log day: %w", err)
	}
	return day.String, day.Valid, nil
}

func (r *Repo) HasLogsAfter(ctx context.Context, userID, stackID, day string) (bool, error) {
	var count int
	err := r.get(ctx, &count, `
		SELECT COUNT(*) FROM habit_logs
		WHERE habit_stack_id = ? AND user_id = ? AND day > ?`,
		stackID, userID, day)
	if err != nil {
		return false, fmt.Errorf("failed to check for future logs: %w", err)
	}
	return count > 0, nil
}

func (r *Repo) InsertLogEntries(ctx context.Context, entries []models.LogEntry) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	values := make([]string, 0, len(entries))
	args := make([]interface{}, 0, len(entries)*8)
	for _, e := range entries {
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			e.ID, e.HabitStackID, e.UserID, e.Day, e.Completed, e.StreakMessage,
			formatTimestamp(e.CreatedAt), formatTimestamp(e.UpdatedAt))
	}

	query := `
		INSERT INTO habit_logs (id, habit_stack_id, user_id, day, completed, streak_message, created_at, updated_at)
		VALUES ` + strings.Join(values, ", ") + `
		ON CONFLICT (habit_stack_id, user_id, day) DO NOTHING`

	res, err := r.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert log entries: %w", err)
	}
	return rowsAffected(res)
}

func (r *Repo) UpdateLogEntry(ctx context.Context, entry models.LogEntry) error {
	res, err := r.exec(ctx, `
		UPDATE habit_logs SET completed = ?, streak_message = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		entry.Completed, entry.StreakMessage, formatTimestamp(entry.UpdatedAt),
		entry.ID, entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to update log entry: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("log entry", entry.ID)
	}
	return nil
}
