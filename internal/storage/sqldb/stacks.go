package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

const selectStack = `
	SELECT s.id, s.user_id,
		s.habit1_predefined_id, s.habit1_custom,
		s.habit2_predefined_id, s.habit2_custom,
		COALESCE(p1.name, s.habit1_custom, '') AS habit1_name,
		COALESCE(p2.name, s.habit2_custom, '') AS habit2_name,
		s.goal, s.created_at, s.active_until
	FROM habit_stacks s
	LEFT JOIN predefined_habits p1 ON p1.id = s.habit1_predefined_id
	LEFT JOIN predefined_habits p2 ON p2.id = s.habit2_predefined_id`

type stackRow struct {
	ID                 string         `db:"id"`
	UserID             string         `db:"user_id"`
	Habit1PredefinedID sql.NullString `db:"habit1_predefined_id"`
	Habit1Custom       sql.NullString `db:"habit1_custom"`
	Habit2PredefinedID sql.NullString `db:"habit2_predefined_id"`
	Habit2Custom       sql.NullString `db:"habit2_custom"`
	Habit1Name         string         `db:"habit1_name"`
	Habit2Name         string         `db:"habit2_name"`
	Goal               string         `db:"goal"`
	CreatedAt          string         `db:"created_at"`
	ActiveUntil        string         `db:"active_until"`
}

func (row stackRow) toModel() (models.HabitStack, error) {
	createdAt, err := parseTimestamp("created_at", row.CreatedAt)
	if err != nil {
		return models.HabitStack{}, err
	}
	return models.HabitStack{
		ID:     row.ID,
		UserID: row.UserID,
		Habit1: models.HabitDescriptor{
			PredefinedID: row.Habit1PredefinedID.String,
			Custom:       row.Habit1Custom.String,
		},
		Habit2: models.HabitDescriptor{
			PredefinedID: row.Habit2PredefinedID.String,
			Custom:       row.Habit2Custom.String,
		},
		Habit1Name:  row.Habit1Name,
		Habit2Name:  row.Habit2Name,
		Goal:        constants.Goal(row.Goal),
		CreatedAt:   createdAt,
		ActiveUntil: row.ActiveUntil,
	}, nil
}

func stacksToModels(rows []stackRow) ([]models.HabitStack, error) {
	stacks := make([]models.HabitStack, 0, len(rows))
	for _, row := range rows {
		s, err := row.toModel()
		if err != nil {
			return nil, err
		}
		stacks = append(stacks, s)
	}
	return stacks, nil
}

func (r *Repo) AddHabitStack(ctx context.Context, stack models.HabitStack, habit1Key, habit2Key string) error {
	_, err := r.exec(ctx, `
		INSERT INTO habit_stacks (
			id, user_id,
			habit1_predefined_id, habit1_custom, habit2_predefined_id, habit2_custom,
			habit1_key, habit2_key, goal, created_at, active_until
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stack.ID, stack.UserID,
		nullString(stack.Habit1.PredefinedID), nullString(stack.Habit1.Custom),
		nullString(stack.Habit2.PredefinedID), nullString(stack.Habit2.Custom),
		habit1Key, habit2Key, string(stack.Goal), formatTimestamp(stack.CreatedAt), stack.ActiveUntil)
	if err != nil {
		if r.uniqueViolation(err) {
			return fmt.Errorf("%w: this habit stack already exists", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to add habit stack: %w", err)
	}
	return nil
}

func (r *Repo) GetHabitStack(ctx context.Context, userID, id string) (models.HabitStack, error) {
	var row stackRow
	if err := r.get(ctx, &row, selectStack+` WHERE s.id = ? AND s.user_id = ?`, id, userID); err != nil {
		return models.HabitStack{}, notFoundOr(err, "habit stack", id)
	}
	return row.toModel()
}

func (r *Repo) LockHabitStack(ctx context.Context, userID, id string) (models.HabitStack, error) {
	var row stackRow
	query := selectStack + ` WHERE s.id = ? AND s.user_id = ?` + r.d.LockClause
	if err := r.get(ctx, &row, query, id, userID); err != nil {
		return models.HabitStack{}, notFoundOr(err, "habit stack", id)
	}
	return row.toModel()
}

func (r *Repo) FindHabitStackID(ctx context.Context, userID, habit1Key, habit2Key string) (string, error) {
	var id string
	err := r.get(ctx, &id, `
		SELECT id FROM habit_stacks
		WHERE user_id = ? AND habit1_key = ? AND habit2_key = ?`,
		userID, habit1Key, habit2Key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up habit stack: %w", err)
	}
	return id, nil
}

func (r *Repo) GetHabitStacksForUser(ctx context.Context, userID string) ([]models.HabitStack, error) {
	var rows []stackRow
	if err := r.selectAll(ctx, &rows, selectStack+` WHERE s.user_id = ? ORDER BY s.created_at, s.id`, userID); err != nil {
		return nil, fmt.Errorf("failed to list habit stacks: %w", err)
	}
	return stacksToModels(rows)
}

func (r *Repo) GetHabitStacksActiveUntilBefore(ctx context.Context, day string) ([]models.HabitStack, error) {
	var rows []stackRow
	if err := r.selectAll(ctx, &rows, selectStack+` WHERE s.active_until < ? ORDER BY s.active_until, s.id`, day); err != nil {
		return nil, fmt.Errorf("failed to list expiring habit stacks: %w", err)
	}
	return stacksToModels(rows)
}

func (r *Repo) UpdateHabitStack(ctx context.Context, stack models.HabitStack, habit1Key, habit2Key string) error {
	res, err := r.exec(ctx, `
		UPDATE habit_stacks SET
			habit1_predefined_id = ?, habit1_custom = ?,
			habit2_predefined_id = ?, habit2_custom = ?,
			habit1_key = ?, habit2_key = ?, goal = ?
		WHERE id = ? AND user_id = ?`,
		nullString(stack.Habit1.PredefinedID), nullString(stack.Habit1.Custom),
		nullString(stack.Habit2.PredefinedID), nullString(stack.Habit2.Custom),
		habit1Key, habit2Key, string(stack.Goal),
		stack.ID, stack.UserID)
	if err != nil {
		if r.uniqueViolation(err) {
			return fmt.Errorf("%w: this habit stack already exists", apperrors.ErrConflict)
		}
		return fmt.Errorf("failed to update habit stack: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("habit stack", stack.ID)
	}
	return nil
}

func (r *Repo) SetActiveUntil(ctx context.Context, stackID, day string) error {
	if _, err := r.exec(ctx, `UPDATE habit_stacks SET active_until = ? WHERE id = ?`, day, stackID); err != nil {
		return fmt.Errorf("failed to update active_until: %w", err)
	}
	return nil
}

func (r *Repo) DeleteHabitStack(ctx context.Context, userID, id string) error {
	res, err := r.exec(ctx, `DELETE FROM habit_stacks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit stack: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("habit stack", id)
	}
	return nil
}
