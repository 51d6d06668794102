package sqldb

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitstack/internal/models"
)

func (r *Repo) UpsertPredefinedHabit(ctx context.Context, habit models.PredefinedHabit) error {
	_, err := r.exec(ctx, `
		INSERT INTO predefined_habits (id, name)
		VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`,
		habit.ID, habit.Name)
	if err != nil {
		return fmt.Errorf("failed to save predefined habit %s: %w", habit.ID, err)
	}
	return nil
}

func (r *Repo) GetPredefinedHabit(ctx context.Context, id string) (models.PredefinedHabit, error) {
	var h models.PredefinedHabit
	if err := r.get(ctx, &h, `SELECT id, name FROM predefined_habits WHERE id = ?`, id); err != nil {
		return models.PredefinedHabit{}, notFoundOr(err, "predefined habit", id)
	}
	return h, nil
}

func (r *Repo) GetAllPredefinedHabits(ctx context.Context) ([]models.PredefinedHabit, error) {
	habits := []models.PredefinedHabit{}
	if err := r.selectAll(ctx, &habits, `SELECT id, name FROM predefined_habits ORDER BY name`); err != nil {
		return nil, fmt.Errorf("failed to list predefined habits: %w", err)
	}
	return habits, nil
}
