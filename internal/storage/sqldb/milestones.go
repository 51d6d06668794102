package sqldb

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitstack/internal/models"
)

type milestoneRow struct {
	ID           string `db:"id"`
	HabitStackID string `db:"habit_stack_id"`
	Threshold    int    `db:"threshold"`
	DateAchieved string `db:"date_achieved"`
	Description  string `db:"description"`
	CreatedAt    string `db:"created_at"`
}

func (r *Repo) AddMilestone(ctx context.Context, m models.Milestone) (bool, error) {
	res, err := r.exec(ctx, `
		INSERT INTO milestones (id, habit_stack_id, threshold, date_achieved, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (habit_stack_id, threshold) DO NOTHING`,
		m.ID, m.HabitStackID, m.Threshold, m.DateAchieved, m.Description, formatTimestamp(m.CreatedAt))
	if err != nil {
		return false, fmt.Errorf("failed to add milestone: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *Repo) GetMilestones(ctx context.Context, stackID string) ([]models.Milestone, error) {
	var rows []milestoneRow
	err := r.selectAll(ctx, &rows, `
		SELECT id, habit_stack_id, threshold, date_achieved, description, created_at
		FROM milestones WHERE habit_stack_id = ?
		ORDER BY threshold`,
		stackID)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	milestones := make([]models.Milestone, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTimestamp("created_at", row.CreatedAt)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, models.Milestone{
			ID:           row.ID,
			HabitStackID: row.HabitStackID,
			Threshold:    row.Threshold,
			DateAchieved: row.DateAchieved,
			Description:  row.Description,
			CreatedAt:    createdAt,
		})
	}
	return milestones, nil
}
