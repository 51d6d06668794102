package sqldb

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitstack/internal/models"
)

type trackerRow struct {
	UserID           string `db:"user_id"`
	HabitStackID     string `db:"habit_stack_id"`
	CurrentStreak    int    `db:"current_streak"`
	LongestStreak    int    `db:"longest_streak"`
	TotalCompletions int    `db:"total_completions"`
	LastCheckInDay   string `db:"last_checkin_day"`
	UpdatedAt        string `db:"updated_at"`
}

// GetTracker also fills MilestoneDates from the stack's milestone records.
func (r *Repo) GetTracker(ctx context.Context, userID, stackID string) (models.Tracker, error) {
	var row trackerRow
	err := r.get(ctx, &row, `
		SELECT user_id, habit_stack_id, current_streak, longest_streak, total_completions, last_checkin_day, updated_at
		FROM trackers WHERE user_id = ? AND habit_stack_id = ?`,
		userID, stackID)
	if err != nil {
		return models.Tracker{}, notFoundOr(err, "tracker", stackID)
	}

	updatedAt, err := parseTimestamp("updated_at", row.UpdatedAt)
	if err != nil {
		return models.Tracker{}, err
	}

	dates := []string{}
	err = r.selectAll(ctx, &dates, `
		SELECT date_achieved FROM milestones
		WHERE habit_stack_id = ?
		ORDER BY threshold`,
		stackID)
	if err != nil {
		return models.Tracker{}, fmt.Errorf("failed to read milestone dates: %w", err)
	}

	return models.Tracker{
		UserID:           row.UserID,
		HabitStackID:     row.HabitStackID,
		CurrentStreak:    row.CurrentStreak,
		LongestStreak:    row.LongestStreak,
		TotalCompletions: row.TotalCompletions,
		MilestoneDates:   dates,
		LastCheckInDay:   row.LastCheckInDay,
		UpdatedAt:        updatedAt,
	}, nil
}

func (r *Repo) SaveTracker(ctx context.Context, t models.Tracker) error {
	_, err := r.exec(ctx, `
		INSERT INTO trackers (user_id, habit_stack_id, current_streak, longest_streak, total_completions, last_checkin_day, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, habit_stack_id) DO UPDATE SET
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			total_completions = excluded.total_completions,
			last_checkin_day = excluded.last_checkin_day,
			updated_at = excluded.updated_at`,
		t.UserID, t.HabitStackID, t.CurrentStreak, t.LongestStreak, t.TotalCompletions, t.LastCheckInDay, formatTimestamp(t.UpdatedAt))
	if err != nil {
		return fmt.Errorf("failed to save tracker: %w", err)
	}
	return nil
}
