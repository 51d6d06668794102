package service

import (
	"context"

	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/progress"
	"github.com/julianstephens/habitstack/internal/storage"
)

// Progress is the read model for one habit stack. Streaks are recomputed
// from the log history; the cached tracker only keeps the longest streak and
// completion total from going down.
type Progress struct {
	StackID          string             `json:"habit_stack_id"`
	Habit1           string             `json:"habit1"`
	Habit2           string             `json:"habit2"`
	Goal             constants.Goal     `json:"goal"`
	ActiveUntil      string             `json:"active_until"`
	CompletedToday   bool               `json:"completed_today"`
	CurrentStreak    int                `json:"current_streak"`
	LongestStreak    int                `json:"longest_streak"`
	TotalCompletions int                `json:"total_completions"`
	Milestones       []models.Milestone `json:"milestones"`
}

func (s *Service) GetProgress(ctx context.Context, userID, stackID string) (Progress, error) {
	today := s.today()

	var p Progress
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		stack, err := repo.GetHabitStack(ctx, userID, stackID)
		if err != nil {
			return err
		}

		days, err := repo.GetCompletedDays(ctx, userID, stackID)
		if err != nil {
			return err
		}
		current, err := progress.CurrentStreak(days)
		if err != nil {
			return err
		}
		longest, err := progress.LongestRun(days)
		if err != nil {
			return err
		}

		tracker, _, err := loadTracker(ctx, repo, userID, stackID)
		if err != nil {
			return err
		}

		milestones, err := repo.GetMilestones(ctx, stackID)
		if err != nil {
			return err
		}

		p = Progress{
			StackID:          stack.ID,
			Habit1:           stack.Habit1Name,
			Habit2:           stack.Habit2Name,
			Goal:             stack.Goal,
			ActiveUntil:      stack.ActiveUntil,
			CurrentStreak:    current,
			LongestStreak:    max(longest, tracker.LongestStreak, current),
			TotalCompletions: max(len(days), tracker.TotalCompletions),
			Milestones:       milestones,
		}
		for _, d := range days {
			if d == today {
				p.CompletedToday = true
				break
			}
		}
		return nil
	})
	if err != nil {
		return Progress{}, err
	}
	return p, nil
}
