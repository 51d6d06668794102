package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/julianstephens/habitstack/internal/logger"
	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/storage"
	"github.com/julianstephens/habitstack/internal/utils"
	"github.com/julianstephens/habitstack/internal/window"
)

// ExtendResult reports the outcome of a window extension
type ExtendResult struct {
	StackID     string `json:"habit_stack_id"`
	PreviousEnd string `json:"previous_end"`
	ActiveUntil string `json:"active_until"`
	Created     int    `json:"created"`
	// Skipped is set when the window was no longer expiring once locked
	Skipped bool `json:"skipped,omitempty"`
}

// materialize inserts an open log for every planned day that has none and
// moves active_until to the end of the plan.
func (s *Service) materialize(ctx context.Context, repo storage.Repository, stack models.HabitStack, plan window.Plan) (int, error) {
	existing, err := repo.GetLogDaysInRange(ctx, stack.UserID, stack.ID, plan.Candidates[0], plan.End)
	if err != nil {
		return 0, err
	}

	now := s.now()
	missing := plan.Missing(existing)
	entries := make([]models.LogEntry, 0, len(missing))
	for _, day := range missing {
		entries = append(entries, models.LogEntry{
			ID:           s.newID(),
			HabitStackID: stack.ID,
			UserID:       stack.UserID,
			Day:          day,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	created, err := repo.InsertLogEntries(ctx, entries)
	if err != nil {
		return 0, err
	}
	if err := repo.SetActiveUntil(ctx, stack.ID, plan.End); err != nil {
		return 0, err
	}
	return created, nil
}

// ExtendWindow grows a stack's active window by days (7 or 14), counted from
// the later of its current end and its latest log.
func (s *Service) ExtendWindow(ctx context.Context, userID, stackID string, days int) (ExtendResult, error) {
	return s.extendWindow(ctx, userID, stackID, days, 0)
}

// extendWindow extends the window under the stack lock. With within > 0 the
// stack is left alone, and the result marked Skipped, unless its window still
// ends fewer than within days after today.
func (s *Service) extendWindow(ctx context.Context, userID, stackID string, days, within int) (ExtendResult, error) {
	if err := window.ValidateLength(days); err != nil {
		return ExtendResult{}, err
	}

	var result ExtendResult
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		stack, err := repo.LockHabitStack(ctx, userID, stackID)
		if err != nil {
			return err
		}

		if within > 0 {
			expiring, err := window.Expiring(stack.ActiveUntil, s.today(), within)
			if err != nil {
				return err
			}
			if !expiring {
				result = ExtendResult{StackID: stackID, PreviousEnd: stack.ActiveUntil, ActiveUntil: stack.ActiveUntil, Skipped: true}
				return nil
			}
		}

		latest, _, err := repo.GetLatestLogDay(ctx, userID, stackID)
		if err != nil {
			return err
		}

		plan, err := window.NewPlan(stack.ActiveUntil, latest, days)
		if err != nil {
			return err
		}

		created, err := s.materialize(ctx, repo, stack, plan)
		if err != nil {
			return err
		}

		result = ExtendResult{
			StackID:     stackID,
			PreviousEnd: stack.ActiveUntil,
			ActiveUntil: plan.End,
			Created:     created,
		}
		return nil
	})
	if err != nil {
		return ExtendResult{}, err
	}

	if result.Skipped {
		logger.Debug("Habit stack window no longer expiring", "stack", stackID, "until", result.ActiveUntil)
		return result, nil
	}
	logger.Debug("Extended habit stack window", "stack", stackID, "until", result.ActiveUntil, "created", result.Created)
	return result, nil
}

// RollForwardResult summarizes one ExtendExpiring pass
type RollForwardResult struct {
	Checked  int
	Extended int
	Skipped  int
	Created  int
}

// ExtendExpiring extends, by days, every stack whose window ends fewer than
// within days after today. A failure on one stack does not stop the others;
// all failures are returned together.
func (s *Service) ExtendExpiring(ctx context.Context, within, days int) (RollForwardResult, error) {
	if err := window.ValidateLength(days); err != nil {
		return RollForwardResult{}, err
	}

	cutoff, err := utils.AddDays(s.today(), within)
	if err != nil {
		return RollForwardResult{}, err
	}

	stacks, err := s.store.GetHabitStacksActiveUntilBefore(ctx, cutoff)
	if err != nil {
		return RollForwardResult{}, err
	}

	result := RollForwardResult{Checked: len(stacks)}
	var errs []error
	for _, stack := range stacks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		// Rechecked under the lock: another pass or the user may have
		// extended the stack since the query
		res, err := s.extendWindow(ctx, stack.UserID, stack.ID, days, within)
		if err != nil {
			logger.Warn("Failed to extend habit stack window", "stack", stack.ID, "error", err)
			errs = append(errs, fmt.Errorf("stack %s: %w", stack.ID, err))
			continue
		}
		if res.Skipped {
			result.Skipped++
			continue
		}
		result.Extended++
		result.Created += res.Created
	}

	return result, errors.Join(errs...)
}
