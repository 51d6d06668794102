package service

import (
	"context"
	"errors"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/logger"
	"github.com/julianstephens/habitstack/internal/models"
	"github.com/julianstephens/habitstack/internal/progress"
	"github.com/julianstephens/habitstack/internal/storage"
)

// ToggleResult is the outcome of marking a log completed or not completed
type ToggleResult struct {
	Log              models.LogEntry `json:"log"`
	CurrentStreak    int             `json:"current_streak"`
	StreakMessage    string          `json:"streak_message,omitempty"`
	MilestoneMessage string          `json:"milestone_message,omitempty"`
	Milestones       []int           `json:"milestones,omitempty"`
	Tracker          *models.Tracker `json:"tracker,omitempty"`
}

// CheckInResult is the outcome of an incremental tracker check-in
type CheckInResult struct {
	Tracker          models.Tracker `json:"tracker"`
	MilestoneMessage string         `json:"milestone_message,omitempty"`
	Milestones       []int          `json:"milestones,omitempty"`
	// Refused is set when the stack has logs dated after today; the tracker
	// was left unchanged.
	Refused bool `json:"refused"`
	// AlreadyCheckedIn is set when today's check-in was applied earlier.
	AlreadyCheckedIn bool `json:"already_checked_in"`
}

func (s *Service) ListLogs(ctx context.Context, userID, stackID string) ([]models.LogEntry, error) {
	if _, err := s.store.GetHabitStack(ctx, userID, stackID); err != nil {
		return nil, err
	}
	return s.store.GetLogEntries(ctx, userID, stackID)
}

// loadTracker returns the stored tracker, or a fresh one and false when the
// stack has none yet.
func loadTracker(ctx context.Context, repo storage.Repository, userID, stackID string) (models.Tracker, bool, error) {
	t, err := repo.GetTracker(ctx, userID, stackID)
	if apperrors.IsNotFound(err) {
		return models.Tracker{UserID: userID, HabitStackID: stackID, MilestoneDates: []string{}}, false, nil
	}
	if err != nil {
		return models.Tracker{}, false, err
	}
	return t, true, nil
}

// recordMilestones stores a record for each crossed threshold. Thresholds the
// stack already has are skipped; the returned slice holds the new ones.
func (s *Service) recordMilestones(ctx context.Context, repo storage.Repository, t *models.Tracker, thresholds []int, day string) ([]int, error) {
	var recorded []int
	for _, threshold := range thresholds {
		inserted, err := repo.AddMilestone(ctx, models.Milestone{
			ID:           s.newID(),
			HabitStackID: t.HabitStackID,
			Threshold:    threshold,
			DateAchieved: day,
			Description:  progress.MilestoneMessage(threshold),
			CreatedAt:    s.now(),
		})
		if err != nil {
			return nil, err
		}
		if inserted {
			recorded = append(recorded, threshold)
			t.MilestoneDates = append(t.MilestoneDates, day)
		}
	}
	return recorded, nil
}

func milestoneMessage(recorded []int) string {
	if len(recorded) == 0 {
		return ""
	}
	return progress.MilestoneMessage(recorded[len(recorded)-1])
}

// ToggleLogCompletion marks one of the user's logs completed or not completed
// and refreshes the stack's tracker from the recomputed history in the same
// transaction. Logs dated after today cannot be edited.
func (s *Service) ToggleLogCompletion(ctx context.Context, userID, logID string, completed bool) (ToggleResult, error) {
	today := s.today()

	var result ToggleResult
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		entry, err := repo.GetLogEntry(ctx, userID, logID)
		if err != nil {
			return err
		}
		if entry.Day > today {
			return apperrors.Validationf("cannot edit the log for %s: it is in the future", entry.Day)
		}

		// Serializes toggles and extensions on the same stack
		if _, err := repo.LockHabitStack(ctx, userID, entry.HabitStackID); err != nil {
			return err
		}

		entry.Completed = completed
		entry.StreakMessage = ""
		entry.UpdatedAt = s.now()
		if err := repo.UpdateLogEntry(ctx, entry); err != nil {
			return err
		}

		days, err := repo.GetCompletedDays(ctx, userID, entry.HabitStackID)
		if err != nil {
			return err
		}
		streak, err := progress.CurrentStreak(days)
		if err != nil {
			return err
		}
		result = ToggleResult{CurrentStreak: streak}

		tracker, exists, err := loadTracker(ctx, repo, userID, entry.HabitStackID)
		if err != nil {
			return err
		}
		if exists || len(days) > 0 {
			if !exists {
				if tracker.LongestStreak, err = progress.LongestRun(days); err != nil {
					return err
				}
			}

			out := progress.Reconcile(&tracker, progress.Snapshot{Streak: streak, Completed: len(days)}, s.detector)
			recorded, err := s.recordMilestones(ctx, repo, &tracker, out.Milestones, entry.Day)
			if err != nil {
				return err
			}
			tracker.UpdatedAt = s.now()
			if err := repo.SaveTracker(ctx, tracker); err != nil {
				return err
			}

			result.Tracker = &tracker
			result.Milestones = recorded
			result.MilestoneMessage = milestoneMessage(recorded)
		}

		if completed {
			result.StreakMessage = progress.StreakMessage(streak)
			if result.StreakMessage != "" {
				entry.StreakMessage = result.StreakMessage
				if err := repo.UpdateLogEntry(ctx, entry); err != nil {
					return err
				}
			}
		}

		result.Log = entry
		return nil
	})
	if err != nil {
		return ToggleResult{}, err
	}

	logger.Debug("Toggled log", "log", logID, "completed", completed, "streak", result.CurrentStreak)
	return result, nil
}

// CheckIn applies today's log to the tracker once per day: a completed log
// extends the cached streak and total, a missing or open one resets the
// current streak. A completion the tracker already counted, for example
// through a toggle, is not counted again, and a repeated check-in on the same
// day leaves the tracker as it is and sets AlreadyCheckedIn. The update is
// refused, and Refused set, while the stack has logs dated after today.
func (s *Service) CheckIn(ctx context.Context, userID, stackID string) (CheckInResult, error) {
	today := s.today()

	var result CheckInResult
	err := s.store.WithTx(ctx, func(repo storage.Repository) error {
		if _, err := repo.LockHabitStack(ctx, userID, stackID); err != nil {
			return err
		}

		completedToday := false
		entry, err := repo.GetLogEntryForDay(ctx, userID, stackID, today)
		switch {
		case err == nil:
			completedToday = entry.Completed
		case !apperrors.IsNotFound(err):
			return err
		}

		hasFuture, err := repo.HasLogsAfter(ctx, userID, stackID, today)
		if err != nil {
			return err
		}

		tracker, exists, err := loadTracker(ctx, repo, userID, stackID)
		if err != nil {
			return err
		}
		days, err := repo.GetCompletedDays(ctx, userID, stackID)
		if err != nil {
			return err
		}
		streak, err := progress.CurrentStreak(days)
		if err != nil {
			return err
		}
		if !exists {
			if tracker.LongestStreak, err = progress.LongestRun(days); err != nil {
				return err
			}
		}

		out, err := progress.Update(&tracker, progress.CheckInDay{
			Date:          today,
			Completed:     completedToday,
			HasFutureLogs: hasFuture,
			History:       progress.Snapshot{Streak: streak, Completed: len(days)},
		}, s.detector)
		if errors.Is(err, apperrors.ErrGuardRefused) {
			logger.Debug("Check-in refused, future logs present", "stack", stackID)
			result = CheckInResult{Tracker: tracker, Refused: true}
			return nil
		}
		if err != nil {
			return err
		}
		if out.Repeated {
			logger.Debug("Already checked in today", "stack", stackID, "day", today)
			result = CheckInResult{Tracker: tracker, AlreadyCheckedIn: true}
			return nil
		}
		if !exists && !completedToday {
			// Trackers are created on the first completion
			result = CheckInResult{Tracker: models.Tracker{UserID: userID, HabitStackID: stackID, MilestoneDates: []string{}}}
			return nil
		}

		recorded, err := s.recordMilestones(ctx, repo, &tracker, out.Milestones, today)
		if err != nil {
			return err
		}
		tracker.UpdatedAt = s.now()
		if err := repo.SaveTracker(ctx, tracker); err != nil {
			return err
		}

		result = CheckInResult{
			Tracker:          tracker,
			Milestones:       recorded,
			MilestoneMessage: milestoneMessage(recorded),
		}
		return nil
	})
	if err != nil {
		return CheckInResult{}, err
	}
	return result, nil
}
