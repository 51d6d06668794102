package progress

import (
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

// Snapshot is the recomputed state of a habit stack's log history
type Snapshot struct {
	Streak    int
	Completed int
}

// Outcome lists the milestone counts a tracker transition crossed
type Outcome struct {
	Milestones []int
	// Repeated is set when the tracker already took a check-in for the day
	Repeated bool
}

// CheckInDay is what a check-in knows about the stack on the day it runs.
type CheckInDay struct {
	Date          string
	Completed     bool
	HasFutureLogs bool
	// History is recomputed from the log store and includes Date's log
	History Snapshot
}

// Update applies one daily check-in to the tracker.
//
// When HasFutureLogs is set the update is refused with ErrGuardRefused and the
// tracker is left untouched. A second check-in for the same day changes
// nothing and reports Repeated. A missed day resets only the current streak.
// A completed day advances the tracker to the recomputed history: for a
// tracker that was up to date as of yesterday that is current+1 and total+1,
// and a completion the tracker already counted is not counted again.
func Update(t *models.Tracker, day CheckInDay, d Detector) (Outcome, error) {
	if day.HasFutureLogs {
		return Outcome{}, apperrors.ErrGuardRefused
	}
	if t.LastCheckInDay == day.Date {
		return Outcome{Repeated: true}, nil
	}
	t.LastCheckInDay = day.Date

	if !day.Completed {
		t.CurrentStreak = 0
		return Outcome{}, nil
	}
	return Reconcile(t, day.History, d), nil
}

// Reconcile refreshes the tracker from a recomputed snapshot. The current streak
// always matches the snapshot; the longest streak and completion total only
// move up, so milestones are crossed once even if completions are undone and
// redone.
func Reconcile(t *models.Tracker, s Snapshot, d Detector) Outcome {
	t.CurrentStreak = s.Streak
	if t.CurrentStreak > t.LongestStreak {
		t.LongestStreak = t.CurrentStreak
	}

	prev := t.TotalCompletions
	if s.Completed > t.TotalCompletions {
		t.TotalCompletions = s.Completed
	}

	return Outcome{Milestones: d.Crossed(prev, t.TotalCompletions)}
}
