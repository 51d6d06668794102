package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

func TestUpdate_Completed(t *testing.T) {
	tr := &models.Tracker{CurrentStreak: 2, LongestStreak: 2, TotalCompletions: 4, LastCheckInDay: "2025-03-09"}

	out, err := Update(tr, CheckInDay{
		Date:      "2025-03-10",
		Completed: true,
		History:   Snapshot{Streak: 3, Completed: 5},
	}, DefaultDetector())
	require.NoError(t, err)

	assert.False(t, out.Repeated)
	assert.Equal(t, 3, tr.CurrentStreak)
	assert.Equal(t, 3, tr.LongestStreak)
	assert.Equal(t, 5, tr.TotalCompletions)
	assert.Equal(t, "2025-03-10", tr.LastCheckInDay)
	assert.Equal(t, []int{5}, out.Milestones)
}

func TestUpdate_AlreadyCounted(t *testing.T) {
	// Today's completion reached the tracker before the check-in ran
	tr := &models.Tracker{CurrentStreak: 4, LongestStreak: 4, TotalCompletions: 4}

	out, err := Update(tr, CheckInDay{
		Date:      "2025-03-10",
		Completed: true,
		History:   Snapshot{Streak: 4, Completed: 4},
	}, DefaultDetector())
	require.NoError(t, err)

	assert.Equal(t, 4, tr.CurrentStreak)
	assert.Equal(t, 4, tr.TotalCompletions)
	assert.Empty(t, out.Milestones)
}

func TestUpdate_OncePerDay(t *testing.T) {
	tr := &models.Tracker{CurrentStreak: 3, LongestStreak: 3, TotalCompletions: 3}
	day := CheckInDay{Date: "2025-03-10", Completed: true, History: Snapshot{Streak: 4, Completed: 4}}

	_, err := Update(tr, day, DefaultDetector())
	require.NoError(t, err)
	after := *tr

	for i := 0; i < 3; i++ {
		// A later completion on the same day must not move the tracker either
		day.History = Snapshot{Streak: 5 + i, Completed: 5 + i}
		out, err := Update(tr, day, DefaultDetector())
		require.NoError(t, err)
		assert.True(t, out.Repeated)
		assert.Empty(t, out.Milestones)
		assert.Equal(t, after, *tr)
	}
}

func TestUpdate_MissedResetsOnlyCurrent(t *testing.T) {
	tr := &models.Tracker{CurrentStreak: 4, LongestStreak: 6, TotalCompletions: 9}

	out, err := Update(tr, CheckInDay{Date: "2025-03-10", History: Snapshot{Completed: 9}}, DefaultDetector())
	require.NoError(t, err)

	assert.Equal(t, 0, tr.CurrentStreak)
	assert.Equal(t, 6, tr.LongestStreak)
	assert.Equal(t, 9, tr.TotalCompletions)
	assert.Equal(t, "2025-03-10", tr.LastCheckInDay)
	assert.Empty(t, out.Milestones)
}

func TestUpdate_GuardRefusesWithFutureLogs(t *testing.T) {
	tr := &models.Tracker{CurrentStreak: 4, LongestStreak: 4, TotalCompletions: 4}
	before := *tr

	out, err := Update(tr, CheckInDay{
		Date:          "2025-03-10",
		Completed:     true,
		HasFutureLogs: true,
		History:       Snapshot{Streak: 5, Completed: 5},
	}, DefaultDetector())
	assert.ErrorIs(t, err, apperrors.ErrGuardRefused)
	assert.Empty(t, out.Milestones)
	assert.Equal(t, before, *tr)
}

func TestUpdate_LongestNeverBelowCurrent(t *testing.T) {
	tr := &models.Tracker{}
	pattern := []bool{true, true, false, true, true, true, false, true}

	var history Snapshot
	for i, done := range pattern {
		if done {
			history.Streak++
			history.Completed++
		} else {
			history.Streak = 0
		}

		_, err := Update(tr, CheckInDay{
			Date:      fmt.Sprintf("2025-03-%02d", i+1),
			Completed: done,
			History:   history,
		}, DefaultDetector())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, tr.LongestStreak, tr.CurrentStreak)
	}
	assert.Equal(t, 3, tr.LongestStreak)
	assert.Equal(t, 6, tr.TotalCompletions)
}

func TestReconcile(t *testing.T) {
	tr := &models.Tracker{CurrentStreak: 1, LongestStreak: 3, TotalCompletions: 4}

	out := Reconcile(tr, Snapshot{Streak: 2, Completed: 5}, DefaultDetector())
	assert.Equal(t, []int{5}, out.Milestones)
	assert.Equal(t, 2, tr.CurrentStreak)
	assert.Equal(t, 3, tr.LongestStreak)
	assert.Equal(t, 5, tr.TotalCompletions)

	// Undo one completion: total holds, nothing fires
	out = Reconcile(tr, Snapshot{Streak: 1, Completed: 4}, DefaultDetector())
	assert.Empty(t, out.Milestones)
	assert.Equal(t, 5, tr.TotalCompletions)
	assert.Equal(t, 1, tr.CurrentStreak)

	// Redo it: back at 5, still nothing fires
	out = Reconcile(tr, Snapshot{Streak: 2, Completed: 5}, DefaultDetector())
	assert.Empty(t, out.Milestones)

	// Streak grows past the previous longest
	Reconcile(tr, Snapshot{Streak: 4, Completed: 6}, DefaultDetector())
	assert.Equal(t, 4, tr.LongestStreak)
}
