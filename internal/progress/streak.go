// Package progress holds the streak and milestone rules for habit stacks.
// Everything here is pure; callers load log days from storage and persist
// the results.
package progress

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/constants"
	"github.com/julianstephens/habitstack/internal/utils"
)

// CurrentStreak returns the number of consecutive calendar days ending at the
// most recent completed day. The run does not have to include today; only a
// gap between two completed days ends it.
func CurrentStreak(completedDays []string) (int, error) {
	days := utils.SortDaysDesc(completedDays)
	if len(days) == 0 {
		return 0, nil
	}

	streak := 1
	anchor := days[0]
	for _, day := range days[1:] {
		gap, err := utils.DaysBetween(day, anchor)
		if err != nil {
			return 0, err
		}
		if gap != 1 {
			break
		}
		streak++
		anchor = day
	}

	return streak, nil
}

// LongestRun returns the longest run of consecutive days anywhere in the history.
func LongestRun(completedDays []string) (int, error) {
	days := utils.SortDaysDesc(completedDays)
	if len(days) == 0 {
		return 0, nil
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		gap, err := utils.DaysBetween(days[i], days[i-1])
		if err != nil {
			return 0, err
		}
		if gap == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return longest, nil
}

// StreakMessage returns the encouragement shown after a completion, or "" when
// the streak is too short to mention.
func StreakMessage(streak int) string {
	if streak < constants.MinStreakForMessage {
		return ""
	}
	return fmt.Sprintf("You're on a %d-day streak! Keep it up!", streak)
}
