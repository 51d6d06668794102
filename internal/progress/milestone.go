package progress

import (
	"fmt"

	"github.com/julianstephens/habitstack/internal/constants"
)

// Rule selects how milestone thresholds are defined
type Rule int

const (
	// RuleMultipleOf fires on every positive multiple of Detector.Step
	RuleMultipleOf Rule = iota
	// RuleFixedSet fires only on the counts listed in Detector.Thresholds
	RuleFixedSet
)

// LegacyThresholds is the fixed threshold set used before the multiple-of-five rule.
var LegacyThresholds = []int{5, 10, 20, 30, 40, 50}

// Detector decides which completion counts are milestones
type Detector struct {
	Rule       Rule
	Step       int
	Thresholds []int
}

// DefaultDetector fires on every multiple of constants.MilestoneStep.
func DefaultDetector() Detector {
	return Detector{Rule: RuleMultipleOf, Step: constants.MilestoneStep}
}

// FixedSetDetector fires only on the given thresholds.
func FixedSetDetector(thresholds []int) Detector {
	return Detector{Rule: RuleFixedSet, Thresholds: thresholds}
}

// IsMilestone reports whether total is a milestone count.
func (d Detector) IsMilestone(total int) bool {
	if total <= 0 {
		return false
	}
	switch d.Rule {
	case RuleFixedSet:
		for _, t := range d.Thresholds {
			if t == total {
				return true
			}
		}
		return false
	default:
		step := d.Step
		if step <= 0 {
			step = constants.MilestoneStep
		}
		return total%step == 0
	}
}

// Crossed returns the milestone counts in (prev, next], ascending. A
// non-increasing total never crosses anything.
func (d Detector) Crossed(prev, next int) []int {
	if next <= prev {
		return nil
	}
	var crossed []int
	for n := prev + 1; n <= next; n++ {
		if d.IsMilestone(n) {
			crossed = append(crossed, n)
		}
	}
	return crossed
}

// MilestoneMessage is the description stored with a milestone record.
func MilestoneMessage(total int) string {
	return fmt.Sprintf("Milestone achieved: %d completions!", total)
}
