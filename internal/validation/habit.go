package validation

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

var folder = cases.Fold()

// NormalizeName folds a habit name for comparison: NFC normalized, case
// folded and with runs of whitespace collapsed.
func NormalizeName(name string) string {
	n := norm.NFC.String(name)
	n = folder.String(n)
	return strings.Join(strings.Fields(n), " ")
}

// CleanName trims and NFC-normalizes a user-supplied name for storage without
// changing its case.
func CleanName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// HabitKey returns the value a slot contributes to the per-user uniqueness
// key. Predefined habits are keyed by id, custom habits by normalized name.
func HabitKey(d models.HabitDescriptor) string {
	if d.IsPredefined() {
		return constants.HabitKeyPredefinedPrefix + d.PredefinedID
	}
	return constants.HabitKeyCustomPrefix + NormalizeName(d.Custom)
}

// ValidateDescriptor checks that exactly one of PredefinedID and Custom is set.
func ValidateDescriptor(slot string, d models.HabitDescriptor) error {
	custom := strings.TrimSpace(d.Custom)
	switch {
	case d.PredefinedID != "" && custom != "":
		return apperrors.Validationf("%s: choose either a predefined habit or a custom habit, not both", slot)
	case d.PredefinedID == "" && custom == "":
		return apperrors.Validationf("%s: a predefined or custom habit is required", slot)
	}
	if utf8.RuneCountInString(custom) > constants.MaxHabitNameLength {
		return apperrors.Validationf("%s: custom habit name exceeds %d characters", slot, constants.MaxHabitNameLength)
	}
	return nil
}

// ValidateGoal accepts the known goal modes. An empty goal is allowed and
// means constants.GoalDaily.
func ValidateGoal(goal constants.Goal) error {
	switch goal {
	case "", constants.GoalDaily, constants.GoalNoGoal:
		return nil
	default:
		return apperrors.Validationf("invalid goal %q: must be %s or %s", goal, constants.GoalDaily, constants.GoalNoGoal)
	}
}

// ValidateStackInput checks the shape of both slots and the goal. Name
// distinctness needs resolved catalog names, see ValidateDistinct.
func ValidateStackInput(in models.HabitStackInput) error {
	if err := ValidateDescriptor("habit1", in.Habit1); err != nil {
		return err
	}
	if err := ValidateDescriptor("habit2", in.Habit2); err != nil {
		return err
	}
	return ValidateGoal(in.Goal)
}

// ValidateDistinct rejects a stack whose two habits resolve to the same name.
func ValidateDistinct(habit1Name, habit2Name string) error {
	if NormalizeName(habit1Name) == NormalizeName(habit2Name) {
		return apperrors.Validationf("habit1 and habit2 must be different habits (both are %q)", CleanName(habit1Name))
	}
	return nil
}
