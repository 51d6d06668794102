package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/models"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		a, b string
		same bool
	}{
		{"Read", "read", true},
		{"  Read   a book ", "read a book", true},
		{"caf\u00e9", "CAFE\u0301", true},
		{"Read", "Write", false},
	}

	for _, tt := range tests {
		got := NormalizeName(tt.a) == NormalizeName(tt.b)
		if got != tt.same {
			t.Errorf("NormalizeName(%q) == NormalizeName(%q): got %v, want %v", tt.a, tt.b, got, tt.same)
		}
	}
}

func TestCleanName_KeepsCase(t *testing.T) {
	if got := CleanName("  Morning   Walk "); got != "Morning Walk" {
		t.Errorf("CleanName() = %q, want %q", got, "Morning Walk")
	}
}

func TestHabitKey(t *testing.T) {
	if got := HabitKey(models.HabitDescriptor{PredefinedID: "42"}); got != "p:42" {
		t.Errorf("HabitKey(predefined) = %q", got)
	}
	if got := HabitKey(models.HabitDescriptor{Custom: " Drink WATER "}); got != "c:drink water" {
		t.Errorf("HabitKey(custom) = %q", got)
	}
}

func TestValidateDescriptor(t *testing.T) {
	tests := []struct {
		name    string
		d       models.HabitDescriptor
		wantErr bool
	}{
		{"predefined only", models.HabitDescriptor{PredefinedID: "1"}, false},
		{"custom only", models.HabitDescriptor{Custom: "Stretch"}, false},
		{"both set", models.HabitDescriptor{PredefinedID: "1", Custom: "Stretch"}, true},
		{"neither set", models.HabitDescriptor{}, true},
		{"whitespace custom", models.HabitDescriptor{Custom: "   "}, true},
		{"too long", models.HabitDescriptor{Custom: strings.Repeat("a", constants.MaxHabitNameLength+1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDescriptor("habit1", tt.d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateDescriptor() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperrors.ErrValidation) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestValidateGoal(t *testing.T) {
	for _, g := range []constants.Goal{"", constants.GoalDaily, constants.GoalNoGoal} {
		if err := ValidateGoal(g); err != nil {
			t.Errorf("ValidateGoal(%q) unexpected error: %v", g, err)
		}
	}
	if err := ValidateGoal("WEEKLY"); !apperrors.IsValidation(err) {
		t.Errorf("ValidateGoal(WEEKLY) = %v, want validation error", err)
	}
}

func TestValidateStackInput(t *testing.T) {
	ok := models.HabitStackInput{
		Habit1: models.HabitDescriptor{PredefinedID: "1"},
		Habit2: models.HabitDescriptor{Custom: "Journal"},
	}
	if err := ValidateStackInput(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.Habit2 = models.HabitDescriptor{}
	err := ValidateStackInput(bad)
	if err == nil || !strings.Contains(err.Error(), "habit2") {
		t.Errorf("expected habit2 error, got %v", err)
	}
}

func TestValidateDistinct(t *testing.T) {
	if err := ValidateDistinct("Meditate", "Journal"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateDistinct("Meditate", "  MEDITATE"); !apperrors.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}
