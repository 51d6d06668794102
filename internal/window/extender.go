// Package window plans how far a habit stack's log window is extended and
// which placeholder days still need a row.
package window

import (
	"slices"

	"github.com/julianstephens/habitstack/internal/constants"
	apperrors "github.com/julianstephens/habitstack/internal/errors"
	"github.com/julianstephens/habitstack/internal/utils"
)

// Plan describes one window extension. Candidates are every day in
// (Base, End], oldest first.
type Plan struct {
	Base       string
	End        string
	Candidates []string
}

// ValidateLength rejects extension lengths outside constants.ExtensionOptions.
func ValidateLength(days int) error {
	if !slices.Contains(constants.ExtensionOptions, days) {
		return apperrors.Validationf("invalid extension length %d: must be one of %v", days, constants.ExtensionOptions)
	}
	return nil
}

// NewPlan extends from the later of activeUntil and latestLog. latestLog may be
// empty when the stack has no logs yet.
func NewPlan(activeUntil, latestLog string, days int) (Plan, error) {
	if err := ValidateLength(days); err != nil {
		return Plan{}, err
	}
	return span(utils.LaterDay(activeUntil, latestLog), days)
}

// Initial is the window materialized for a stack created on today: the base is
// the day before, so rows exist for today through today+InitialWindowDays-1.
func Initial(today string) (Plan, error) {
	base, err := utils.AddDays(today, -1)
	if err != nil {
		return Plan{}, err
	}
	return span(base, constants.InitialWindowDays)
}

func span(base string, days int) (Plan, error) {
	if _, err := utils.ParseDay(base); err != nil {
		return Plan{}, apperrors.Validationf("invalid window base: %v", err)
	}

	p := Plan{Base: base, Candidates: make([]string, 0, days)}
	for i := 1; i <= days; i++ {
		day, err := utils.AddDays(base, i)
		if err != nil {
			return Plan{}, err
		}
		p.Candidates = append(p.Candidates, day)
	}
	p.End = p.Candidates[len(p.Candidates)-1]
	return p, nil
}

// Missing returns the candidate days that are not in existing.
func (p Plan) Missing(existing []string) []string {
	have := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		have[d] = struct{}{}
	}

	var missing []string
	for _, d := range p.Candidates {
		if _, ok := have[d]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

// Expiring reports whether a window ending at activeUntil has fewer than
// within days left after today.
func Expiring(activeUntil, today string, within int) (bool, error) {
	left, err := utils.DaysBetween(today, activeUntil)
	if err != nil {
		return false, err
	}
	return left < within, nil
}
