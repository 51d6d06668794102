package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/habitstack/internal/errors"
)

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength(7))
	assert.NoError(t, ValidateLength(14))

	for _, days := range []int{0, -7, 1, 10, 21} {
		err := ValidateLength(days)
		assert.ErrorIs(t, err, apperrors.ErrValidation, "days %d", days)
	}
}

func TestNewPlan_BaseIsLaterOfWindowAndLogs(t *testing.T) {
	tests := []struct {
		name        string
		activeUntil string
		latestLog   string
		wantBase    string
		wantEnd     string
	}{
		{name: "window ahead of logs", activeUntil: "2025-03-20", latestLog: "2025-03-15", wantBase: "2025-03-20", wantEnd: "2025-03-27"},
		{name: "logs ahead of window", activeUntil: "2025-03-10", latestLog: "2025-03-15", wantBase: "2025-03-15", wantEnd: "2025-03-22"},
		{name: "no logs", activeUntil: "2025-03-10", latestLog: "", wantBase: "2025-03-10", wantEnd: "2025-03-17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPlan(tt.activeUntil, tt.latestLog, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBase, p.Base)
			assert.Equal(t, tt.wantEnd, p.End)
			require.Len(t, p.Candidates, 7)
			assert.Equal(t, tt.wantEnd, p.Candidates[6])
		})
	}
}

func TestNewPlan_InvalidLength(t *testing.T) {
	_, err := NewPlan("2025-03-10", "", 5)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestInitial(t *testing.T) {
	p, err := Initial("2025-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-09", p.Base)
	assert.Equal(t, "2025-03-16", p.End)
	assert.Equal(t, []string{
		"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13",
		"2025-03-14", "2025-03-15", "2025-03-16",
	}, p.Candidates)
}

func TestMissing(t *testing.T) {
	p, err := NewPlan("2025-03-10", "", 7)
	require.NoError(t, err)

	missing := p.Missing([]string{"2025-03-12", "2025-03-15", "2025-01-01"})
	assert.Equal(t, []string{"2025-03-11", "2025-03-13", "2025-03-14", "2025-03-16", "2025-03-17"}, missing)

	assert.Empty(t, p.Missing(p.Candidates))
}

// Two 7-day extensions reach the same end as a single 14-day one.
func TestNewPlan_ChainedMatchesSingle(t *testing.T) {
	first, err := NewPlan("2025-03-10", "", 7)
	require.NoError(t, err)
	second, err := NewPlan(first.End, first.End, 7)
	require.NoError(t, err)

	single, err := NewPlan("2025-03-10", "", 14)
	require.NoError(t, err)

	assert.Equal(t, single.End, second.End)
	assert.Equal(t, single.Candidates, append(first.Candidates, second.Candidates...))
}

func TestExpiring(t *testing.T) {
	soon, err := Expiring("2025-03-11", "2025-03-10", 2)
	require.NoError(t, err)
	assert.True(t, soon)

	soon, err = Expiring("2025-03-12", "2025-03-10", 2)
	require.NoError(t, err)
	assert.False(t, soon)

	soon, err = Expiring("2025-03-01", "2025-03-10", 2)
	require.NoError(t, err)
	assert.True(t, soon)
}
