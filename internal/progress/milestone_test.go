package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDetector_MultiplesOfFive(t *testing.T) {
	d := DefaultDetector()

	for n := -5; n <= 60; n++ {
		want := n > 0 && n%5 == 0
		assert.Equal(t, want, d.IsMilestone(n), "total %d", n)
	}
}

func TestFixedSetDetector(t *testing.T) {
	d := FixedSetDetector(LegacyThresholds)

	assert.True(t, d.IsMilestone(5))
	assert.True(t, d.IsMilestone(20))
	assert.False(t, d.IsMilestone(15))
	assert.False(t, d.IsMilestone(55))
}

func TestCrossed(t *testing.T) {
	d := DefaultDetector()

	tests := []struct {
		name       string
		prev, next int
		want       []int
	}{
		{name: "4 to 5", prev: 4, next: 5, want: []int{5}},
		{name: "5 to 5 replay", prev: 5, next: 5, want: nil},
		{name: "5 to 4 decrease", prev: 5, next: 4, want: nil},
		{name: "5 to 6", prev: 5, next: 6, want: nil},
		{name: "jump over two", prev: 3, next: 12, want: []int{5, 10}},
		{name: "from zero", prev: 0, next: 5, want: []int{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Crossed(tt.prev, tt.next))
		})
	}
}

// Walking totals one completion at a time fires each multiple of five exactly once.
func TestCrossed_EachThresholdOnce(t *testing.T) {
	d := DefaultDetector()
	fired := make(map[int]int)

	total := 0
	for i := 0; i < 50; i++ {
		next := total + 1
		for _, m := range d.Crossed(total, next) {
			fired[m]++
		}
		// Replaying the same total never fires again
		for _, m := range d.Crossed(next, next) {
			fired[m]++
		}
		total = next
	}

	assert.Len(t, fired, 10)
	for m, count := range fired {
		assert.Equal(t, 1, count, "milestone %d", m)
	}
}

func TestMilestoneMessage(t *testing.T) {
	assert.Equal(t, "Milestone achieved: 5 completions!", MilestoneMessage(5))
}
