package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encounters(s Scheduler, n int) [][2]int {
	s.Initialize(n)

	var pairs [][2]int
	for i, n := 0, s.TotalEncounters(); i < n; i++ {
		p1, p2 := s.NextEncounter()
		pairs = append(pairs, [2]int{p1, p2})
	}

	return pairs
}

func TestRoundRobin(t *testing.T) {
	s, err := New("round-robin")
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, encounters(s, 4))
	assert.Equal(t, [][2]int{{0, 1}}, encounters(s, 2), "reinitialized")
	assert.Empty(t, encounters(s, 1))
}

func TestGauntlet(t *testing.T) {
	s, err := New("gauntlet")
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}}, encounters(s, 4))
	assert.Empty(t, encounters(s, 0))
}

func TestUnknown(t *testing.T) {
	_, err := New("swiss")
	assert.Error(t, err)
}
