package replay

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSummaryRaceOf(t *testing.T) {
	t.Parallel()

	sum := &Summary{
		Players: []Participant{
			{ID: 0, Name: "Alice", Race: "Terran"},
			{ID: 1, Name: "Bob", Race: "Zerg"},
		},
	}

	require.Equal(t, "Terran", sum.RaceOf("Alice"))
	require.Equal(t, "Zerg", sum.RaceOf("Bob"))
	require.Empty(t, sum.RaceOf("Carol"))
	require.Empty(t, sum.RaceOf(""))
}

func TestSummaryAPMOf(t *testing.T) {
	t.Parallel()

	sum := &Summary{Stats: map[int]PlayerStats{0: {APM: 185.2}}}
	require.Equal(t, 185.2, sum.APMOf(0))
	require.Zero(t, sum.APMOf(1))
}

func TestExecDecoderRequiresCommand(t *testing.T) {
	t.Parallel()

	dec := NewExecDecoder("")
	_, err := dec.Decode(context.Background(), "some.rep")
	require.Error(t, err)
}
