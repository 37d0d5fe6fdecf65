package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStablefordPoints(t *testing.T) {
	tests := []struct {
		name string
		net  int
		par  int
		want int
	}{
		{"albatross or better", 2, 5, 8},
		{"eagle", 3, 5, 5},
		{"birdie", 3, 4, 3},
		{"par", 4, 4, 1},
		{"bogey", 5, 4, 0},
		{"double bogey", 6, 4, -1},
		{"worse than double", 9, 4, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StablefordPoints(tt.net, tt.par))
		})
	}
}

func TestComputeTeamFormatRequiresFullTeams(t *testing.T) {
	ids, handicaps := scratchPlayers(3)
	state := ComputeTeamFormat(TeamFormatConfig{
		Format: FormatStableford,
		Team1:  []uuid.UUID{ids[0], ids[1]},
		Team2:  []uuid.UUID{ids[2]},
	}, testHoles(18), handicaps, Scorecard{})
	assert.Nil(t, state)
}

// Hi/Lo sweep: team 1 nets beat team 2 on both the low
// and high comparisons, taking both points.
func TestComputeTeamFormatHiLo(t *testing.T) {
	ids, handicaps := scratchPlayers(4)

	// Single-hole nets: team 1 = 3 and 5, team 2 = 4 and 6.
	// Low: 3 < 4 → team 1. High: 5 < 6 → team 1. Hole result 2–0.
	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {5},
		ids[2]: {4},
		ids[3]: {6},
	})

	state := ComputeTeamFormat(TeamFormatConfig{
		Format: FormatPointsHiLo,
		Team1:  []uuid.UUID{ids[0], ids[1]},
		Team2:  []uuid.UUID{ids[2], ids[3]},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	assert.Equal(t, 2.0, state.Holes[0].Team1Points)
	assert.Equal(t, 0.0, state.Holes[0].Team2Points)
}

func TestComputeTeamFormatHiLoTieSplits(t *testing.T) {
	ids, handicaps := scratchPlayers(4)

	// Low balls tie (3 vs 3) → half a point each; team 1's high 4 beats 5.
	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {4},
		ids[2]: {3},
		ids[3]: {5},
	})

	state := ComputeTeamFormat(TeamFormatConfig{
		Format: FormatPointsHiLo,
		Team1:  []uuid.UUID{ids[0], ids[1]},
		Team2:  []uuid.UUID{ids[2], ids[3]},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	assert.Equal(t, 1.5, state.Holes[0].Team1Points)
	assert.Equal(t, 0.5, state.Holes[0].Team2Points)
}

func TestComputeTeamFormatStableford(t *testing.T) {
	ids, handicaps := scratchPlayers(4)

	// Par-4 hole: team 1 makes birdie (3) + par (1) = 4 points; team 2 makes
	// bogey (0) + double (−1) = −1.
	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {4},
		ids[2]: {5},
		ids[3]: {6},
	})

	state := ComputeTeamFormat(TeamFormatConfig{
		Format: FormatStableford,
		Team1:  []uuid.UUID{ids[0], ids[1]},
		Team2:  []uuid.UUID{ids[2], ids[3]},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	assert.Equal(t, 4.0, state.Holes[0].Team1Points)
	assert.Equal(t, -1.0, state.Holes[0].Team2Points)
	assert.Equal(t, 4.0, state.Team1Total)
	assert.Equal(t, -1.0, state.Team2Total)
}

// A hole missing any of the four scores contributes nothing, and the current
// hole points at the first such hole.
func TestComputeTeamFormatIncompleteHole(t *testing.T) {
	ids, handicaps := scratchPlayers(4)

	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3, 4},
		ids[1]: {4, 4},
		ids[2]: {4, 0}, // hole 2 not played
		ids[3]: {5, 4},
	})

	state := ComputeTeamFormat(TeamFormatConfig{
		Format: FormatPointsHiLo,
		Team1:  []uuid.UUID{ids[0], ids[1]},
		Team2:  []uuid.UUID{ids[2], ids[3]},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	assert.True(t, state.Holes[0].Complete)
	assert.False(t, state.Holes[1].Complete)
	assert.Equal(t, 2, state.CurrentHole)
	assert.Equal(t, 2.0, state.Team1Total) // only hole 1 counts
}
