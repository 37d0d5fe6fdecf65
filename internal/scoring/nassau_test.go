package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nassauFixture builds an 18-hole 1v1 Nassau where A wins the holes listed in
// aWins, B wins those in bWins, and everything else halves.
func nassauFixture(t *testing.T, aWins, bWins []int, cfg NassauConfig) (NassauState, uuid.UUID, uuid.UUID) {
	t.Helper()
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	rowsA := make([]int, 18)
	rowsB := make([]int, 18)
	for i := 0; i < 18; i++ {
		rowsA[i], rowsB[i] = 4, 4
	}
	for _, h := range aWins {
		rowsA[h-1], rowsB[h-1] = 3, 4
	}
	for _, h := range bWins {
		rowsA[h-1], rowsB[h-1] = 4, 3
	}

	cfg.TeamA = []uuid.UUID{a}
	cfg.TeamB = []uuid.UUID{b}
	card := cardFromRows(map[uuid.UUID][]int{a: rowsA, b: rowsB})
	return ComputeNassau(cfg, testHoles(18), handicaps, card), a, b
}

func TestComputeNassauSegments(t *testing.T) {
	// A takes the front 2-up, B takes the back 1-up, A edges the overall.
	state, _, _ := nassauFixture(t,
		[]int{1, 2, 3}, // A wins three on the front
		[]int{5, 10, 17},
		NassauConfig{StakePerMan: 5},
	)

	assert.Equal(t, 2, state.Front.Lead)
	assert.Equal(t, SideA, state.Front.Winner)
	assert.Equal(t, -2, state.Back.Lead)
	assert.Equal(t, SideB, state.Back.Winner)
	assert.Equal(t, 0, state.Overall.Lead)
	assert.Equal(t, SideNone, state.Overall.Winner)
	assert.Equal(t, "A/S", state.Overall.Status)

	// Flat settlement: front +5, back -5, overall halved → 0 per man for A.
	assert.Equal(t, 0.0, state.TeamAPerMan)
}

func TestComputeNassauSegmentWindows(t *testing.T) {
	// A hole-10 win belongs to the back and overall, never the front.
	state, _, _ := nassauFixture(t, []int{10}, nil, NassauConfig{StakePerMan: 5})

	assert.Equal(t, 0, state.Front.Lead)
	assert.Equal(t, 1, state.Back.Lead)
	assert.Equal(t, 1, state.Overall.Lead)
	assert.Equal(t, 9, state.Front.HolesPlayed)
	assert.Equal(t, 9, state.Back.HolesPlayed)
	assert.Equal(t, 18, state.Overall.HolesPlayed)
}

func TestComputeNassauSettlementPerMan(t *testing.T) {
	// A sweeps all three segments at $5 per man.
	state, _, _ := nassauFixture(t,
		[]int{1, 2, 3, 4, 5, 10, 11, 12, 13, 14},
		nil,
		NassauConfig{StakePerMan: 5},
	)

	assert.Equal(t, SideA, state.Front.Winner)
	assert.Equal(t, SideA, state.Back.Winner)
	assert.Equal(t, SideA, state.Overall.Winner)
	assert.Equal(t, 15.0, state.TeamAPerMan)
}

func TestComputeNassauAutoPressFiresOncePerSegment(t *testing.T) {
	// A goes 2-up after hole 2 and keeps winning: each segment fires exactly
	// one auto-press the first time its own running lead hits the threshold.
	state, _, _ := nassauFixture(t,
		[]int{1, 2, 3, 4, 10, 11, 12},
		nil,
		NassauConfig{StakePerMan: 5, AutoPress: true, AutoPressThreshold: 2},
	)

	require.Len(t, state.AutoPresses, 3)

	byStart := map[NassauSegment]int{}
	for _, ap := range state.AutoPresses {
		byStart[ap.Segment] = ap.StartingHole
		assert.Equal(t, 5.0, ap.Stake)
	}
	assert.Equal(t, 3, byStart[NassauFront])   // 2-up after hole 2, press starts hole 3
	assert.Equal(t, 12, byStart[NassauBack])   // 2-up after hole 11
	assert.Equal(t, 3, byStart[NassauOverall]) // overall lead hits 2 on hole 2 as well
}

func TestComputeNassauAutoPressDisabled(t *testing.T) {
	state, _, _ := nassauFixture(t,
		[]int{1, 2, 3, 4, 5},
		nil,
		NassauConfig{StakePerMan: 5, AutoPress: false, AutoPressThreshold: 2},
	)
	assert.Empty(t, state.AutoPresses)
}

// An unfinished segment settles to zero — money only moves once a segment is
// closed or fully played.
func TestComputeNassauUnfinishedSegmentsSettleZero(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	// Only four holes played; A leads 2-up but nothing is decided.
	card := cardFromRows(map[uuid.UUID][]int{
		a: {3, 3, 4, 4},
		b: {4, 4, 4, 4},
	})

	state := ComputeNassau(NassauConfig{
		StakePerMan: 5,
		TeamA:       []uuid.UUID{a},
		TeamB:       []uuid.UUID{b},
	}, testHoles(18), handicaps, card)

	assert.False(t, state.Front.Closed)
	assert.Equal(t, 0.0, state.TeamAPerMan)
}
