package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWolfForHoleRotation(t *testing.T) {
	ids, _ := scratchPlayers(4)
	for hole := 1; hole <= 18; hole++ {
		assert.Equal(t, ids[(hole-1)%4], WolfForHole(ids, hole), "hole %d", hole)
	}
}

func TestComputeWolfRequiresFourPlayers(t *testing.T) {
	ids, handicaps := scratchPlayers(3)
	state := ComputeWolf(WolfConfig{TeeOrder: ids}, testHoles(18), handicaps, Scorecard{})
	assert.Nil(t, state)
}

func TestComputeWolfPartneredHole(t *testing.T) {
	ids, handicaps := scratchPlayers(4)
	wolf, partner := ids[0], ids[2]

	// Hole 1: wolf (ids[0]) partners ids[2]; their best ball 3 beats 4.
	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {4},
		ids[2]: {5},
		ids[3]: {4},
	})

	state := ComputeWolf(WolfConfig{
		StakePerHole:       2,
		LoneWolfMultiplier: 2,
		TeeOrder:           ids,
		Decisions:          []WolfDecision{{HoleNumber: 1, PartnerID: &partner}},
	}, testHoles(18), handicaps, card)

	require.NotNil(t, state)
	h := state.Holes[0]
	require.True(t, h.Decided)
	require.True(t, h.Complete)

	// Each winning-pair member collects the stake from each losing-pair member.
	assert.Equal(t, 4.0, h.Deltas[wolf])
	assert.Equal(t, 4.0, h.Deltas[partner])
	assert.Equal(t, -4.0, h.Deltas[ids[1]])
	assert.Equal(t, -4.0, h.Deltas[ids[3]])
}

func TestComputeWolfLoneWolf(t *testing.T) {
	ids, handicaps := scratchPlayers(4)
	wolf := ids[0]

	cfg := WolfConfig{
		StakePerHole:       2,
		LoneWolfMultiplier: 3,
		TeeOrder:           ids,
		Decisions:          []WolfDecision{{HoleNumber: 1, IsLoneWolf: true}},
	}

	// Wolf's 3 beats the pack's best 4: each opponent pays stake × multiplier.
	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {4},
		ids[2]: {5},
		ids[3]: {4},
	})
	state := ComputeWolf(cfg, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	h := state.Holes[0]
	assert.Equal(t, 18.0, h.Deltas[wolf]) // 3 opponents × $2 × 3
	assert.Equal(t, -6.0, h.Deltas[ids[1]])
	assert.Equal(t, -6.0, h.Deltas[ids[2]])
	assert.Equal(t, -6.0, h.Deltas[ids[3]])

	// Losing lone wolf pays each opponent instead.
	card[ids[1]][1] = 2
	state = ComputeWolf(cfg, testHoles(18), handicaps, card)
	h = state.Holes[0]
	assert.Equal(t, -18.0, h.Deltas[wolf])
	assert.Equal(t, 6.0, h.Deltas[ids[1]])

	// A tie with the best opponent moves nothing.
	card[ids[1]][1] = 3
	state = ComputeWolf(cfg, testHoles(18), handicaps, card)
	assert.Empty(t, state.Holes[0].Deltas)
	assert.Equal(t, 0.0, state.Totals[wolf])
}

// Every decided, complete hole is zero-sum across the four players, and so are
// the running totals.
func TestComputeWolfZeroSum(t *testing.T) {
	ids, handicaps := scratchPlayers(4)
	partner := ids[1]

	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3, 4, 5, 4},
		ids[1]: {5, 3, 4, 4},
		ids[2]: {4, 5, 3, 5},
		ids[3]: {4, 4, 4, 3},
	})

	state := ComputeWolf(WolfConfig{
		StakePerHole:       2,
		LoneWolfMultiplier: 2,
		TeeOrder:           ids,
		Decisions: []WolfDecision{
			{HoleNumber: 1, IsLoneWolf: true},
			{HoleNumber: 2, PartnerID: &ids[0]},
			{HoleNumber: 3, IsLoneWolf: true},
			{HoleNumber: 4, PartnerID: &partner},
		},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	for _, h := range state.Holes[:4] {
		sum := 0.0
		for _, d := range h.Deltas {
			sum += d
		}
		assert.Equal(t, 0.0, sum, "hole %d", h.HoleNumber)
	}

	total := 0.0
	for _, v := range state.Totals {
		total += v
	}
	assert.Equal(t, 0.0, total)
}

// The current hole is the first hole that is incomplete or undecided.
func TestComputeWolfCurrentHole(t *testing.T) {
	ids, handicaps := scratchPlayers(4)

	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3, 4},
		ids[1]: {4, 4},
		ids[2]: {4, 4},
		ids[3]: {4, 4},
	})

	// Hole 1 decided and complete; hole 2 complete but undecided.
	state := ComputeWolf(WolfConfig{
		StakePerHole:       2,
		LoneWolfMultiplier: 2,
		TeeOrder:           ids,
		Decisions:          []WolfDecision{{HoleNumber: 1, IsLoneWolf: true}},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)
	assert.Equal(t, 2, state.CurrentHole)
}

// A stored decision that names the wolf as their own partner is malformed.
// Scoring it as a partnered hole would double-count the wolf on both sides
// and break the per-hole zero sum, so the hole is treated as undecided.
func TestComputeWolfSelfPartnerLeavesHoleUndecided(t *testing.T) {
	ids, handicaps := scratchPlayers(4)

	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {4},
		ids[2]: {4},
		ids[3]: {4},
	})

	// ids[0] is the wolf on hole 1 and the decision names them as partner.
	state := ComputeWolf(WolfConfig{
		StakePerHole:       2,
		LoneWolfMultiplier: 2,
		TeeOrder:           ids,
		Decisions:          []WolfDecision{{HoleNumber: 1, PartnerID: &ids[0]}},
	}, testHoles(18), handicaps, card)
	require.NotNil(t, state)

	hole := state.Holes[0]
	assert.False(t, hole.Decided)
	assert.Empty(t, hole.Deltas)
	assert.Equal(t, 1, state.CurrentHole)
	for _, v := range state.Totals {
		assert.Equal(t, 0.0, v)
	}
}
