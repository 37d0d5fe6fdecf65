package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The carryover pot sequence: winners on holes 1 and 4, ties on 2 and 3, at $5
// a skin. Pots run 5,10,15,20 and the hole-4 winner collects all three carried
// skins plus their own.
func TestComputeSkinsCarryoverSequence(t *testing.T) {
	ids, handicaps := scratchPlayers(3)
	p1, p2, p3 := ids[0], ids[1], ids[2]

	card := cardFromRows(map[uuid.UUID][]int{
		p1: {3, 4, 4, 5}, // wins hole 1
		p2: {4, 4, 4, 3}, // wins hole 4
		p3: {4, 4, 4, 5},
	})

	state := ComputeSkins(SkinsConfig{
		SkinValue: 5,
		Carryover: true,
		Players:   ids,
	}, testHoles(18), handicaps, card)

	wantPots := []float64{5, 10, 15, 20}
	for i, want := range wantPots {
		assert.Equal(t, want, state.Holes[i].Pot, "hole %d pot", i+1)
	}

	require.True(t, state.Holes[0].Won)
	assert.Equal(t, p1, state.Holes[0].WinnerID)
	assert.Equal(t, 1, state.Holes[0].SkinsAwarded)

	assert.False(t, state.Holes[1].Won)
	assert.False(t, state.Holes[2].Won)
	assert.Equal(t, 3, state.Holes[3].CarryCountBefore)

	require.True(t, state.Holes[3].Won)
	assert.Equal(t, p2, state.Holes[3].WinnerID)
	assert.Equal(t, 4, state.Holes[3].SkinsAwarded)
	assert.Equal(t, 20.0, state.WinningsByPlayer[p2])
	assert.Equal(t, 0, state.CurrentCarryCount)
}

// Three players, $5 skins: holes 1–2 tie, hole 3 has a unique winner
// who collects $15 for three skins.
func TestComputeSkinsThreePlayerScenario(t *testing.T) {
	ids, handicaps := scratchPlayers(3)
	p1 := ids[0]

	card := cardFromRows(map[uuid.UUID][]int{
		p1:     {4, 4, 3},
		ids[1]: {4, 4, 4},
		ids[2]: {4, 4, 4},
	})

	state := ComputeSkins(SkinsConfig{
		SkinValue: 5,
		Carryover: true,
		Players:   ids,
	}, testHoles(18), handicaps, card)

	assert.Equal(t, 15.0, state.WinningsByPlayer[p1])
	assert.Equal(t, 3, state.SkinsByPlayer[p1])
	assert.Equal(t, 3, state.TotalSkinsAwarded)
	assert.Equal(t, 0, state.CurrentCarryCount)
}

// With carryover disabled, a tied skin is lost: the pot never compounds.
func TestComputeSkinsNoCarryover(t *testing.T) {
	ids, handicaps := scratchPlayers(3)
	p1 := ids[0]

	card := cardFromRows(map[uuid.UUID][]int{
		p1:     {4, 3},
		ids[1]: {4, 4},
		ids[2]: {4, 4},
	})

	state := ComputeSkins(SkinsConfig{
		SkinValue: 5,
		Carryover: false,
		Players:   ids,
	}, testHoles(18), handicaps, card)

	// Hole 1 tied and died; hole 2 is worth a single skin.
	assert.Equal(t, 0, state.Holes[1].CarryCountBefore)
	assert.Equal(t, 5.0, state.Holes[1].Pot)
	assert.Equal(t, 1, state.SkinsByPlayer[p1])
	assert.Equal(t, 5.0, state.WinningsByPlayer[p1])
}

// A hole where anyone in the field is missing a score resolves nothing: the
// carry count and winnings are untouched until the field completes the hole.
func TestComputeSkinsIncompleteHole(t *testing.T) {
	ids, handicaps := scratchPlayers(3)

	card := cardFromRows(map[uuid.UUID][]int{
		ids[0]: {3},
		ids[1]: {4},
		// ids[2] hasn't scored hole 1
	})

	state := ComputeSkins(SkinsConfig{
		SkinValue: 5,
		Carryover: true,
		Players:   ids,
	}, testHoles(18), handicaps, card)

	assert.False(t, state.Holes[0].Complete)
	assert.False(t, state.Holes[0].Won)
	assert.Equal(t, 0, state.CurrentCarryCount)
	assert.Equal(t, 0, state.TotalSkinsAwarded)
}

// Settlement is winnings minus a buy-in of one skin per hole.
func TestComputeSkinsSettlement(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	p1, p2 := ids[0], ids[1]

	rows1 := make([]int, 18)
	rows2 := make([]int, 18)
	for i := 0; i < 18; i++ {
		rows1[i], rows2[i] = 3, 4 // p1 wins every hole
	}
	card := cardFromRows(map[uuid.UUID][]int{p1: rows1, p2: rows2})

	state := ComputeSkins(SkinsConfig{
		SkinValue: 5,
		Carryover: true,
		Players:   ids,
	}, testHoles(18), handicaps, card)

	// 18 skins at $5 each against a $90 buy-in.
	assert.Equal(t, 90.0, state.WinningsByPlayer[p1])
	assert.Equal(t, 0.0, state.NetResultsByPlayer[p1])
	assert.Equal(t, -90.0, state.NetResultsByPlayer[p2])
}
