package scoring

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The end-to-end scenario from a real money game: 1v1 at $10, player A wins
// holes 1–3, hole 4 halves, player B wins 5–7. Lead runs 1,2,3,3,2,1,0 and the
// match is all square with 11 to play.
func TestComputeMatchLeadSequence(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	card := cardFromRows(map[uuid.UUID][]int{
		a: {4, 4, 4, 4, 5, 5, 5},
		b: {5, 5, 5, 4, 4, 4, 4},
	})

	state := ComputeMatch(MatchConfig{
		Type:         MatchType1v1,
		StakePerHole: 10,
		TeamA:        Team{Players: []uuid.UUID{a}},
		TeamB:        Team{Players: []uuid.UUID{b}},
	}, testHoles(18), handicaps, card)

	wantLeads := []int{1, 2, 3, 3, 2, 1, 0}
	for i, want := range wantLeads {
		assert.Equal(t, want, state.Holes[i].LeadAfter, "hole %d", i+1)
	}

	assert.Equal(t, 0, state.Main.Lead)
	assert.Equal(t, 7, state.Main.HolesPlayed)
	assert.Equal(t, 11, state.Main.HolesRemaining)
	assert.False(t, state.Main.Closed)
	assert.Equal(t, "A/S", state.Main.Status)
}

func TestComputeMatchClosesEarly(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	// A wins the first ten holes: 10 up with 8 to play closes long before that,
	// at the moment |lead| first exceeds the holes remaining.
	card := cardFromRows(map[uuid.UUID][]int{
		a: {3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
		b: {5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
	})

	state := ComputeMatch(MatchConfig{
		Type:  MatchType1v1,
		TeamA: Team{Players: []uuid.UUID{a}},
		TeamB: Team{Players: []uuid.UUID{b}},
	}, testHoles(18), handicaps, card)

	// After hole 10: lead 10 > 8 remaining. But closure happened on hole 10?
	// Walk it: after hole 9 the lead is 9 with 9 remaining (dormie, not
	// closed); hole 10 makes it 10&8.
	require.True(t, state.Main.Closed)
	assert.Equal(t, 10, state.Main.ClosedAtHole)
	assert.Equal(t, SideA, state.Main.Winner)
	assert.Equal(t, "10&8", state.Main.Status)
}

// Once closed, later scores in the window cannot reopen the match: holes after
// the closing hole are ignored.
func TestComputeMatchNeverUncloses(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	// A wins 1–10 (closing the match), then B "wins" 11–18 on the card.
	rowsA := make([]int, 18)
	rowsB := make([]int, 18)
	for i := 0; i < 18; i++ {
		if i < 10 {
			rowsA[i], rowsB[i] = 3, 5
		} else {
			rowsA[i], rowsB[i] = 5, 3
		}
	}
	card := cardFromRows(map[uuid.UUID][]int{a: rowsA, b: rowsB})

	state := ComputeMatch(MatchConfig{
		Type:  MatchType1v1,
		TeamA: Team{Players: []uuid.UUID{a}},
		TeamB: Team{Players: []uuid.UUID{b}},
	}, testHoles(18), handicaps, card)

	assert.True(t, state.Main.Closed)
	assert.Equal(t, 10, state.Main.ClosedAtHole)
	assert.Equal(t, SideA, state.Main.Winner)
	assert.Equal(t, "10&8", state.Main.Status)
}

func TestComputeMatchDormieAndLastHoleWin(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	// A one-hole lead with one to play is dormie.
	rowsA := make([]int, 17)
	rowsB := make([]int, 17)
	for i := 0; i < 17; i++ {
		rowsA[i], rowsB[i] = 4, 4
	}
	rowsA[16], rowsB[16] = 3, 4 // A wins hole 17
	card := cardFromRows(map[uuid.UUID][]int{a: rowsA, b: rowsB})

	cfg := MatchConfig{
		Type:  MatchType1v1,
		TeamA: Team{Players: []uuid.UUID{a}},
		TeamB: Team{Players: []uuid.UUID{b}},
	}
	state := ComputeMatch(cfg, testHoles(18), handicaps, card)
	assert.False(t, state.Main.Closed)
	assert.True(t, state.Main.Dormie)
	assert.Equal(t, "1 UP", state.Main.Status)
	assert.Equal(t, "DORMIE", DisplayStatus(state.Main))

	// Halving the 18th decides the match on the final hole: 1 UP, closed.
	card[a][18] = 4
	card[b][18] = 4
	state = ComputeMatch(cfg, testHoles(18), handicaps, card)
	assert.True(t, state.Main.Closed)
	assert.Equal(t, 0, state.Main.HolesRemaining)
	assert.Equal(t, SideA, state.Main.Winner)
	assert.Equal(t, "1 UP", state.Main.Status)
}

func TestComputeMatchTrailingStatus(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	card := cardFromRows(map[uuid.UUID][]int{
		a: {5, 5},
		b: {4, 4},
	})

	state := ComputeMatch(MatchConfig{
		Type:  MatchType1v1,
		TeamA: Team{Players: []uuid.UUID{a}},
		TeamB: Team{Players: []uuid.UUID{b}},
	}, testHoles(18), handicaps, card)

	assert.Equal(t, -2, state.Main.Lead)
	assert.Equal(t, "2 DN", state.Main.Status)
}

// In 2v2, the better teammate net represents the team; if only one teammate
// has scored the hole, that score stands alone rather than voiding the hole.
func TestComputeMatchBestBall(t *testing.T) {
	ids, handicaps := scratchPlayers(4)
	a1, a2, b1, b2 := ids[0], ids[1], ids[2], ids[3]

	card := cardFromRows(map[uuid.UUID][]int{
		a1: {6, 4},
		a2: {4, 0}, // no score on hole 2
		b1: {5, 5},
		b2: {5, 6},
	})

	state := ComputeMatch(MatchConfig{
		Type:  MatchType2v2,
		TeamA: Team{Players: []uuid.UUID{a1, a2}},
		TeamB: Team{Players: []uuid.UUID{b1, b2}},
	}, testHoles(18), handicaps, card)

	// Hole 1: best ball 4 vs 5 — team A. Hole 2: a1's lone 4 vs best ball 5 — team A.
	assert.True(t, state.Holes[0].Complete)
	assert.Equal(t, SideA, state.Holes[0].Winner)
	assert.True(t, state.Holes[1].Complete)
	assert.Equal(t, SideA, state.Holes[1].Winner)
	assert.Equal(t, 2, state.Main.Lead)
}

// A hole where one side has no score at all stays incomplete and contributes
// nothing, even when the other side has scored it.
func TestComputeMatchIncompleteHole(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	card := cardFromRows(map[uuid.UUID][]int{
		a: {4, 3},
		b: {5, 0},
	})

	state := ComputeMatch(MatchConfig{
		Type:  MatchType1v1,
		TeamA: Team{Players: []uuid.UUID{a}},
		TeamB: Team{Players: []uuid.UUID{b}},
	}, testHoles(18), handicaps, card)

	assert.False(t, state.Holes[1].Complete)
	assert.Equal(t, 1, state.Main.Lead)
	assert.Equal(t, 1, state.Main.HolesPlayed)
}

// A press scores only its own window, accumulating its own lead from zero with
// its own frozen stake. The parent match's lead never leaks in.
func TestComputeMatchPressIndependence(t *testing.T) {
	ids, handicaps := scratchPlayers(2)
	a, b := ids[0], ids[1]

	// A wins 1–9; B wins 10–13.
	rowsA := make([]int, 13)
	rowsB := make([]int, 13)
	for i := 0; i < 13; i++ {
		if i < 9 {
			rowsA[i], rowsB[i] = 4, 5
		} else {
			rowsA[i], rowsB[i] = 5, 4
		}
	}
	card := cardFromRows(map[uuid.UUID][]int{a: rowsA, b: rowsB})

	press := Press{StartingHole: 10, Stake: 5}
	state := ComputeMatch(MatchConfig{
		Type:         MatchType1v1,
		StakePerHole: 10,
		TeamA:        Team{Players: []uuid.UUID{a}},
		TeamB:        Team{Players: []uuid.UUID{b}},
		Presses:      []Press{press},
	}, testHoles(18), handicaps, card)

	require.Len(t, state.Presses, 1)
	ps := state.Presses[0].State
	assert.Equal(t, 10, ps.StartingHole)
	assert.Equal(t, 18, ps.EndingHole) // zero EndingHole defaults to the last hole
	assert.Equal(t, -4, ps.Lead)       // B leads the press 4 up
	assert.Equal(t, "4 DN", ps.Status)
	assert.Equal(t, 5.0, state.Presses[0].Press.Stake)

	// Main match is 5 up for A (9 wins minus 4 losses), unaffected by the press.
	assert.Equal(t, 5, state.Main.Lead)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$5", FormatMoney(5))
	assert.Equal(t, "$12.50", FormatMoney(12.5))
	assert.Equal(t, "-$7.50", FormatMoney(-7.5))
	assert.Equal(t, "$0", FormatMoney(0))
}
