package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCourseHandicap(t *testing.T) {
	tests := []struct {
		name   string
		index  float64
		slope  int
		rating float64
		par    int
		want   int
	}{
		{"scratch on standard slope", 0, 113, 72.0, 72, 0},
		{"mid handicap, hard course", 14.2, 135, 73.5, 72, 18}, // 14.2*135/113 + 1.5 = 18.46 → 18
		{"rating below par reduces", 10.0, 113, 69.5, 72, 8},   // 10 - 2.5 = 7.5 → 8 (round half up)
		{"plus player stays plus", -2.0, 113, 70.0, 72, -4},
		{"high slope amplifies", 20.0, 155, 72.0, 72, 27}, // 20*155/113 = 27.43 → 27
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CourseHandicap(tt.index, tt.slope, tt.rating, tt.par))
		})
	}
}

// Summing the per-hole allocation over all 18 stroke indexes must always equal
// the course handicap itself, including above 18 where every hole gets a base
// stroke plus extras on the hardest holes.
func TestStrokesForHoleAllocationTotal(t *testing.T) {
	for handicap := 0; handicap <= 36; handicap++ {
		total := 0
		for si := 1; si <= 18; si++ {
			total += StrokesForHole(handicap, si)
		}
		assert.Equal(t, handicap, total, "course handicap %d", handicap)
	}
}

func TestStrokesForHoleExtrasGoToHardestHoles(t *testing.T) {
	// 20 handicap: one stroke everywhere, a second on stroke indexes 1 and 2.
	assert.Equal(t, 2, StrokesForHole(20, 1))
	assert.Equal(t, 2, StrokesForHole(20, 2))
	assert.Equal(t, 1, StrokesForHole(20, 3))
	assert.Equal(t, 1, StrokesForHole(20, 18))

	// 5 handicap: a stroke on only the five hardest holes.
	assert.Equal(t, 1, StrokesForHole(5, 5))
	assert.Equal(t, 0, StrokesForHole(5, 6))
}

// A plus player gives strokes back on the easiest holes: a +2 returns -1 on
// exactly the two holes with stroke index 17 and 18.
func TestStrokesForHolePlusPlayer(t *testing.T) {
	for si := 1; si <= 18; si++ {
		want := 0
		if si >= 17 {
			want = -1
		}
		assert.Equal(t, want, StrokesForHole(-2, si), "stroke index %d", si)
	}

	// A true scratch player neither receives nor gives back anywhere.
	for si := 1; si <= 18; si++ {
		assert.Equal(t, 0, StrokesForHole(0, si), "stroke index %d", si)
	}
}

func TestNetScoreResolution(t *testing.T) {
	ids, _ := scratchPlayers(1)
	player := ids[0]
	card := Scorecard{player: {1: 5}}

	// With a playing handicap of 18 the player strokes on every hole.
	lookup := handicapIndexByPlayer([]PlayerHandicap{{PlayerID: player, PlayingHandicap: hcp(18)}})
	net, ok := netScore(card, lookup, player, Hole{Number: 1, Par: 4, StrokeIndex: 1})
	assert.True(t, ok)
	assert.Equal(t, 4, net)

	// Missing gross score: unresolved.
	_, ok = netScore(card, lookup, player, Hole{Number: 2, Par: 4, StrokeIndex: 2})
	assert.False(t, ok)

	// Missing handicap: unresolved even with a gross score.
	noHcp := handicapIndexByPlayer([]PlayerHandicap{{PlayerID: player, PlayingHandicap: nil}})
	_, ok = netScore(card, noHcp, player, Hole{Number: 1, Par: 4, StrokeIndex: 1})
	assert.False(t, ok)
}
