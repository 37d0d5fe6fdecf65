// Package scoring implements the betting and scoring computation engine for the
// Golf Trip API. Every supported wagering format — match play with presses, Nassau,
// skins, wolf, and the team point formats — is derived here from the same three raw
// inputs: hole-by-hole gross scores, the course's per-hole par/stroke-index table,
// and each player's playing handicap.
//
// Design rule: every function in this package is pure. Nothing here touches the
// database, holds state between calls, or mutates its inputs. A computed state
// (MatchState, NassauState, SkinsState, WolfState, FormatState) is a full snapshot
// rebuilt from the complete score history on every call, so it is always safe to
// discard and recompute. Callers that want to persist a snapshot do so through the
// services package, which treats the write as an idempotent materialization.
//
// Because the functions share no memory, they are safe to call concurrently
// without any locking.
package scoring

import "github.com/google/uuid"

// Hole describes a single hole on a specific set of tees.
// StrokeIndex is the handicap allocation rank: 1 = hardest hole, which receives
// handicap strokes first; 18 = easiest.
type Hole struct {
	Number      int // 1–18
	Par         int
	StrokeIndex int // 1–18
}

// PlayerHandicap carries the playing handicap a player uses for one round.
// PlayingHandicap is a pointer because a player may not have one set yet;
// a negative value means a "plus" player who gives strokes back to the course.
type PlayerHandicap struct {
	PlayerID        uuid.UUID
	PlayingHandicap *int
}

// Scorecard is the sparse gross-score history for a round:
// player ID → hole number → gross strokes. A missing hole entry means the hole
// has not been played yet. Holes are never partially scored — a hole either has
// a stroke count or it doesn't.
type Scorecard map[uuid.UUID]map[int]int

// Gross returns the gross score a player recorded on a hole, if any.
func (c Scorecard) Gross(playerID uuid.UUID, hole int) (int, bool) {
	strokes, ok := c[playerID][hole]
	return strokes, ok
}

// handicapIndexByPlayer builds a lookup from a slice of PlayerHandicap.
func handicapIndexByPlayer(handicaps []PlayerHandicap) map[uuid.UUID]*int {
	m := make(map[uuid.UUID]*int, len(handicaps))
	for _, h := range handicaps {
		m[h.PlayerID] = h.PlayingHandicap
	}
	return m
}

// netScore resolves a player's net score on a hole: gross minus the handicap
// strokes received on that hole. It returns ok=false when either the gross score
// or the playing handicap is missing — an unresolved net never contributes to any
// running total (see the completeness invariant in each format's compute function).
func netScore(card Scorecard, handicaps map[uuid.UUID]*int, playerID uuid.UUID, hole Hole) (int, bool) {
	gross, ok := card.Gross(playerID, hole.Number)
	if !ok {
		return 0, false
	}
	hcp, ok := handicaps[playerID]
	if !ok || hcp == nil {
		return 0, false
	}
	return gross - StrokesForHole(*hcp, hole.StrokeIndex), true
}

// bestBallNet resolves a team's net score on a hole as the better (lower) of the
// teammates' nets. Teams have one or two players. If only one teammate has a
// resolvable net, that one represents the team; the hole is unresolved for the
// team only when no teammate has a net score.
func bestBallNet(card Scorecard, handicaps map[uuid.UUID]*int, players []uuid.UUID, hole Hole) (int, bool) {
	best := 0
	found := false
	for _, p := range players {
		net, ok := netScore(card, handicaps, p, hole)
		if !ok {
			continue
		}
		if !found || net < best {
			best = net
			found = true
		}
	}
	return best, found
}

// holesSorted returns the holes ordered by hole number ascending. The engine
// always walks holes in play order regardless of how the caller assembled the slice.
func holesSorted(holes []Hole) []Hole {
	sorted := make([]Hole, len(holes))
	copy(sorted, holes)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Number < sorted[j-1].Number; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}
