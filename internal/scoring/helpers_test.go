package scoring

import "github.com/google/uuid"

// Test fixtures shared across the scoring package tests. testHoles builds a
// standard 18-hole course where stroke indexes run 1..18 in hole order and
// every hole is a par 4 — dead simple on purpose, so expected nets are easy to
// read off the gross scores in each table.

func testHoles(count int) []Hole {
	holes := make([]Hole, 0, count)
	for i := 1; i <= count; i++ {
		holes = append(holes, Hole{Number: i, Par: 4, StrokeIndex: i})
	}
	return holes
}

func hcp(n int) *int { return &n }

// scratchPlayers builds n players with zero playing handicaps, so net == gross.
func scratchPlayers(n int) ([]uuid.UUID, []PlayerHandicap) {
	ids := make([]uuid.UUID, 0, n)
	handicaps := make([]PlayerHandicap, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.New()
		ids = append(ids, id)
		handicaps = append(handicaps, PlayerHandicap{PlayerID: id, PlayingHandicap: hcp(0)})
	}
	return ids, handicaps
}

// cardFromRows builds a scorecard from per-player score rows; row[i] is the
// gross score on hole i+1, and 0 means the hole has not been played.
func cardFromRows(rows map[uuid.UUID][]int) Scorecard {
	card := make(Scorecard, len(rows))
	for id, scores := range rows {
		card[id] = make(map[int]int, len(scores))
		for i, s := range scores {
			if s > 0 {
				card[id][i+1] = s
			}
		}
	}
	return card
}
