package scoring

import "github.com/google/uuid"

// TeamFormat names a fixed-teams point format played 2v2 across a whole round.
type TeamFormat string

const (
	FormatPointsHiLo TeamFormat = "points_hi_lo"
	FormatStableford TeamFormat = "stableford"
)

// TeamFormatConfig configures a team point format: exactly two fixed
// two-player teams for the round.
type TeamFormatConfig struct {
	Format TeamFormat
	Team1  []uuid.UUID
	Team2  []uuid.UUID
}

// FormatHole is the computed outcome of one hole of a team point format.
// Points are float64 because Hi/Lo splits a tied point 0.5/0.5.
type FormatHole struct {
	HoleNumber  int
	Complete    bool
	Team1Points float64
	Team2Points float64
}

// FormatState is the complete computed snapshot of a team point format round.
type FormatState struct {
	Format      TeamFormat
	Holes       []FormatHole
	Team1Total  float64
	Team2Total  float64
	CurrentHole int // first incomplete hole; 0 once the round is done
}

// StablefordPoints converts a net score relative to par into Stableford points
// on the trip's scale: an eagle is worth 5, birdie 3, par 1, and anything worse
// than bogey costs a point.
func StablefordPoints(net, par int) int {
	switch diff := net - par; {
	case diff <= -3:
		return 8
	case diff == -2:
		return 5
	case diff == -1:
		return 3
	case diff == 0:
		return 1
	case diff == 1:
		return 0
	default:
		return -1
	}
}

// ComputeTeamFormat derives the full team-format state from gross scores. It
// returns nil unless both teams have exactly two players — a partially assigned
// round has no meaningful state. A hole only contributes once all four players
// have net scores.
func ComputeTeamFormat(cfg TeamFormatConfig, holes []Hole, handicaps []PlayerHandicap, card Scorecard) *FormatState {
	if len(cfg.Team1) != 2 || len(cfg.Team2) != 2 {
		return nil
	}

	sorted := holesSorted(holes)
	hcps := handicapIndexByPlayer(handicaps)

	state := &FormatState{Format: cfg.Format}
	for _, hole := range sorted {
		h := FormatHole{HoleNumber: hole.Number}

		nets := make(map[uuid.UUID]int, 4)
		complete := true
		for _, p := range append(append([]uuid.UUID{}, cfg.Team1...), cfg.Team2...) {
			net, ok := netScore(card, hcps, p, hole)
			if !ok {
				complete = false
				break
			}
			nets[p] = net
		}

		if complete {
			h.Complete = true
			switch cfg.Format {
			case FormatStableford:
				h.Team1Points = float64(StablefordPoints(nets[cfg.Team1[0]], hole.Par) + StablefordPoints(nets[cfg.Team1[1]], hole.Par))
				h.Team2Points = float64(StablefordPoints(nets[cfg.Team2[0]], hole.Par) + StablefordPoints(nets[cfg.Team2[1]], hole.Par))
			case FormatPointsHiLo:
				h.Team1Points, h.Team2Points = hiLoPoints(
					nets[cfg.Team1[0]], nets[cfg.Team1[1]],
					nets[cfg.Team2[0]], nets[cfg.Team2[1]],
				)
			}
			state.Team1Total += h.Team1Points
			state.Team2Total += h.Team2Points
		} else if state.CurrentHole == 0 {
			state.CurrentHole = hole.Number
		}

		state.Holes = append(state.Holes, h)
	}

	return state
}

// hiLoPoints scores one hole of Points Hi/Lo. Each team's two nets are sorted
// into (low, high); low-vs-low and high-vs-high are each worth one point, with
// ties splitting the point 0.5/0.5. The lower net wins both comparisons — fewer
// net strokes beats more even in the "high" slot. No carryover between holes.
func hiLoPoints(a1, a2, b1, b2 int) (team1, team2 float64) {
	lowA, highA := minMax(a1, a2)
	lowB, highB := minMax(b1, b2)

	compare := func(a, b int) (float64, float64) {
		switch {
		case a < b:
			return 1, 0
		case b < a:
			return 0, 1
		default:
			return 0.5, 0.5
		}
	}

	l1, l2 := compare(lowA, lowB)
	h1, h2 := compare(highA, highB)
	return l1 + h1, l2 + h2
}

func minMax(a, b int) (int, int) {
	if a <= b {
		return a, b
	}
	return b, a
}
