package scoring

import "github.com/google/uuid"

// NassauSegment names one of the three concurrent sub-matches in a Nassau.
type NassauSegment string

const (
	NassauFront   NassauSegment = "front"   // holes 1–9
	NassauBack    NassauSegment = "back"    // holes 10–18
	NassauOverall NassauSegment = "overall" // all 18
)

// The fixed hole windows of a standard Nassau.
const (
	nassauFrontStart = 1
	nassauFrontEnd   = 9
	nassauBackStart  = 10
	nassauBackEnd    = 18
)

// NassauConfig configures a Nassau bet between two one-or-two-player teams.
//
// HighBallTiebreak is accepted so stored bet configurations round-trip, but it
// does not currently alter the hole comparison; ties always halve the hole.
type NassauConfig struct {
	StakePerMan        float64
	AutoPress          bool
	AutoPressThreshold int
	HighBallTiebreak   bool
	TeamA              []uuid.UUID
	TeamB              []uuid.UUID
}

// AutoPress is an informational record of an automatic press trigger: which
// segment fired, the hole the press starts on, and the stake it would carry.
// Auto-presses are not separately scored sub-matches and do not enter
// settlement totals.
type AutoPress struct {
	Segment      NassauSegment
	StartingHole int
	Stake        float64
}

// NassauState is the complete computed snapshot of a Nassau bet. The three
// sub-matches share one hole-winner sequence but track their own leads,
// closed/dormie flags, and status strings over their own windows.
//
// TeamAPerMan is team A's per-player settlement across the three segments;
// team B's is always its negation.
type NassauState struct {
	Holes       []HoleResult
	Front       SegmentState
	Back        SegmentState
	Overall     SegmentState
	AutoPresses []AutoPress
	TeamAPerMan float64
}

// ComputeNassau derives the full Nassau state from gross scores.
func ComputeNassau(cfg NassauConfig, holes []Hole, handicaps []PlayerHandicap, card Scorecard) NassauState {
	results := teamHoleResults(cfg.TeamA, cfg.TeamB, holes, handicaps, card)

	lastHole := nassauBackEnd
	if len(results) > 0 {
		lastHole = results[len(results)-1].HoleNumber
	}

	state := NassauState{
		Holes:   results,
		Front:   evalSegment(results, nassauFrontStart, nassauFrontEnd),
		Back:    evalSegment(results, nassauBackStart, nassauBackEnd),
		Overall: evalSegment(results, nassauFrontStart, lastHole),
	}

	if cfg.AutoPress && cfg.AutoPressThreshold > 0 {
		state.AutoPresses = detectAutoPresses(results, cfg, lastHole)
	}

	// Flat payout: each segment independently resolves to +1 (team A), -1
	// (team B), or 0 (halved or unfinished) times the per-man stake.
	perMan := 0.0
	for _, seg := range []SegmentState{state.Front, state.Back, state.Overall} {
		perMan += float64(segmentResult(seg)) * cfg.StakePerMan
	}
	state.TeamAPerMan = perMan

	return state
}

// segmentResult resolves a finished segment to +1/-1/0 from team A's
// perspective. An unfinished segment resolves to 0 — settlement callers must
// check completion before treating the total as owed money.
func segmentResult(seg SegmentState) int {
	switch seg.Winner {
	case SideA:
		return 1
	case SideB:
		return -1
	}
	return 0
}

// detectAutoPresses scans each segment's running lead in hole order and records
// one auto-press the first time |lead| reaches the configured threshold, starting
// at the next hole. A segment fires at most once per round.
func detectAutoPresses(results []HoleResult, cfg NassauConfig, lastHole int) []AutoPress {
	windows := []struct {
		segment NassauSegment
		start   int
		end     int
	}{
		{NassauFront, nassauFrontStart, nassauFrontEnd},
		{NassauBack, nassauBackStart, nassauBackEnd},
		{NassauOverall, nassauFrontStart, lastHole},
	}

	var presses []AutoPress
	for _, w := range windows {
		lead := 0
		for _, r := range results {
			if r.HoleNumber < w.start || r.HoleNumber > w.end {
				continue
			}
			if !r.Complete {
				continue
			}
			switch r.Winner {
			case SideA:
				lead++
			case SideB:
				lead--
			}
			if abs(lead) >= cfg.AutoPressThreshold {
				presses = append(presses, AutoPress{
					Segment:      w.segment,
					StartingHole: r.HoleNumber + 1,
					Stake:        cfg.StakePerMan,
				})
				break
			}
		}
	}
	return presses
}
