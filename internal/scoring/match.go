package scoring

import (
	"strconv"

	"github.com/google/uuid"
)

// MatchType distinguishes singles from four-ball team matches.
type MatchType string

const (
	MatchType1v1 MatchType = "1v1"
	MatchType2v2 MatchType = "2v2" // two-player teams, best ball per hole
)

// Side identifies which side of a match an outcome favors.
type Side string

const (
	SideA    Side = "team_a"
	SideB    Side = "team_b"
	SideNone Side = "none" // halved hole, or a match still level
)

// Team is one side of a match: one player for 1v1, two for 2v2.
type Team struct {
	Players []uuid.UUID
}

// Press is a sub-bet started mid-match. It scores only the holes in
// [StartingHole, EndingHole], accumulating its own lead from zero — it does not
// inherit the parent match's running lead. The stake is frozen when the press is
// created and is unaffected by later stake changes on the parent match.
type Press struct {
	ID           uuid.UUID
	StartingHole int
	EndingHole   int // 0 means "through the last hole"
	Stake        float64
}

// MatchConfig is the full configuration of a match-play bet.
type MatchConfig struct {
	Type         MatchType
	StakePerHole float64
	TeamA        Team
	TeamB        Team
	Presses      []Press // ordered, append-only
}

// HoleResult is the outcome of a single hole from team A's perspective.
// LeadAfter is the cumulative lead through this hole; it only advances on
// complete holes, so an incomplete hole repeats the previous value.
type HoleResult struct {
	HoleNumber int
	TeamANet   int
	TeamBNet   int
	Complete   bool
	Winner     Side // SideNone when halved or incomplete
	LeadAfter  int
}

// SegmentState is the running state of one scored window of holes: the main
// match, a press, or a Nassau sub-match. Lead is from team A's perspective
// (+1 per team-A hole win, -1 per team-B win).
//
// Closed means the segment is mathematically decided: |lead| > holes remaining.
// Dormie means the trailing side must win every remaining hole just to tie:
// |lead| == holes remaining > 0. A segment never un-closes; once the closing
// hole is reached, later holes in the window are ignored.
type SegmentState struct {
	StartingHole   int
	EndingHole     int
	Lead           int
	HolesPlayed    int
	HolesRemaining int
	Closed         bool
	Dormie         bool
	ClosedAtHole   int  // hole number where the segment closed; 0 if open
	Winner         Side // SideNone until closed, or on an all-square finish
	Status         string
}

// PressState pairs a press with its computed window state.
type PressState struct {
	Press Press
	State SegmentState
}

// MatchState is the complete computed snapshot of a match bet.
type MatchState struct {
	Holes   []HoleResult // one entry per course hole, in play order
	Main    SegmentState
	Presses []PressState
}

// ComputeMatch derives the full state of a match (and all of its presses) from
// gross scores. The per-hole winner sequence is computed once and every segment
// — main match and presses alike — is evaluated over its own window of that
// sequence with the identical closed/dormie/status algorithm.
func ComputeMatch(cfg MatchConfig, holes []Hole, handicaps []PlayerHandicap, card Scorecard) MatchState {
	results := teamHoleResults(cfg.TeamA.Players, cfg.TeamB.Players, holes, handicaps, card)

	lastHole := 0
	firstHole := 0
	if len(results) > 0 {
		firstHole = results[0].HoleNumber
		lastHole = results[len(results)-1].HoleNumber
	}

	state := MatchState{
		Holes: results,
		Main:  evalSegment(results, firstHole, lastHole),
	}
	for _, press := range cfg.Presses {
		end := press.EndingHole
		if end <= 0 {
			end = lastHole
		}
		state.Presses = append(state.Presses, PressState{
			Press: press,
			State: evalSegment(results, press.StartingHole, end),
		})
	}
	return state
}

// teamHoleResults computes the hole-by-hole winner sequence between two teams,
// best ball per side, in play order. This sequence is the shared input for the
// main match, every press, and all three Nassau sub-matches — it is computed
// once and each segment scores its own window of it.
func teamHoleResults(teamA, teamB []uuid.UUID, holes []Hole, handicaps []PlayerHandicap, card Scorecard) []HoleResult {
	sorted := holesSorted(holes)
	hcps := handicapIndexByPlayer(handicaps)

	results := make([]HoleResult, 0, len(sorted))
	lead := 0
	for _, hole := range sorted {
		r := HoleResult{HoleNumber: hole.Number, Winner: SideNone}
		aNet, aOK := bestBallNet(card, hcps, teamA, hole)
		bNet, bOK := bestBallNet(card, hcps, teamB, hole)
		// A hole only counts once both teams have a resolvable net score.
		// Partial holes never leak a partial result into the lead.
		if aOK && bOK {
			r.Complete = true
			r.TeamANet = aNet
			r.TeamBNet = bNet
			switch {
			case aNet < bNet:
				r.Winner = SideA
				lead++
			case bNet < aNet:
				r.Winner = SideB
				lead--
			}
		}
		r.LeadAfter = lead
		results = append(results, r)
	}
	return results
}

// evalSegment scores the hole-winner sequence over [startHole, endHole],
// accumulating an independent lead from zero. It stops at the first hole where
// the segment becomes mathematically closed.
func evalSegment(results []HoleResult, startHole, endHole int) SegmentState {
	seg := SegmentState{
		StartingHole: startHole,
		EndingHole:   endHole,
		Winner:       SideNone,
	}

	total := 0
	for _, r := range results {
		if r.HoleNumber < startHole || r.HoleNumber > endHole {
			continue
		}
		total++
	}
	seg.HolesRemaining = total

	for _, r := range results {
		if r.HoleNumber < startHole || r.HoleNumber > endHole {
			continue
		}
		if !r.Complete {
			continue
		}
		switch r.Winner {
		case SideA:
			seg.Lead++
		case SideB:
			seg.Lead--
		}
		seg.HolesPlayed++
		seg.HolesRemaining = total - seg.HolesPlayed
		if abs(seg.Lead) > seg.HolesRemaining {
			seg.Closed = true
			seg.ClosedAtHole = r.HoleNumber
			if seg.Lead > 0 {
				seg.Winner = SideA
			} else {
				seg.Winner = SideB
			}
			break
		}
	}

	seg.Dormie = !seg.Closed && seg.HolesRemaining > 0 && abs(seg.Lead) == seg.HolesRemaining
	seg.Status = segmentStatus(seg)
	return seg
}

// segmentStatus renders the short match-play status label from team A's
// perspective:
//
//	"A/S"  — all square (level, or a halved finish)
//	"2 UP" / "2 DN" — in progress, team A up or down two holes
//	"3&2"  — closed with holes to spare (3 up, 2 to play)
//	"1 UP" — decided on the final hole of the window
func segmentStatus(seg SegmentState) string {
	n := abs(seg.Lead)
	if seg.Closed {
		if seg.HolesRemaining > 0 {
			return strconv.Itoa(n) + "&" + strconv.Itoa(seg.HolesRemaining)
		}
		return strconv.Itoa(n) + " UP"
	}
	if seg.Lead == 0 {
		return "A/S"
	}
	if seg.Lead > 0 {
		return strconv.Itoa(n) + " UP"
	}
	return strconv.Itoa(n) + " DN"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
