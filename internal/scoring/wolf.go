package scoring

import "github.com/google/uuid"

// WolfDecision is the externally supplied team split for one hole: the wolf
// either picked a partner or went lone wolf. A hole with no decision is scored
// as undecided and contributes nothing.
type WolfDecision struct {
	HoleNumber int
	PartnerID  *uuid.UUID
	IsLoneWolf bool
}

// WolfConfig configures a wolf game. TeeOrder is the fixed base rotation of
// exactly four players; the wolf for a hole is derived from it by modulo
// arithmetic, never stored.
type WolfConfig struct {
	StakePerHole       float64
	LoneWolfMultiplier float64
	TeeOrder           []uuid.UUID
	Decisions          []WolfDecision
}

// WolfHoleState is the computed outcome of one wolf hole. Deltas holds the
// money movement per player for this hole alone; it always sums to zero.
type WolfHoleState struct {
	HoleNumber int
	WolfID     uuid.UUID
	Decided    bool
	IsLoneWolf bool
	PartnerID  *uuid.UUID
	Complete   bool // all four players have net scores
	Deltas     map[uuid.UUID]float64
}

// WolfState is the complete computed snapshot of a wolf game. Totals accumulates
// the per-player money across all decided, complete holes; CurrentHole is the
// first hole that is either incomplete or undecided (0 once the round is done).
type WolfState struct {
	Holes       []WolfHoleState
	Totals      map[uuid.UUID]float64
	CurrentHole int
}

// WolfForHole returns the rotating captain for a hole: the tee order repeats
// every four holes, so hole 1 is teeOrder[0], hole 5 is teeOrder[0] again.
func WolfForHole(teeOrder []uuid.UUID, holeNumber int) uuid.UUID {
	return teeOrder[(holeNumber-1)%len(teeOrder)]
}

// ComputeWolf derives the full wolf state from gross scores. It returns nil if
// the tee order does not hold exactly four players — a partially configured
// game has no meaningful state.
func ComputeWolf(cfg WolfConfig, holes []Hole, handicaps []PlayerHandicap, card Scorecard) *WolfState {
	if len(cfg.TeeOrder) != 4 {
		return nil
	}

	sorted := holesSorted(holes)
	hcps := handicapIndexByPlayer(handicaps)

	decisions := make(map[int]WolfDecision, len(cfg.Decisions))
	for _, d := range cfg.Decisions {
		decisions[d.HoleNumber] = d
	}

	state := &WolfState{Totals: make(map[uuid.UUID]float64, 4)}
	for _, p := range cfg.TeeOrder {
		state.Totals[p] = 0
	}

	for _, hole := range sorted {
		h := WolfHoleState{
			HoleNumber: hole.Number,
			WolfID:     WolfForHole(cfg.TeeOrder, hole.Number),
			Deltas:     make(map[uuid.UUID]float64, 4),
		}

		nets := make(map[uuid.UUID]int, 4)
		complete := true
		for _, p := range cfg.TeeOrder {
			net, ok := netScore(card, hcps, p, hole)
			if !ok {
				complete = false
				break
			}
			nets[p] = net
		}
		h.Complete = complete

		// A decision names a partner or goes lone. A partner pick naming the
		// wolf themselves is malformed and leaves the hole undecided, so no
		// input can move money outside a real 2v2 or 1v3 split.
		if d, ok := decisions[hole.Number]; ok &&
			(d.IsLoneWolf || (d.PartnerID != nil && *d.PartnerID != h.WolfID)) {
			h.Decided = true
			h.IsLoneWolf = d.IsLoneWolf
			h.PartnerID = d.PartnerID
		}

		if h.Decided && h.Complete {
			if h.IsLoneWolf {
				scoreLoneWolf(&h, cfg, nets)
			} else {
				scorePartneredWolf(&h, cfg, nets)
			}
			for p, delta := range h.Deltas {
				state.Totals[p] += delta
			}
		}

		if state.CurrentHole == 0 && (!h.Complete || !h.Decided) {
			state.CurrentHole = hole.Number
		}

		state.Holes = append(state.Holes, h)
	}

	return state
}

// scoreLoneWolf settles a lone-wolf hole: the wolf's net against the best net
// among the other three, at stake × multiplier per opponent. A win or loss
// transfers that amount between the wolf and each opponent individually, so the
// wolf's swing is three times the per-opponent amount. Ties move nothing.
func scoreLoneWolf(h *WolfHoleState, cfg WolfConfig, nets map[uuid.UUID]int) {
	wolfNet := nets[h.WolfID]
	bestOpp := 0
	first := true
	for _, p := range cfg.TeeOrder {
		if p == h.WolfID {
			continue
		}
		if first || nets[p] < bestOpp {
			bestOpp = nets[p]
			first = false
		}
	}

	amount := cfg.StakePerHole * cfg.LoneWolfMultiplier
	switch {
	case wolfNet < bestOpp:
		for _, p := range cfg.TeeOrder {
			if p == h.WolfID {
				h.Deltas[p] = amount * 3
			} else {
				h.Deltas[p] = -amount
			}
		}
	case bestOpp < wolfNet:
		for _, p := range cfg.TeeOrder {
			if p == h.WolfID {
				h.Deltas[p] = -amount * 3
			} else {
				h.Deltas[p] = amount
			}
		}
	}
}

// scorePartneredWolf settles a partnered hole: wolf+partner best ball against
// the other pair's best ball. A decided hole moves the stake between each
// member of the winning pair and each member of the losing pair (four pairwise
// transfers), so each player's delta is ±2× the stake. Ties move nothing.
func scorePartneredWolf(h *WolfHoleState, cfg WolfConfig, nets map[uuid.UUID]int) {
	if h.PartnerID == nil {
		return
	}
	partner := *h.PartnerID

	wolfSide := 0
	oppSide := 0
	wolfFirst, oppFirst := true, true
	for _, p := range cfg.TeeOrder {
		if p == h.WolfID || p == partner {
			if wolfFirst || nets[p] < wolfSide {
				wolfSide = nets[p]
				wolfFirst = false
			}
		} else {
			if oppFirst || nets[p] < oppSide {
				oppSide = nets[p]
				oppFirst = false
			}
		}
	}

	var winDelta float64
	switch {
	case wolfSide < oppSide:
		winDelta = cfg.StakePerHole * 2
	case oppSide < wolfSide:
		winDelta = -cfg.StakePerHole * 2
	default:
		return
	}

	for _, p := range cfg.TeeOrder {
		if p == h.WolfID || p == partner {
			h.Deltas[p] = winDelta
		} else {
			h.Deltas[p] = -winDelta
		}
	}
}
