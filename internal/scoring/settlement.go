package scoring

import (
	"sort"
	"strconv"

	"github.com/google/uuid"
)

// BetEvent is one settleable outcome: a finished match, press, or Nassau
// sub-match. Winners each collect the stake; losers each pay it. A halved event
// has no winners or losers and moves no money.
type BetEvent struct {
	Description string // e.g. "Main", "Press 1", "Nassau Front 9"
	Detail      string // match-play result label, e.g. "2&1"; empty when not applicable
	Stake       float64
	Winners     []uuid.UUID
	Losers      []uuid.UUID
	Halved      bool
}

// PlayerTotal is a pre-computed per-player amount from a format that settles
// player-by-player rather than side-by-side (wolf, skins).
type PlayerTotal struct {
	PlayerID    uuid.UUID
	Amount      float64
	Description string
}

// SettlementLine is one human-readable entry in a player's settlement.
type SettlementLine struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// PlayerSettlement is a player's accumulated money total across a trip, with a
// line item per event that moved money.
type PlayerSettlement struct {
	PlayerID uuid.UUID        `json:"player_id"`
	Total    float64          `json:"total"`
	Lines    []SettlementLine `json:"lines"`
}

// Settle folds finished bet events and per-player totals into one settlement
// per player, sorted by total descending. It consumes computed snapshots only,
// never raw scores.
func Settle(events []BetEvent, totals []PlayerTotal) []PlayerSettlement {
	byPlayer := make(map[uuid.UUID]*PlayerSettlement)
	var order []uuid.UUID

	get := func(id uuid.UUID) *PlayerSettlement {
		s, ok := byPlayer[id]
		if !ok {
			s = &PlayerSettlement{PlayerID: id}
			byPlayer[id] = s
			order = append(order, id)
		}
		return s
	}

	for _, ev := range events {
		if ev.Halved {
			continue
		}
		won := ev.Description + ": Won"
		lost := ev.Description + ": Lost"
		if ev.Detail != "" {
			won += " " + ev.Detail
			lost += " " + ev.Detail
		}
		for _, w := range ev.Winners {
			s := get(w)
			s.Total += ev.Stake
			s.Lines = append(s.Lines, SettlementLine{Description: won, Amount: ev.Stake})
		}
		for _, l := range ev.Losers {
			s := get(l)
			s.Total -= ev.Stake
			s.Lines = append(s.Lines, SettlementLine{Description: lost, Amount: -ev.Stake})
		}
	}

	for _, pt := range totals {
		if pt.Amount == 0 {
			continue
		}
		s := get(pt.PlayerID)
		s.Total += pt.Amount
		s.Lines = append(s.Lines, SettlementLine{Description: pt.Description, Amount: pt.Amount})
	}

	out := make([]PlayerSettlement, 0, len(order))
	for _, id := range order {
		out = append(out, *byPlayer[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out
}

// MatchEvents expands a computed match into settleable events: one for the
// main match and one per press, but only for segments that are finished —
// mathematically closed, or played out level. In-progress segments are skipped.
func MatchEvents(label string, cfg MatchConfig, state MatchState) []BetEvent {
	var events []BetEvent
	if ev, ok := segmentEvent(label, cfg.StakePerHole, cfg.TeamA.Players, cfg.TeamB.Players, state.Main); ok {
		events = append(events, ev)
	}
	for i, ps := range state.Presses {
		name := label + " Press " + strconv.Itoa(i+1)
		if ev, ok := segmentEvent(name, ps.Press.Stake, cfg.TeamA.Players, cfg.TeamB.Players, ps.State); ok {
			events = append(events, ev)
		}
	}
	return events
}

// NassauEvents expands a computed Nassau into its three segment events, again
// only for finished segments. Recorded auto-presses are informational and are
// deliberately not expanded into events here.
func NassauEvents(label string, cfg NassauConfig, state NassauState) []BetEvent {
	segments := []struct {
		name string
		seg  SegmentState
	}{
		{label + " Front 9", state.Front},
		{label + " Back 9", state.Back},
		{label + " Overall", state.Overall},
	}

	var events []BetEvent
	for _, s := range segments {
		if ev, ok := segmentEvent(s.name, cfg.StakePerMan, cfg.TeamA, cfg.TeamB, s.seg); ok {
			events = append(events, ev)
		}
	}
	return events
}

// WolfTotals converts a computed wolf state into per-player settlement totals.
func WolfTotals(label string, state *WolfState) []PlayerTotal {
	if state == nil {
		return nil
	}
	totals := make([]PlayerTotal, 0, len(state.Totals))
	for id, amount := range state.Totals {
		totals = append(totals, PlayerTotal{PlayerID: id, Amount: amount, Description: label})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].PlayerID.String() < totals[j].PlayerID.String() })
	return totals
}

// SkinsTotals converts a computed skins state into per-player settlement
// totals (winnings minus buy-in). A skins game only settles once every hole
// has been played out — the net results carry the full buy-in from hole one,
// so folding them in mid-round would show every player deep in the red after
// a single hole. An unfinished game contributes nothing, the same rule
// segmentEvent applies to match and Nassau segments.
func SkinsTotals(label string, cfg SkinsConfig, state SkinsState) []PlayerTotal {
	if len(state.Holes) == 0 {
		return nil
	}
	for _, h := range state.Holes {
		if !h.Complete {
			return nil
		}
	}

	totals := make([]PlayerTotal, 0, len(cfg.Players))
	for _, p := range cfg.Players {
		totals = append(totals, PlayerTotal{
			PlayerID:    p,
			Amount:      state.NetResultsByPlayer[p],
			Description: label,
		})
	}
	return totals
}

// segmentEvent builds a settleable event for a finished segment. A segment is
// finished when it is closed or when its whole window has been played. The
// second return is false for in-progress segments.
func segmentEvent(name string, stake float64, teamA, teamB []uuid.UUID, seg SegmentState) (BetEvent, bool) {
	finished := seg.Closed || seg.HolesRemaining == 0
	if !finished || seg.HolesPlayed == 0 {
		return BetEvent{}, false
	}

	ev := BetEvent{Description: name, Stake: stake}
	switch seg.Winner {
	case SideA:
		ev.Winners = teamA
		ev.Losers = teamB
		ev.Detail = seg.Status
	case SideB:
		ev.Winners = teamB
		ev.Losers = teamA
		ev.Detail = seg.Status
	default:
		ev.Halved = true
	}
	return ev, true
}
