package scoring

import "github.com/google/uuid"

// SkinsConfig configures a skins game across any number of players.
// When Carryover is enabled a tied hole's pot rolls into the next hole; when
// disabled a tied skin is simply lost.
type SkinsConfig struct {
	SkinValue float64
	Carryover bool
	Players   []uuid.UUID
}

// SkinHole is the computed outcome of one hole of a skins game.
// Pot is what the hole is playing for: (carry count + 1) × skin value. For an
// incomplete hole it shows what the hole is currently worth, but no state
// advances until every player in the field has a net score.
type SkinHole struct {
	HoleNumber       int
	Complete         bool
	Pot              float64
	CarryCountBefore int
	Won              bool
	WinnerID         uuid.UUID
	SkinsAwarded     int // carry count + 1 when won, 0 otherwise
	Nets             map[uuid.UUID]int
}

// SkinsState is the complete computed snapshot of a skins game.
type SkinsState struct {
	Holes              []SkinHole
	SkinsByPlayer      map[uuid.UUID]int
	WinningsByPlayer   map[uuid.UUID]float64
	TotalSkinsAwarded  int
	CurrentCarryCount  int
	CurrentPot         float64 // what the next complete hole plays for
	NetResultsByPlayer map[uuid.UUID]float64
}

// ComputeSkins derives the full skins state from gross scores. Holes are walked
// in play order; a hole only resolves when every player in the field has a net
// score. A strict unique low net wins the whole pot; a tie for low either
// carries the pot forward or kills it depending on configuration.
func ComputeSkins(cfg SkinsConfig, holes []Hole, handicaps []PlayerHandicap, card Scorecard) SkinsState {
	sorted := holesSorted(holes)
	hcps := handicapIndexByPlayer(handicaps)

	state := SkinsState{
		SkinsByPlayer:      make(map[uuid.UUID]int),
		WinningsByPlayer:   make(map[uuid.UUID]float64),
		NetResultsByPlayer: make(map[uuid.UUID]float64),
	}

	carry := 0
	for _, hole := range sorted {
		h := SkinHole{
			HoleNumber:       hole.Number,
			CarryCountBefore: carry,
			Pot:              float64(carry+1) * cfg.SkinValue,
			Nets:             make(map[uuid.UUID]int),
		}

		complete := len(cfg.Players) > 0
		for _, p := range cfg.Players {
			net, ok := netScore(card, hcps, p, hole)
			if !ok {
				complete = false
				continue
			}
			h.Nets[p] = net
		}

		if complete {
			h.Complete = true
			winner, unique := lowNetWinner(h.Nets, cfg.Players)
			if unique {
				h.Won = true
				h.WinnerID = winner
				h.SkinsAwarded = carry + 1
				state.SkinsByPlayer[winner] += h.SkinsAwarded
				state.WinningsByPlayer[winner] += h.Pot
				state.TotalSkinsAwarded += h.SkinsAwarded
				carry = 0
			} else if cfg.Carryover {
				// Pot compounds onto the next hole.
				carry++
			} else {
				// Tied skin is lost outright.
				carry = 0
			}
		}

		state.Holes = append(state.Holes, h)
	}

	state.CurrentCarryCount = carry
	state.CurrentPot = float64(carry+1) * cfg.SkinValue

	// Settlement: everyone buys in for a skin per hole; net result is winnings
	// minus buy-in.
	buyIn := cfg.SkinValue * float64(len(sorted))
	for _, p := range cfg.Players {
		state.NetResultsByPlayer[p] = state.WinningsByPlayer[p] - buyIn
	}

	return state
}

// lowNetWinner returns the player holding the strict minimum net on a hole, and
// whether that minimum is unique.
func lowNetWinner(nets map[uuid.UUID]int, players []uuid.UUID) (uuid.UUID, bool) {
	var winner uuid.UUID
	low := 0
	count := 0
	for _, p := range players {
		net := nets[p]
		switch {
		case count == 0 || net < low:
			low = net
			winner = p
			count = 1
		case net == low:
			count++
		}
	}
	return winner, count == 1
}
