package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
)

// BetState is the computed snapshot of one bet, serialized to clients and
// written to the cache. Exactly one of the format fields is non-nil, matching
// the bet's Format tag.
type BetState struct {
	BetID      uuid.UUID            `json:"bet_id"`
	RoundID    uuid.UUID            `json:"round_id"`
	Format     models.BetFormat     `json:"format"`
	Match      *scoring.MatchState  `json:"match,omitempty"`
	Nassau     *scoring.NassauState `json:"nassau,omitempty"`
	Skins      *scoring.SkinsState  `json:"skins,omitempty"`
	Wolf       *scoring.WolfState   `json:"wolf,omitempty"`
	TeamFormat *scoring.FormatState `json:"team_format,omitempty"`
}

// ComputeBetState runs the scoring engine for one bet against a loaded round
// context. It is a pure read: nothing is persisted here.
func ComputeBetState(bet models.Bet, rc *RoundContext) (*BetState, error) {
	state := &BetState{BetID: bet.ID, RoundID: bet.RoundID, Format: bet.Format}

	switch bet.Format {
	case models.BetFormatMatchPlay:
		if bet.Match == nil {
			return nil, fmt.Errorf("bet %s has no match configuration", bet.ID)
		}
		ms := scoring.ComputeMatch(MatchConfig(*bet.Match), rc.Holes, rc.Handicaps, rc.Card)
		state.Match = &ms

	case models.BetFormatNassau:
		if bet.Nassau == nil {
			return nil, fmt.Errorf("bet %s has no nassau configuration", bet.ID)
		}
		ns := scoring.ComputeNassau(NassauConfig(*bet.Nassau), rc.Holes, rc.Handicaps, rc.Card)
		state.Nassau = &ns

	case models.BetFormatSkins:
		if bet.Skins == nil {
			return nil, fmt.Errorf("bet %s has no skins configuration", bet.ID)
		}
		ss := scoring.ComputeSkins(SkinsConfig(*bet.Skins), rc.Holes, rc.Handicaps, rc.Card)
		state.Skins = &ss

	case models.BetFormatWolf:
		if bet.Wolf == nil {
			return nil, fmt.Errorf("bet %s has no wolf configuration", bet.ID)
		}
		state.Wolf = scoring.ComputeWolf(WolfConfig(*bet.Wolf), rc.Holes, rc.Handicaps, rc.Card)

	case models.BetFormatPointsHiLo, models.BetFormatStableford:
		if bet.TeamFormat == nil {
			return nil, fmt.Errorf("bet %s has no team format configuration", bet.ID)
		}
		state.TeamFormat = scoring.ComputeTeamFormat(TeamFormatConfig(bet.Format, *bet.TeamFormat), rc.Holes, rc.Handicaps, rc.Card)

	default:
		return nil, fmt.Errorf("unknown bet format %q", bet.Format)
	}

	return state, nil
}

// SyncRoundBets recomputes every match-play bet on a round and writes the
// cached status columns back to the match and press rows in one transaction.
//
// The write is idempotent: the cached values are a pure function of the score
// history, so running the sync twice — or after a score edit, or concurrently
// with another sync — always converges on the same stored state. Other bet
// formats carry no cached columns and are skipped.
func SyncRoundBets(db *gorm.DB, roundID uuid.UUID) error {
	rc, err := LoadRoundContext(db, roundID)
	if err != nil {
		return err
	}

	var bets []models.Bet
	if err := db.
		Preload("Match.Presses").
		Where("round_id = ? AND format = ?", roundID, models.BetFormatMatchPlay).
		Find(&bets).Error; err != nil {
		return err
	}
	if len(bets) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, bet := range bets {
			if bet.Match == nil {
				continue
			}
			state := scoring.ComputeMatch(MatchConfig(*bet.Match), rc.Holes, rc.Handicaps, rc.Card)

			err := tx.Model(&models.MatchBet{}).
				Where("id = ?", bet.Match.ID).
				Updates(map[string]interface{}{
					"status":       scoring.DisplayStatus(state.Main),
					"lead":         state.Main.Lead,
					"through_hole": state.Main.HolesPlayed,
					"closed":       state.Main.Closed,
				}).Error
			if err != nil {
				return err
			}

			// Each computed press window carries its row ID through the
			// engine, so the write-back needs no positional matching.
			for _, ps := range state.Presses {
				err := tx.Model(&models.Press{}).
					Where("id = ?", ps.Press.ID).
					Updates(map[string]interface{}{
						"status": scoring.DisplayStatus(ps.State),
						"lead":   ps.State.Lead,
						"closed": ps.State.Closed,
					}).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
