package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
)

// ErrTripNotFound is returned when a trip ID doesn't exist.
var ErrTripNotFound = errors.New("trip not found")

// ComputeTripSettlement recomputes every bet on every round of a trip and
// folds the finished outcomes into one money total per player. Nothing is read
// from cached columns — the whole ledger is derived from gross scores on each
// call, so an edited score or handicap is reflected immediately.
func ComputeTripSettlement(db *gorm.DB, tripID uuid.UUID) ([]scoring.PlayerSettlement, error) {
	var trip models.Trip
	err := db.Preload("Rounds", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("round_number ASC")
	}).First(&trip, "id = ?", tripID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, err
	}

	var events []scoring.BetEvent
	var totals []scoring.PlayerTotal

	for _, round := range trip.Rounds {
		rc, err := LoadRoundContext(db, round.ID)
		if err != nil {
			return nil, err
		}

		bets, err := loadRoundBets(db, round.ID)
		if err != nil {
			return nil, err
		}

		for _, bet := range bets {
			label := betLabel(round.RoundNumber, bet.Format)
			state, err := ComputeBetState(bet, rc)
			if err != nil {
				return nil, err
			}

			switch bet.Format {
			case models.BetFormatMatchPlay:
				events = append(events, scoring.MatchEvents(label, MatchConfig(*bet.Match), *state.Match)...)
			case models.BetFormatNassau:
				events = append(events, scoring.NassauEvents(label, NassauConfig(*bet.Nassau), *state.Nassau)...)
			case models.BetFormatSkins:
				totals = append(totals, scoring.SkinsTotals(label, SkinsConfig(*bet.Skins), *state.Skins)...)
			case models.BetFormatWolf:
				totals = append(totals, scoring.WolfTotals(label, state.Wolf)...)
			case models.BetFormatPointsHiLo, models.BetFormatStableford:
				// Point formats track bragging rights, not dollars; they
				// never enter the money ledger.
			}
		}
	}

	return scoring.Settle(events, totals), nil
}

// loadRoundBets fetches every bet on a round with its format detail record.
func loadRoundBets(db *gorm.DB, roundID uuid.UUID) ([]models.Bet, error) {
	var bets []models.Bet
	err := db.
		Preload("Match.Presses").
		Preload("Nassau").
		Preload("Skins.Players").
		Preload("Wolf.TeeOrder").
		Preload("Wolf.Decisions").
		Preload("TeamFormat").
		Where("round_id = ?", roundID).
		Order("created_at ASC").
		Find(&bets).Error
	return bets, err
}

// betLabel names a bet in settlement line items, e.g. "R2 Nassau".
func betLabel(roundNumber int, format models.BetFormat) string {
	names := map[models.BetFormat]string{
		models.BetFormatMatchPlay:  "Match",
		models.BetFormatNassau:     "Nassau",
		models.BetFormatSkins:      "Skins",
		models.BetFormatWolf:       "Wolf",
		models.BetFormatPointsHiLo: "Hi/Lo",
		models.BetFormatStableford: "Stableford",
	}
	return fmt.Sprintf("R%d %s", roundNumber, names[format])
}
