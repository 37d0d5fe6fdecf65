// Package services holds the glue between the HTTP layer, the database, and
// the pure scoring engine. Handlers never hand raw GORM rows to the engine;
// they load a RoundContext here, which assembles the engine's three inputs
// (holes, playing handicaps, the gross-score card) from persisted state.
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
)

// ErrRoundNotFound is returned when a round ID doesn't exist.
var ErrRoundNotFound = errors.New("round not found")

// RoundContext bundles everything the scoring engine needs about one round.
// It is rebuilt from the database on every use — nothing here is cached or
// shared between requests.
type RoundContext struct {
	Round     models.Round
	Holes     []scoring.Hole
	Handicaps []scoring.PlayerHandicap
	Card      scoring.Scorecard
}

// LoadRoundContext fetches a round with its course holes, player handicaps,
// and full score history, converted into the engine's input types. Scores are
// keyed by user ID so bet configurations (which reference users) line up with
// the card.
func LoadRoundContext(db *gorm.DB, roundID uuid.UUID) (*RoundContext, error) {
	var round models.Round
	err := db.
		Preload("DefaultTee.Holes").
		Preload("Players").
		First(&round, "id = ?", roundID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoundNotFound
	}
	if err != nil {
		return nil, err
	}

	rc := &RoundContext{
		Round: round,
		Card:  make(scoring.Scorecard),
	}

	for _, h := range round.DefaultTee.Holes {
		rc.Holes = append(rc.Holes, scoring.Hole{
			Number:      h.HoleNumber,
			Par:         h.Par,
			StrokeIndex: h.StrokeIndex,
		})
	}

	// Round player rows carry the playing handicap and map score rows
	// (keyed by round_player_id) back to user IDs.
	playerByRPID := make(map[uuid.UUID]uuid.UUID, len(round.Players))
	for _, rp := range round.Players {
		playerByRPID[rp.ID] = rp.UserID
		rc.Handicaps = append(rc.Handicaps, scoring.PlayerHandicap{
			PlayerID:        rp.UserID,
			PlayingHandicap: rp.PlayingHandicap,
		})
	}

	var scores []models.Score
	if err := db.
		Joins("JOIN round_players ON round_players.id = scores.round_player_id").
		Where("round_players.round_id = ?", roundID).
		Find(&scores).Error; err != nil {
		return nil, err
	}

	for _, s := range scores {
		userID, ok := playerByRPID[s.RoundPlayerID]
		if !ok {
			continue // score for a player no longer in the round
		}
		if rc.Card[userID] == nil {
			rc.Card[userID] = make(map[int]int)
		}
		rc.Card[userID][s.HoleNumber] = s.GrossScore
	}

	return rc, nil
}
