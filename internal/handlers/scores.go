// This file handles score entry — the hot path of a live round.
//
// Submitting a score does four things, in order:
//  1. Upserts the gross score row (scores are editable; the latest entry wins).
//  2. Recomputes every match-play bet on the round and refreshes the cached
//     status columns in one transaction (services.SyncRoundBets).
//  3. Drops the round's cached bet states in Redis so no stale snapshot
//     survives the new score, then warms the cache with fresh ones.
//  4. Broadcasts each bet's fresh state over the WebSocket hub so everyone
//     watching the round sees the swing immediately.
//
// Steps 2–4 are recoverable conveniences: if any of them fails, the score is
// already durable and the next read recomputes everything from it.
package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/cache"
	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/services"
	"github.com/trentd187/golf-trip/internal/websocket"
)

// SubmitScoreRequest is the JSON body for PUT /api/v1/rounds/:roundId/scores.
type SubmitScoreRequest struct {
	UserID     string `json:"user_id"`     // Required: whose score this is
	HoleNumber int    `json:"hole_number"` // Required: 1–18
	GrossScore int    `json:"gross_score"` // Required: strokes taken, >= 1
}

// betStateMessage is the envelope broadcast to WebSocket clients when a score
// changes a bet's state.
type betStateMessage struct {
	Type  string             `json:"type"`   // always "bet_state"
	BetID string             `json:"bet_id"` // duplicated top-level so clients can route without parsing the state
	State *services.BetState `json:"state"`
}

// SubmitScore returns a handler for PUT /api/v1/rounds/:roundId/scores.
// Any player on the round (or a trip organizer) can enter scores.
func SubmitScore(db *gorm.DB, hub *websocket.Hub, cw *cache.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userRole, _ := c.Locals("userRole").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		roundID, err := uuid.Parse(c.Params("roundId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var req SubmitScoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.HoleNumber < 1 || req.HoleNumber > 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "hole_number must be between 1 and 18",
			})
		}
		if req.GrossScore < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "gross_score must be at least 1",
			})
		}

		scoredPlayerID, err := uuid.Parse(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id must be a valid UUID",
			})
		}

		var round models.Round
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}

		// The scored player must be on the round.
		var rp models.RoundPlayer
		err = db.Where("round_id = ? AND user_id = ?", roundID, scoredPlayerID).First(&rp).Error
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "player is not on this round",
			})
		}

		// The submitter must be on the round themselves or be an organizer —
		// anyone in the group can keep the card.
		var submitter models.RoundPlayer
		onRound := db.Where("round_id = ? AND user_id = ?", roundID, userID).
			First(&submitter).Error == nil
		if !onRound && !isTripOrganizer(db, round.TripID, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to enter scores for this round",
			})
		}

		// Upsert: one score per player per hole. An existing row is updated in
		// place so score corrections flow through the same endpoint.
		var score models.Score
		err = db.Where("round_player_id = ? AND hole_number = ?", rp.ID, req.HoleNumber).
			First(&score).Error
		if err == nil {
			score.GrossScore = req.GrossScore
			score.EnteredBy = userID
			err = db.Save(&score).Error
		} else {
			score = models.Score{
				RoundPlayerID: rp.ID,
				HoleNumber:    req.HoleNumber,
				GrossScore:    req.GrossScore,
				EnteredBy:     userID,
			}
			err = db.Create(&score).Error
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to save score",
			})
		}

		// Refresh the cached match/press columns. A failure here is logged but
		// doesn't fail the request — the score is saved, and any read path
		// recomputes from scores anyway.
		if err := services.SyncRoundBets(db, roundID); err != nil {
			log.Printf("bet sync failed for round %s: %v", roundID, err)
		}

		refreshAndBroadcast(db, hub, cw, roundID)

		return c.JSON(fiber.Map{
			"round_id":    roundID.String(),
			"user_id":     scoredPlayerID.String(),
			"hole_number": req.HoleNumber,
			"gross_score": req.GrossScore,
		})
	}
}

// refreshAndBroadcast recomputes every bet on a round, rewrites the cache, and
// pushes the fresh states to WebSocket watchers. Errors are logged and
// swallowed — this is the convenience tail of score entry, never its success
// condition.
func refreshAndBroadcast(db *gorm.DB, hub *websocket.Hub, cw *cache.Writer, roundID uuid.UUID) {
	ctx := context.Background()

	if err := cw.InvalidateRound(ctx, roundID); err != nil {
		log.Printf("cache invalidation failed for round %s: %v", roundID, err)
	}

	rc, err := services.LoadRoundContext(db, roundID)
	if err != nil {
		log.Printf("round context load failed for round %s: %v", roundID, err)
		return
	}

	var bets []models.Bet
	err = db.
		Preload("Match.Presses").
		Preload("Nassau").
		Preload("Skins.Players").
		Preload("Wolf.TeeOrder").
		Preload("Wolf.Decisions").
		Preload("TeamFormat").
		Where("round_id = ?", roundID).
		Find(&bets).Error
	if err != nil {
		log.Printf("bet load failed for round %s: %v", roundID, err)
		return
	}

	for _, bet := range bets {
		state, err := services.ComputeBetState(bet, rc)
		if err != nil {
			log.Printf("bet state compute failed for bet %s: %v", bet.ID, err)
			continue
		}

		if err := cw.WriteBetState(ctx, roundID, bet.ID, state); err != nil {
			log.Printf("cache write failed for bet %s: %v", bet.ID, err)
		}

		msg, err := json.Marshal(betStateMessage{Type: "bet_state", BetID: bet.ID.String(), State: state})
		if err != nil {
			continue
		}
		hub.BroadcastToRound(roundID.String(), msg)
	}
}
