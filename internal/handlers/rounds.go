// This file handles the round routes: creating rounds on a trip, fetching a
// round's full scorecard, and adding players to a round.
//
// Adding a player is where handicaps get pinned down. The client sends the
// player's handicap index (e.g. 14.2); we convert it to a whole-number playing
// handicap using the tee's rating, slope, and par at that moment. The playing
// handicap is stored on the round_player row and is what every bet computation
// uses for the rest of the round — re-rating only happens if the player is
// re-added or the row is edited.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
)

// CreateRoundRequest is the JSON body for POST /api/v1/trips/:tripId/rounds.
type CreateRoundRequest struct {
	CourseID      string `json:"course_id"`      // Required
	TeeID         string `json:"tee_id"`         // Required: the default tee set for the round
	RoundNumber   int    `json:"round_number"`   // Optional; defaults to next number on the trip
	ScheduledDate string `json:"scheduled_date"` // Required: "YYYY-MM-DD"
}

// RoundPlayerResponse is one player's line on a round, with their gross scores
// keyed by hole number.
type RoundPlayerResponse struct {
	UserID          string      `json:"user_id"`
	DisplayName     string      `json:"display_name"`
	HandicapIndex   *float64    `json:"handicap_index"`
	PlayingHandicap *int        `json:"playing_handicap"`
	Scores          map[int]int `json:"scores"`
}

// RoundResponse is the full round detail sent to clients.
type RoundResponse struct {
	ID            string                `json:"id"`
	TripID        string                `json:"trip_id"`
	CourseName    string                `json:"course_name"`
	TeeName       string                `json:"tee_name"`
	RoundNumber   int                   `json:"round_number"`
	ScheduledDate string                `json:"scheduled_date"`
	Status        string                `json:"status"`
	Players       []RoundPlayerResponse `json:"players"`
	BetCount      int64                 `json:"bet_count"`
}

// CreateRound returns a handler for POST /api/v1/trips/:tripId/rounds.
// Only trip organizers (or admins) can schedule rounds.
func CreateRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userRole, _ := c.Locals("userRole").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		tripID, err := uuid.Parse(c.Params("tripId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid trip ID",
			})
		}

		if !isTripOrganizer(db, tripID, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this trip",
			})
		}

		var req CreateRoundRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "course_id must be a valid UUID",
			})
		}
		teeID, err := uuid.Parse(req.TeeID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tee_id must be a valid UUID",
			})
		}
		scheduled, err := time.Parse("2006-01-02", req.ScheduledDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scheduled_date must be in YYYY-MM-DD format",
			})
		}

		// The tee must exist and belong to the requested course — a mismatch
		// would make every handicap calculation on the round wrong.
		var tee models.Tee
		if err := db.First(&tee, "id = ?", teeID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tee not found",
			})
		}
		if tee.CourseID != courseID {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "tee does not belong to the given course",
			})
		}

		roundNumber := req.RoundNumber
		if roundNumber == 0 {
			// Default to the next round number on this trip
			var count int64
			db.Model(&models.Round{}).Where("trip_id = ?", tripID).Count(&count)
			roundNumber = int(count) + 1
		}

		round := models.Round{
			TripID:        tripID,
			CourseID:      courseID,
			DefaultTeeID:  teeID,
			RoundNumber:   roundNumber,
			ScheduledDate: scheduled,
			Status:        models.RoundStatusScheduled,
		}
		if err := db.Create(&round).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create round",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":             round.ID.String(),
			"trip_id":        tripID.String(),
			"round_number":   round.RoundNumber,
			"scheduled_date": req.ScheduledDate,
			"status":         string(round.Status),
		})
	}
}

// GetRound returns a handler for GET /api/v1/rounds/:id.
// It returns the round with every player's handicap info and gross scores.
func GetRound(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roundID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid round ID",
			})
		}

		var round models.Round
		err = db.
			Preload("Course").
			Preload("DefaultTee").
			Preload("Players.User").
			First(&round, "id = ?", roundID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch round",
			})
		}

		var betCount int64
		db.Model(&models.Bet{}).Where("round_id = ?", roundID).Count(&betCount)

		players := make([]RoundPlayerResponse, 0, len(round.Players))
		for _, rp := range round.Players {
			var scores []models.Score
			db.Where("round_player_id = ?", rp.ID).Find(&scores)

			scoreMap := make(map[int]int, len(scores))
			for _, s := range scores {
				scoreMap[s.HoleNumber] = s.GrossScore
			}

			players = append(players, RoundPlayerResponse{
				UserID:          rp.UserID.String(),
				DisplayName:     rp.User.DisplayName,
				HandicapIndex:   rp.HandicapIndex,
				PlayingHandicap: rp.PlayingHandicap,
				Scores:          scoreMap,
			})
		}

		return c.JSON(RoundResponse{
			ID:            round.ID.String(),
			TripID:        round.TripID.String(),
			CourseName:    round.Course.Name,
			TeeName:       round.DefaultTee.Name,
			RoundNumber:   round.RoundNumber,
			ScheduledDate: round.ScheduledDate.UTC().Format("2006-01-02"),
			Status:        string(round.Status),
			Players:       players,
			BetCount:      betCount,
		})
	}
}

// AddRoundPlayerRequest is the JSON body for POST /api/v1/rounds/:roundId/players.
// Either handicap field may be set:
//   - handicap_index: the playing handicap is derived from it using the tee's
//     rating, slope, and par.
//   - playing_handicap: used directly, overriding any derivation.
//
// With neither set, the player is added with no handicap and plays off scratch
// until one is recorded.
type AddRoundPlayerRequest struct {
	UserID          string   `json:"user_id"` // Required: must be on the trip roster
	HandicapIndex   *float64 `json:"handicap_index"`
	PlayingHandicap *int     `json:"playing_handicap"`
	TeeID           *string  `json:"tee_id"` // Optional tee override for this player
}

// AddRoundPlayer returns a handler for POST /api/v1/rounds/:roundId/players.
func AddRoundPlayer(db *gorm.DB) fiber.Handler {
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

		var round models.Round
		if err := db.Preload("DefaultTee").First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}

		if !isTripOrganizer(db, round.TripID, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to manage this trip",
			})
		}

		var req AddRoundPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		playerID, err := uuid.Parse(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id must be a valid UUID",
			})
		}

		// Players must be on the trip roster before they can be put on a round.
		var tripPlayer models.TripPlayer
		err = db.Where("trip_id = ? AND user_id = ?", round.TripID, playerID).First(&tripPlayer).Error
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user is not on this trip",
			})
		}

		// Resolve which tee this player actually plays: their override, or the
		// round's default. The tee's rating/slope/par drive the derivation below.
		tee := round.DefaultTee
		var teeOverride *uuid.UUID
		if req.TeeID != nil && *req.TeeID != "" {
			overrideID, err := uuid.Parse(*req.TeeID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "tee_id must be a valid UUID",
				})
			}
			if err := db.First(&tee, "id = ?", overrideID).Error; err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "tee not found",
				})
			}
			if tee.CourseID != round.CourseID {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "tee does not belong to the round's course",
				})
			}
			teeOverride = &overrideID
		}

		// Pin down the playing handicap. An explicit playing_handicap wins;
		// otherwise derive it from the index against this tee. A plus player's
		// index produces a negative playing handicap here.
		playingHandicap := req.PlayingHandicap
		if playingHandicap == nil && req.HandicapIndex != nil {
			ch := scoring.CourseHandicap(*req.HandicapIndex, tee.SlopeRating, tee.CourseRating, tee.Par)
			playingHandicap = &ch
		}

		rp := models.RoundPlayer{
			RoundID:         roundID,
			UserID:          playerID,
			TeeID:           teeOverride,
			HandicapIndex:   req.HandicapIndex,
			PlayingHandicap: playingHandicap,
		}
		if err := db.Create(&rp).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "player is already on this round",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":               rp.ID.String(),
			"round_id":         roundID.String(),
			"user_id":          playerID.String(),
			"handicap_index":   rp.HandicapIndex,
			"playing_handicap": rp.PlayingHandicap,
		})
	}
}
