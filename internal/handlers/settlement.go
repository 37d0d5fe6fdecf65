// This file handles GET /api/v1/trips/:tripId/settlement — the "who owes who"
// view of an entire trip. The ledger is recomputed from gross scores on every
// call; only finished bets (closed matches, played-out segments, completed
// skins and wolf games) move money, so it is safe to check mid-trip.
package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/cache"
	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
	"github.com/trentd187/golf-trip/internal/services"
)

// SettlementLineResponse is one line item of a player's settlement.
type SettlementLineResponse struct {
	Description string  `json:"description"` // e.g. "R1 Match: Won 2&1"
	Amount      float64 `json:"amount"`
	Display     string  `json:"display"` // formatted, e.g. "$5" or "-$12.50"
}

// PlayerSettlementResponse is one player's full trip ledger.
type PlayerSettlementResponse struct {
	UserID      string                   `json:"user_id"`
	DisplayName string                   `json:"display_name"`
	Total       float64                  `json:"total"`
	Display     string                   `json:"display"`
	Lines       []SettlementLineResponse `json:"lines"`
}

// GetTripSettlement returns a handler for GET /api/v1/trips/:tripId/settlement.
// Players are ordered biggest winner first.
func GetTripSettlement(db *gorm.DB, cw *cache.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tripID, err := uuid.Parse(c.Params("tripId"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid trip ID",
			})
		}

		settlements, err := services.ComputeTripSettlement(db, tripID)
		if errors.Is(err, services.ErrTripNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "trip not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute settlement",
			})
		}

		// Resolve display names in one query instead of one per player.
		ids := make([]uuid.UUID, 0, len(settlements))
		for _, s := range settlements {
			ids = append(ids, s.PlayerID)
		}
		names := make(map[uuid.UUID]string, len(ids))
		if len(ids) > 0 {
			var users []models.User
			if err := db.Where("id IN ?", ids).Find(&users).Error; err == nil {
				for _, u := range users {
					names[u.ID] = u.DisplayName
				}
			}
		}

		response := make([]PlayerSettlementResponse, 0, len(settlements))
		for _, s := range settlements {
			lines := make([]SettlementLineResponse, 0, len(s.Lines))
			for _, l := range s.Lines {
				lines = append(lines, SettlementLineResponse{
					Description: l.Description,
					Amount:      l.Amount,
					Display:     scoring.FormatMoney(l.Amount),
				})
			}
			response = append(response, PlayerSettlementResponse{
				UserID:      s.PlayerID.String(),
				DisplayName: names[s.PlayerID],
				Total:       s.Total,
				Display:     scoring.FormatMoney(s.Total),
				Lines:       lines,
			})
		}

		// Cache the summary briefly; trips are often checked by the whole
		// group at once after a round.
		_ = cw.WriteSettlement(context.Background(), tripID, response)

		return c.JSON(response)
	}
}
