// Package handlers contains HTTP route handler functions for the Golf Trip API.
// This file handles the /api/v1/trips routes — listing and creating trips.
//
// A "trip" is the top-level container: a multi-day buddies trip with a roster
// of players, a series of rounds at one or more courses, and money games
// (match play, Nassau, skins, wolf, team points) attached to each round.
//
// Each exported function follows the "handler factory" pattern: it takes a *gorm.DB
// and returns a fiber.Handler (a function that handles a single HTTP request).
// This lets us inject the database without using global variables.
//
// --- Permission model ---
// Two layers of access control are used:
//
//  1. Route-level (middleware.RequireRole): controls who can call certain routes at all.
//     Only "admin" and "manager" global roles can create trips (POST /trips).
//     All authenticated users can read trips (GET /trips).
//
//  2. Resource-level (isTripOrganizer, defined below): controls who can modify
//     a specific trip (edit it, add players, schedule rounds, manage bets).
//     - "admin" global role → can manage ANY trip (full platform access).
//     - Everyone else → must hold the "organizer" trip_player role for THIS trip
//       (granted automatically when they create a trip, or manually by another
//       organizer).
//
// This means a manager cannot edit trips created by other people unless the
// other trip's organizer has explicitly granted them the organizer role.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/trentd187/golf-trip/internal/models"
	"gorm.io/gorm"
)

// TripResponse is what we send back to the mobile app.
// We use a dedicated response struct (instead of the raw GORM model) so we control
// exactly what fields are serialised to JSON and can add computed fields like PlayerCount.
type TripResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"` // null if not set
	Status      string  `json:"status"`      // "upcoming", "active", "completed", "cancelled"
	StartDate   *string `json:"start_date"`  // ISO 8601 date string or null
	EndDate     *string `json:"end_date"`
	CreatorName string  `json:"creator_name"`
	PlayerCount int64   `json:"player_count"`
	RoundCount  int64   `json:"round_count"`
	CreatedAt   string  `json:"created_at"` // ISO 8601 timestamp string
}

// CreateTripRequest is the JSON body we expect on POST /api/v1/trips.
type CreateTripRequest struct {
	Name        string  `json:"name"`        // Required
	Description *string `json:"description"` // Optional
	StartDate   *string `json:"start_date"`  // Optional: "YYYY-MM-DD"
	EndDate     *string `json:"end_date"`    // Optional: "YYYY-MM-DD"
}

// formatOptionalDate converts a *time.Time to a *string in "2006-01-02" format.
// Returns nil if the input is nil (preserving the nullable property in the JSON response).
func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format("2006-01-02")
	return &s
}

// parseOptionalDate parses an optional date string ("YYYY-MM-DD") into a *time.Time.
// Returns nil if the input string pointer is nil or empty.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// tripResponse builds the response DTO for one trip, counting its roster and
// rounds. The Creator association must already be preloaded.
func tripResponse(db *gorm.DB, trip models.Trip) TripResponse {
	var playerCount, roundCount int64
	db.Model(&models.TripPlayer{}).Where("trip_id = ?", trip.ID).Count(&playerCount)
	db.Model(&models.Round{}).Where("trip_id = ?", trip.ID).Count(&roundCount)

	return TripResponse{
		ID:          trip.ID.String(),
		Name:        trip.Name,
		Description: trip.Description,
		Status:      string(trip.Status),
		StartDate:   formatOptionalDate(trip.StartDate),
		EndDate:     formatOptionalDate(trip.EndDate),
		CreatorName: trip.Creator.DisplayName,
		PlayerCount: playerCount,
		RoundCount:  roundCount,
		CreatedAt:   trip.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetTrips returns a handler for GET /api/v1/trips.
// - Admins see all trips in the system.
// - Everyone else sees only trips they are on the roster of.
// - Optional query param: ?status=active to filter by trip status.
func GetTrips(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Read the current user's ID and role from the request context.
		// These were set by the Auth middleware earlier in the request chain.
		userIDStr, _ := c.Locals("userID").(string)
		userRole, _ := c.Locals("userRole").(string)

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		statusFilter := c.Query("status") // empty string if not provided

		// Preload("Creator") tells GORM to automatically fetch the related User record
		// for each trip's CreatedBy foreign key. This avoids N+1 queries.
		var trips []models.Trip
		query := db.Preload("Creator")

		if statusFilter != "" {
			query = query.Where("status = ?", statusFilter)
		}

		if userRole == "admin" {
			// Admins can see all trips
			query = query.Find(&trips)
		} else {
			// Regular users and managers only see trips they've joined.
			// We JOIN to trip_players and filter by the current user's ID.
			query = query.
				Joins("JOIN trip_players ON trip_players.trip_id = trips.id").
				Where("trip_players.user_id = ?", userID).
				Find(&trips)
		}

		if query.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch trips",
			})
		}

		response := make([]TripResponse, 0, len(trips))
		for _, trip := range trips {
			response = append(response, tripResponse(db, trip))
		}

		return c.JSON(response)
	}
}

// CreateTrip returns a handler for POST /api/v1/trips.
// Requires "admin" or "manager" role (enforced by RequireRole middleware on the route).
// Creates the trip record and automatically adds the creator as an organizer.
func CreateTrip(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userIDStr, _ := c.Locals("userID").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user ID",
			})
		}

		// c.BodyParser reads the body and unmarshals JSON fields that match struct tags.
		var req CreateTripRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "name is required",
			})
		}

		startDate, err := parseOptionalDate(req.StartDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "start_date must be in YYYY-MM-DD format",
			})
		}
		endDate, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "end_date must be in YYYY-MM-DD format",
			})
		}

		// We use a database transaction so that if the trip_player insert fails,
		// the trip itself is also rolled back — preventing orphaned trip records.
		var createdTrip models.Trip

		txErr := db.Transaction(func(tx *gorm.DB) error {
			trip := models.Trip{
				Name:        req.Name,
				Description: req.Description,
				Status:      models.TripStatusUpcoming,
				StartDate:   startDate,
				EndDate:     endDate,
				CreatedBy:   userID,
			}

			// tx.Create() runs an INSERT and populates trip.ID with the new UUID
			if err := tx.Create(&trip).Error; err != nil {
				return err // Returning an error causes the transaction to roll back
			}

			// Every trip must have at least one organizer — the creator gets that role.
			player := models.TripPlayer{
				TripID: trip.ID,
				UserID: userID,
				Role:   models.TripPlayerRoleOrganizer,
				Status: models.TripPlayerStatusRegistered,
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}

			createdTrip = trip
			return nil // Returning nil commits the transaction
		})

		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create trip",
			})
		}

		var creator models.User
		db.First(&creator, "id = ?", userID)
		createdTrip.Creator = creator

		resp := tripResponse(db, createdTrip)
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// AddTripPlayerRequest is the JSON body for POST /api/v1/trips/:tripId/players.
type AddTripPlayerRequest struct {
	UserID string `json:"user_id"` // Required
	Role   string `json:"role"`    // Optional: "organizer" or "player" (default)
}

// AddTripPlayer returns a handler for POST /api/v1/trips/:tripId/players.
// Only trip organizers (or admins) can add players to a roster.
func AddTripPlayer(db *gorm.DB) fiber.Handler {
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

		var req AddTripPlayerRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		newUserID, err := uuid.Parse(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "user_id must be a valid UUID",
			})
		}

		role := models.TripPlayerRolePlayer
		if req.Role == string(models.TripPlayerRoleOrganizer) {
			role = models.TripPlayerRoleOrganizer
		}

		player := models.TripPlayer{
			TripID: tripID,
			UserID: newUserID,
			Role:   role,
			Status: models.TripPlayerStatusRegistered,
		}
		if err := db.Create(&player).Error; err != nil {
			// The unique index on (trip_id, user_id) rejects duplicate roster entries.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "user is already on this trip",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      player.ID.String(),
			"trip_id": tripID.String(),
			"user_id": newUserID.String(),
			"role":    string(role),
		})
	}
}

// isTripOrganizer reports whether a user has permission to manage a specific trip.
//
// Two-tier permission model:
//   - Global "admin" role → can manage ANY trip (platform-wide access).
//   - Everyone else (including global "manager") → must hold the "organizer"
//     trip_player role for THIS specific trip.
//
// Usage: call this at the start of any handler that modifies a trip.
//
//	if !isTripOrganizer(db, tripID, userID, userRole) {
//	    return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "not authorized"})
//	}
func isTripOrganizer(db *gorm.DB, tripID, userID uuid.UUID, userRole string) bool {
	// Global admins bypass all trip-level checks
	if userRole == "admin" {
		return true
	}

	var player models.TripPlayer
	err := db.Where("trip_id = ? AND user_id = ?", tripID, userID).First(&player).Error
	return err == nil && player.Role == models.TripPlayerRoleOrganizer
}
