// This file handles the course catalog routes. A course is created with its
// tee sets and per-hole data in one request — handicap math needs every tee's
// rating, slope, par, and stroke indexes, so a course isn't usable until all
// of it is present.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/trentd187/golf-trip/internal/models"
	"gorm.io/gorm"
)

// HoleConfig is one hole of a tee set in a course create request.
type HoleConfig struct {
	HoleNumber  int  `json:"hole_number"`  // 1–18
	Par         int  `json:"par"`          // 3, 4, or 5
	StrokeIndex int  `json:"stroke_index"` // 1 = hardest hole
	Yardage     *int `json:"yardage"`      // Optional
}

// TeeConfig is one tee set in a course create request.
type TeeConfig struct {
	Name         string       `json:"name"`   // e.g. "Blue"
	Gender       string       `json:"gender"` // "mens", "womens", or "unisex"
	CourseRating float64      `json:"course_rating"`
	SlopeRating  int          `json:"slope_rating"`
	Par          int          `json:"par"`
	Holes        []HoleConfig `json:"holes"`
}

// CreateCourseRequest is the JSON body for POST /api/v1/courses.
type CreateCourseRequest struct {
	Name  string      `json:"name"` // Required
	City  string      `json:"city"`
	State string      `json:"state"`
	Tees  []TeeConfig `json:"tees"` // At least one
}

// CourseResponse summarises a course for list views.
type CourseResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	TeeNames []string `json:"tee_names"`
}

// GetCourses returns a handler for GET /api/v1/courses.
func GetCourses(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var courses []models.Course
		if err := db.Preload("Tees").Order("name ASC").Find(&courses).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch courses",
			})
		}

		response := make([]CourseResponse, 0, len(courses))
		for _, course := range courses {
			teeNames := make([]string, 0, len(course.Tees))
			for _, tee := range course.Tees {
				teeNames = append(teeNames, tee.Name)
			}
			response = append(response, CourseResponse{
				ID:       course.ID.String(),
				Name:     course.Name,
				City:     course.City,
				State:    course.State,
				TeeNames: teeNames,
			})
		}
		return c.JSON(response)
	}
}

// CreateCourse returns a handler for POST /api/v1/courses.
// Requires "admin" or "manager" role (enforced by RequireRole on the route).
func CreateCourse(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req CreateCourseRequest
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
		if len(req.Tees) == 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "at least one tee set is required",
			})
		}
		for _, tee := range req.Tees {
			if tee.Name == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "every tee set needs a name",
				})
			}
			switch models.TeeGender(tee.Gender) {
			case models.TeeGenderMens, models.TeeGenderWomens, models.TeeGenderUnisex:
			default:
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "gender must be 'mens', 'womens', or 'unisex'",
				})
			}
			if len(tee.Holes) != 18 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "every tee set needs exactly 18 holes",
				})
			}
			// Stroke indexes must be a permutation of 1–18 or handicap
			// allocation breaks silently.
			seen := make(map[int]bool, 18)
			for _, hole := range tee.Holes {
				if hole.StrokeIndex < 1 || hole.StrokeIndex > 18 || seen[hole.StrokeIndex] {
					return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
						"error": "stroke indexes must use each value 1–18 exactly once",
					})
				}
				seen[hole.StrokeIndex] = true
			}
		}

		var created models.Course
		txErr := db.Transaction(func(tx *gorm.DB) error {
			course := models.Course{
				Name:      req.Name,
				City:      req.City,
				State:     req.State,
				HoleCount: 18,
			}
			if err := tx.Create(&course).Error; err != nil {
				return err
			}

			for _, teeReq := range req.Tees {
				tee := models.Tee{
					CourseID:     course.ID,
					Name:         teeReq.Name,
					Gender:       models.TeeGender(teeReq.Gender),
					CourseRating: teeReq.CourseRating,
					SlopeRating:  teeReq.SlopeRating,
					Par:          teeReq.Par,
				}
				if err := tx.Create(&tee).Error; err != nil {
					return err
				}
				for _, holeReq := range teeReq.Holes {
					hole := models.Hole{
						TeeID:       tee.ID,
						HoleNumber:  holeReq.HoleNumber,
						Par:         holeReq.Par,
						StrokeIndex: holeReq.StrokeIndex,
						Yardage:     holeReq.Yardage,
					}
					if err := tx.Create(&hole).Error; err != nil {
						return err
					}
				}
			}

			created = course
			return nil
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create course",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":   created.ID.String(),
			"name": created.Name,
		})
	}
}
