// This file handles the bet routes: attaching money games to a round, adding
// presses to a match, recording wolf decisions, and reading a bet's computed
// state.
//
// A bet row is a tagged union — its format column says which nested config
// block applies. The create handler validates the one block the format needs
// and inserts the bet plus its detail rows in a single transaction, so a bet
// can never exist half-configured.
//
// Reading state never trusts stored snapshots: GET /bets/:id/state recomputes
// from the full score history (through a short-lived Redis cache), so edited
// scores or handicaps are reflected immediately.
package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/trentd187/golf-trip/internal/cache"
	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/services"
)

// MatchBetConfig is the nested config block for format "match_play".
type MatchBetConfig struct {
	MatchType    string   `json:"match_type"` // "1v1" or "2v2"
	StakePerHole float64  `json:"stake_per_hole"`
	TeamA        []string `json:"team_a"` // 1 or 2 user IDs, matching match_type
	TeamB        []string `json:"team_b"`
}

// NassauBetConfig is the nested config block for format "nassau".
type NassauBetConfig struct {
	StakePerMan        float64  `json:"stake_per_man"`
	AutoPress          bool     `json:"auto_press"`
	AutoPressThreshold int      `json:"auto_press_threshold"` // defaults to 2 down
	HighBallTiebreak   bool     `json:"high_ball_tiebreak"`
	TeamA              []string `json:"team_a"`
	TeamB              []string `json:"team_b"`
}

// SkinsBetConfig is the nested config block for format "skins".
type SkinsBetConfig struct {
	SkinValue float64  `json:"skin_value"`
	Carryover *bool    `json:"carryover"` // defaults to true
	Players   []string `json:"players"`   // 2 or more user IDs
}

// WolfBetConfig is the nested config block for format "wolf".
type WolfBetConfig struct {
	StakePerHole       float64  `json:"stake_per_hole"`
	LoneWolfMultiplier float64  `json:"lone_wolf_multiplier"` // defaults to 2
	TeeOrder           []string `json:"tee_order"`            // exactly 4 user IDs, in tee-off order
}

// TeamFormatBetConfig is the nested config block for formats "points_hi_lo"
// and "stableford".
type TeamFormatBetConfig struct {
	Team1 []string `json:"team1"` // exactly 2 user IDs
	Team2 []string `json:"team2"`
}

// CreateBetRequest is the JSON body for POST /api/v1/rounds/:roundId/bets.
// Exactly one config block — the one matching Format — must be present.
type CreateBetRequest struct {
	Format     string               `json:"format"`
	Match      *MatchBetConfig      `json:"match"`
	Nassau     *NassauBetConfig     `json:"nassau"`
	Skins      *SkinsBetConfig      `json:"skins"`
	Wolf       *WolfBetConfig       `json:"wolf"`
	TeamFormat *TeamFormatBetConfig `json:"team_format"`
}

// CreateBet returns a handler for POST /api/v1/rounds/:roundId/bets.
func CreateBet(db *gorm.DB) fiber.Handler {
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
		if err := db.First(&round, "id = ?", roundID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "round not found",
			})
		}

		// Anyone in the game can propose a bet, but they have to be in it —
		// on the round, or an organizer setting one up for the group.
		var rp models.RoundPlayer
		onRound := db.Where("round_id = ? AND user_id = ?", roundID, userID).
			First(&rp).Error == nil
		if !onRound && !isTripOrganizer(db, round.TripID, userID, userRole) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "not authorized to create bets on this round",
			})
		}

		var req CreateBetRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		format := models.BetFormat(req.Format)
		bet := models.Bet{
			RoundID:   roundID,
			Format:    format,
			CreatedBy: userID,
		}

		// Validate the format's config block and build the detail row. All
		// player references must resolve to players on this round.
		onRoundPlayers, err := roundPlayerSet(db, roundID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load round players",
			})
		}

		var detail interface{}
		switch format {
		case models.BetFormatMatchPlay:
			detail, err = buildMatchBet(req.Match, onRoundPlayers)
		case models.BetFormatNassau:
			detail, err = buildNassauBet(req.Nassau, onRoundPlayers)
		case models.BetFormatSkins:
			detail, err = buildSkinsBet(req.Skins, onRoundPlayers)
		case models.BetFormatWolf:
			detail, err = buildWolfBet(req.Wolf, onRoundPlayers)
		case models.BetFormatPointsHiLo, models.BetFormatStableford:
			detail, err = buildTeamFormatBet(req.TeamFormat, onRoundPlayers)
		default:
			err = errors.New("format must be one of: match_play, nassau, skins, wolf, points_hi_lo, stableford")
		}
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		// Insert the bet and its detail rows together so a failure can't
		// leave a format-less bet behind.
		txErr := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&bet).Error; err != nil {
				return err
			}
			switch d := detail.(type) {
			case *models.MatchBet:
				d.BetID = bet.ID
				return tx.Create(d).Error
			case *models.NassauBet:
				d.BetID = bet.ID
				return tx.Create(d).Error
			case *models.SkinsBet:
				d.BetID = bet.ID
				return tx.Create(d).Error
			case *models.WolfBet:
				d.BetID = bet.ID
				return tx.Create(d).Error
			case *models.TeamFormatBet:
				d.BetID = bet.ID
				return tx.Create(d).Error
			}
			return errors.New("unreachable: unknown detail type")
		})
		if txErr != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create bet",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       bet.ID.String(),
			"round_id": roundID.String(),
			"format":   string(format),
		})
	}
}

// CreatePressRequest is the JSON body for POST /api/v1/bets/:id/presses.
// Stake defaults to the parent match's stake per hole; once created it is
// frozen and unaffected by later changes to the parent.
type CreatePressRequest struct {
	StartingHole int      `json:"starting_hole"` // Required: 1–18
	EndingHole   int      `json:"ending_hole"`   // Optional: defaults to 18
	Stake        *float64 `json:"stake"`
}

// CreatePress returns a handler for POST /api/v1/bets/:id/presses.
// Presses only exist on match-play bets.
func CreatePress(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		betID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid bet ID",
			})
		}

		var bet models.Bet
		err = db.Preload("Match").First(&bet, "id = ?", betID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "bet not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch bet",
			})
		}
		if bet.Format != models.BetFormatMatchPlay || bet.Match == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "presses can only be added to match play bets",
			})
		}

		var req CreatePressRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
		if req.StartingHole < 1 || req.StartingHole > 18 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "starting_hole must be between 1 and 18",
			})
		}
		endingHole := req.EndingHole
		if endingHole == 0 {
			endingHole = 18
		}
		if endingHole < req.StartingHole {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "ending_hole must not be before starting_hole",
			})
		}

		// Freeze the stake now; the press keeps it even if the parent match's
		// stake changes later.
		stake := bet.Match.StakePerHole
		if req.Stake != nil {
			stake = *req.Stake
		}
		if stake <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "stake must be positive",
			})
		}

		press := models.Press{
			MatchBetID:   bet.Match.ID,
			StartingHole: req.StartingHole,
			EndingHole:   endingHole,
			Stake:        stake,
		}
		if err := db.Create(&press).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create press",
			})
		}

		// Give the new press its cached state right away so it never shows
		// the zero-value row to a poller. Non-fatal: the press exists, and
		// the next score entry re-syncs.
		if err := services.SyncRoundBets(db, bet.RoundID); err != nil {
			log.Printf("press sync failed for bet %s: %v", betID, err)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":            press.ID.String(),
			"bet_id":        betID.String(),
			"starting_hole": press.StartingHole,
			"ending_hole":   press.EndingHole,
			"stake":         press.Stake,
		})
	}
}

// RecordWolfDecisionRequest is the JSON body for POST /api/v1/bets/:id/wolf-decisions.
type RecordWolfDecisionRequest struct {
	HoleNumber int     `json:"hole_number"`  // Required: 1–18
	PartnerID  *string `json:"partner_id"`   // Pick a partner...
	IsLoneWolf bool    `json:"is_lone_wolf"` // ...or go it alone. Exactly one.
}

// RecordWolfDecision returns a handler for POST /api/v1/bets/:id/wolf-decisions.
// The decision is final once recorded — the unique index on (bet, hole)
// rejects a second decision for the same hole.
func RecordWolfDecision(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		betID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid bet ID",
			})
		}

		var bet models.Bet
		err = db.Preload("Wolf.TeeOrder").First(&bet, "id = ?", betID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "bet not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch bet",
			})
		}
		if bet.Format != models.BetFormatWolf || bet.Wolf == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "wolf decisions can only be recorded on wolf bets",
			})
		}

		var req RecordWolfDecisionRequest
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
		if req.IsLoneWolf == (req.PartnerID != nil) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "exactly one of partner_id or is_lone_wolf is required",
			})
		}

		decision := models.WolfBetDecision{
			WolfBetID:  bet.Wolf.ID,
			HoleNumber: req.HoleNumber,
			IsLoneWolf: req.IsLoneWolf,
		}

		if req.PartnerID != nil {
			partnerID, err := uuid.Parse(*req.PartnerID)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "partner_id must be a valid UUID",
				})
			}

			// The partner must be in the game, and the wolf can't pick themselves.
			wolfID := wolfForHole(bet.Wolf.TeeOrder, req.HoleNumber)
			inGame := false
			for _, p := range bet.Wolf.TeeOrder {
				if p.UserID == partnerID {
					inGame = true
					break
				}
			}
			if !inGame {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "partner is not in this wolf game",
				})
			}
			if partnerID == wolfID {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "the wolf cannot partner with themselves",
				})
			}
			decision.PartnerID = &partnerID
		}

		if err := db.Create(&decision).Error; err != nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "a decision for this hole is already recorded",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":           decision.ID.String(),
			"bet_id":       betID.String(),
			"hole_number":  decision.HoleNumber,
			"is_lone_wolf": decision.IsLoneWolf,
		})
	}
}

// GetBetState returns a handler for GET /api/v1/bets/:id/state.
// The state is served from the Redis cache when fresh, otherwise recomputed
// from the full score history and re-cached.
func GetBetState(db *gorm.DB, cw *cache.Writer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		betID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid bet ID",
			})
		}

		var bet models.Bet
		err = db.
			Preload("Match.Presses").
			Preload("Nassau").
			Preload("Skins.Players").
			Preload("Wolf.TeeOrder").
			Preload("Wolf.Decisions").
			Preload("TeamFormat").
			First(&bet, "id = ?", betID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "bet not found",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch bet",
			})
		}

		ctx := context.Background()

		var cached services.BetState
		if hit, err := cw.ReadBetState(ctx, bet.RoundID, betID, &cached); err == nil && hit {
			return c.JSON(cached)
		}

		rc, err := services.LoadRoundContext(db, bet.RoundID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load round",
			})
		}

		state, err := services.ComputeBetState(bet, rc)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to compute bet state",
			})
		}

		// Best-effort cache warm; a failed write just means the next read
		// recomputes too.
		_ = cw.WriteBetState(ctx, bet.RoundID, betID, state)

		return c.JSON(state)
	}
}

// --- config builders ---
// Each builder validates one format's config block against the round's roster
// and returns the detail row to insert. They return plain errors; the handler
// wraps them into the JSON error shape.

func buildMatchBet(cfg *MatchBetConfig, onRound map[uuid.UUID]bool) (*models.MatchBet, error) {
	if cfg == nil {
		return nil, errors.New("match config is required for match_play bets")
	}
	if cfg.StakePerHole <= 0 {
		return nil, errors.New("stake_per_hole must be positive")
	}

	teamSize := 0
	switch cfg.MatchType {
	case "1v1":
		teamSize = 1
	case "2v2":
		teamSize = 2
	default:
		return nil, errors.New("match_type must be '1v1' or '2v2'")
	}

	teamA, err := parseTeam("team_a", cfg.TeamA, teamSize, onRound)
	if err != nil {
		return nil, err
	}
	teamB, err := parseTeam("team_b", cfg.TeamB, teamSize, onRound)
	if err != nil {
		return nil, err
	}
	if err := distinctPlayers(append(append([]uuid.UUID{}, teamA...), teamB...)); err != nil {
		return nil, err
	}

	mb := &models.MatchBet{
		MatchType:      cfg.MatchType,
		StakePerHole:   cfg.StakePerHole,
		TeamAPlayer1ID: teamA[0],
		TeamBPlayer1ID: teamB[0],
	}
	if teamSize == 2 {
		mb.TeamAPlayer2ID = &teamA[1]
		mb.TeamBPlayer2ID = &teamB[1]
	}
	return mb, nil
}

func buildNassauBet(cfg *NassauBetConfig, onRound map[uuid.UUID]bool) (*models.NassauBet, error) {
	if cfg == nil {
		return nil, errors.New("nassau config is required for nassau bets")
	}
	if cfg.StakePerMan <= 0 {
		return nil, errors.New("stake_per_man must be positive")
	}

	// Nassau teams may be one or two players; both sides must match in size.
	if len(cfg.TeamA) != len(cfg.TeamB) {
		return nil, errors.New("team_a and team_b must be the same size")
	}
	size := len(cfg.TeamA)
	if size < 1 || size > 2 {
		return nil, errors.New("teams must have 1 or 2 players")
	}

	teamA, err := parseTeam("team_a", cfg.TeamA, size, onRound)
	if err != nil {
		return nil, err
	}
	teamB, err := parseTeam("team_b", cfg.TeamB, size, onRound)
	if err != nil {
		return nil, err
	}
	if err := distinctPlayers(append(append([]uuid.UUID{}, teamA...), teamB...)); err != nil {
		return nil, err
	}

	threshold := cfg.AutoPressThreshold
	if threshold == 0 {
		threshold = 2
	}
	if threshold < 1 {
		return nil, errors.New("auto_press_threshold must be positive")
	}

	nb := &models.NassauBet{
		StakePerMan:        cfg.StakePerMan,
		AutoPress:          cfg.AutoPress,
		AutoPressThreshold: threshold,
		HighBallTiebreak:   cfg.HighBallTiebreak,
		TeamAPlayer1ID:     teamA[0],
		TeamBPlayer1ID:     teamB[0],
	}
	if size == 2 {
		nb.TeamAPlayer2ID = &teamA[1]
		nb.TeamBPlayer2ID = &teamB[1]
	}
	return nb, nil
}

func buildSkinsBet(cfg *SkinsBetConfig, onRound map[uuid.UUID]bool) (*models.SkinsBet, error) {
	if cfg == nil {
		return nil, errors.New("skins config is required for skins bets")
	}
	if cfg.SkinValue <= 0 {
		return nil, errors.New("skin_value must be positive")
	}
	if len(cfg.Players) < 2 {
		return nil, errors.New("skins needs at least 2 players")
	}

	players, err := parseTeam("players", cfg.Players, len(cfg.Players), onRound)
	if err != nil {
		return nil, err
	}
	if err := distinctPlayers(players); err != nil {
		return nil, err
	}

	carryover := true
	if cfg.Carryover != nil {
		carryover = *cfg.Carryover
	}

	sb := &models.SkinsBet{
		SkinValue: cfg.SkinValue,
		Carryover: carryover,
	}
	for _, p := range players {
		sb.Players = append(sb.Players, models.SkinsPlayer{UserID: p})
	}
	return sb, nil
}

func buildWolfBet(cfg *WolfBetConfig, onRound map[uuid.UUID]bool) (*models.WolfBet, error) {
	if cfg == nil {
		return nil, errors.New("wolf config is required for wolf bets")
	}
	if cfg.StakePerHole <= 0 {
		return nil, errors.New("stake_per_hole must be positive")
	}
	if len(cfg.TeeOrder) != 4 {
		return nil, errors.New("wolf requires exactly 4 players in tee_order")
	}

	order, err := parseTeam("tee_order", cfg.TeeOrder, 4, onRound)
	if err != nil {
		return nil, err
	}
	if err := distinctPlayers(order); err != nil {
		return nil, err
	}

	multiplier := cfg.LoneWolfMultiplier
	if multiplier == 0 {
		multiplier = 2
	}
	if multiplier < 1 {
		return nil, errors.New("lone_wolf_multiplier must be at least 1")
	}

	wb := &models.WolfBet{
		StakePerHole:       cfg.StakePerHole,
		LoneWolfMultiplier: multiplier,
	}
	for i, p := range order {
		wb.TeeOrder = append(wb.TeeOrder, models.WolfPlayer{TeePosition: i + 1, UserID: p})
	}
	return wb, nil
}

func buildTeamFormatBet(cfg *TeamFormatBetConfig, onRound map[uuid.UUID]bool) (*models.TeamFormatBet, error) {
	if cfg == nil {
		return nil, errors.New("team_format config is required for point format bets")
	}

	team1, err := parseTeam("team1", cfg.Team1, 2, onRound)
	if err != nil {
		return nil, err
	}
	team2, err := parseTeam("team2", cfg.Team2, 2, onRound)
	if err != nil {
		return nil, err
	}
	if err := distinctPlayers(append(append([]uuid.UUID{}, team1...), team2...)); err != nil {
		return nil, err
	}

	return &models.TeamFormatBet{
		Team1Player1ID: team1[0],
		Team1Player2ID: team1[1],
		Team2Player1ID: team2[0],
		Team2Player2ID: team2[1],
	}, nil
}

// parseTeam parses a list of user ID strings, checks the expected size, and
// verifies each player is on the round.
func parseTeam(field string, ids []string, size int, onRound map[uuid.UUID]bool) ([]uuid.UUID, error) {
	if len(ids) != size {
		return nil, errors.New(field + " has the wrong number of players")
	}
	out := make([]uuid.UUID, 0, size)
	for _, s := range ids {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errors.New(field + " contains an invalid UUID")
		}
		if !onRound[id] {
			return nil, errors.New(field + " contains a player who is not on this round")
		}
		out = append(out, id)
	}
	return out, nil
}

// distinctPlayers rejects a player appearing twice across a bet's rosters.
func distinctPlayers(ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return errors.New("a player cannot appear twice in the same bet")
		}
		seen[id] = true
	}
	return nil
}

// roundPlayerSet loads the set of user IDs on a round.
func roundPlayerSet(db *gorm.DB, roundID uuid.UUID) (map[uuid.UUID]bool, error) {
	var players []models.RoundPlayer
	if err := db.Where("round_id = ?", roundID).Find(&players).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(players))
	for _, p := range players {
		set[p.UserID] = true
	}
	return set, nil
}

// wolfForHole mirrors the engine's rotation: position (hole-1) mod 4 in the
// stored tee order.
func wolfForHole(teeOrder []models.WolfPlayer, holeNumber int) uuid.UUID {
	want := (holeNumber-1)%4 + 1
	for _, p := range teeOrder {
		if p.TeePosition == want {
			return p.UserID
		}
	}
	return uuid.Nil
}
