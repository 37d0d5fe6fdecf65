package services

import (
	"github.com/google/uuid"

	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
)

// The converters below translate persisted bet rows into the scoring engine's
// configuration types. They are deliberately dumb field mappings — any
// validation happens when the bet is created, and the engine itself tolerates
// malformed input by returning empty or nil state.

// MatchConfig maps a stored match bet (and its presses) onto the engine's
// match configuration.
func MatchConfig(mb models.MatchBet) scoring.MatchConfig {
	cfg := scoring.MatchConfig{
		Type:         scoring.MatchType(mb.MatchType),
		StakePerHole: mb.StakePerHole,
		TeamA:        scoring.Team{Players: teamPlayers(mb.TeamAPlayer1ID, mb.TeamAPlayer2ID)},
		TeamB:        scoring.Team{Players: teamPlayers(mb.TeamBPlayer1ID, mb.TeamBPlayer2ID)},
	}
	for _, p := range mb.Presses {
		cfg.Presses = append(cfg.Presses, scoring.Press{
			ID:           p.ID,
			StartingHole: p.StartingHole,
			EndingHole:   p.EndingHole,
			Stake:        p.Stake,
		})
	}
	return cfg
}

// NassauConfig maps a stored Nassau bet onto the engine's configuration.
func NassauConfig(nb models.NassauBet) scoring.NassauConfig {
	return scoring.NassauConfig{
		StakePerMan:        nb.StakePerMan,
		AutoPress:          nb.AutoPress,
		AutoPressThreshold: nb.AutoPressThreshold,
		HighBallTiebreak:   nb.HighBallTiebreak,
		TeamA:              teamPlayers(nb.TeamAPlayer1ID, nb.TeamAPlayer2ID),
		TeamB:              teamPlayers(nb.TeamBPlayer1ID, nb.TeamBPlayer2ID),
	}
}

// SkinsConfig maps a stored skins bet onto the engine's configuration.
func SkinsConfig(sb models.SkinsBet) scoring.SkinsConfig {
	cfg := scoring.SkinsConfig{
		SkinValue: sb.SkinValue,
		Carryover: sb.Carryover,
	}
	for _, p := range sb.Players {
		cfg.Players = append(cfg.Players, p.UserID)
	}
	return cfg
}

// WolfConfig maps a stored wolf bet onto the engine's configuration. The tee
// order rows are placed by position so the rotation is stable regardless of
// row retrieval order.
func WolfConfig(wb models.WolfBet) scoring.WolfConfig {
	cfg := scoring.WolfConfig{
		StakePerHole:       wb.StakePerHole,
		LoneWolfMultiplier: wb.LoneWolfMultiplier,
		TeeOrder:           make([]uuid.UUID, len(wb.TeeOrder)),
	}
	for _, p := range wb.TeeOrder {
		if p.TeePosition >= 1 && p.TeePosition <= len(cfg.TeeOrder) {
			cfg.TeeOrder[p.TeePosition-1] = p.UserID
		}
	}
	for _, d := range wb.Decisions {
		cfg.Decisions = append(cfg.Decisions, scoring.WolfDecision{
			HoleNumber: d.HoleNumber,
			PartnerID:  d.PartnerID,
			IsLoneWolf: d.IsLoneWolf,
		})
	}
	return cfg
}

// TeamFormatConfig maps a stored team format bet onto the engine's
// configuration. The format comes from the parent Bet row's tag.
func TeamFormatConfig(format models.BetFormat, tb models.TeamFormatBet) scoring.TeamFormatConfig {
	return scoring.TeamFormatConfig{
		Format: scoring.TeamFormat(format),
		Team1:  []uuid.UUID{tb.Team1Player1ID, tb.Team1Player2ID},
		Team2:  []uuid.UUID{tb.Team2Player1ID, tb.Team2Player2ID},
	}
}

// teamPlayers builds a team roster from the fixed player columns, skipping the
// nullable second slot for 1v1 formats.
func teamPlayers(p1 uuid.UUID, p2 *uuid.UUID) []uuid.UUID {
	players := []uuid.UUID{p1}
	if p2 != nil {
		players = append(players, *p2)
	}
	return players
}
