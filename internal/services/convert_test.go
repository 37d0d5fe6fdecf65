package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-trip/internal/models"
	"github.com/trentd187/golf-trip/internal/scoring"
)

func TestMatchConfigMapsTeamsAndPresses(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	b1 := uuid.New()
	pressID := uuid.New()

	mb := models.MatchBet{
		MatchType:      "2v2",
		StakePerHole:   5,
		TeamAPlayer1ID: a1,
		TeamAPlayer2ID: &a2,
		TeamBPlayer1ID: b1,
		Presses: []models.Press{
			{ID: pressID, StartingHole: 10, EndingHole: 18, Stake: 5},
		},
	}

	cfg := MatchConfig(mb)
	assert.Equal(t, scoring.MatchType2v2, cfg.Type)
	assert.Equal(t, []uuid.UUID{a1, a2}, cfg.TeamA.Players)
	// Team B's second slot is nil, so the roster is one player.
	assert.Equal(t, []uuid.UUID{b1}, cfg.TeamB.Players)
	require.Len(t, cfg.Presses, 1)
	assert.Equal(t, pressID, cfg.Presses[0].ID)
	assert.Equal(t, 10, cfg.Presses[0].StartingHole)
}

func TestWolfConfigOrdersByTeePosition(t *testing.T) {
	p1, p2, p3, p4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	// Rows deliberately out of order: the rotation must come from
	// tee_position, not retrieval order.
	wb := models.WolfBet{
		StakePerHole:       2,
		LoneWolfMultiplier: 3,
		TeeOrder: []models.WolfPlayer{
			{TeePosition: 3, UserID: p3},
			{TeePosition: 1, UserID: p1},
			{TeePosition: 4, UserID: p4},
			{TeePosition: 2, UserID: p2},
		},
	}

	cfg := WolfConfig(wb)
	assert.Equal(t, []uuid.UUID{p1, p2, p3, p4}, cfg.TeeOrder)
}

func TestTeamFormatConfigCarriesFormatTag(t *testing.T) {
	tb := models.TeamFormatBet{
		Team1Player1ID: uuid.New(),
		Team1Player2ID: uuid.New(),
		Team2Player1ID: uuid.New(),
		Team2Player2ID: uuid.New(),
	}

	cfg := TeamFormatConfig(models.BetFormatStableford, tb)
	assert.Equal(t, scoring.FormatStableford, cfg.Format)
	assert.Len(t, cfg.Team1, 2)
	assert.Len(t, cfg.Team2, 2)
}

func TestComputeBetStateRejectsMissingDetail(t *testing.T) {
	bet := models.Bet{ID: uuid.New(), Format: models.BetFormatNassau}
	_, err := ComputeBetState(bet, &RoundContext{})
	require.Error(t, err)
}
