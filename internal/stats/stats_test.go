package stats

import (
	"testing"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerTotalsExcludesSubsAndMissing(t *testing.T) {
	rosterID := uuid.New()
	gameA, gameB := uuid.New(), uuid.New()
	teamID := uuid.New()

	gamePlayers := []*domain.GamePlayer{
		{ID: uuid.New(), GameID: gameA, TeamID: teamID, LinkedPlayerID: &rosterID, Name: "Jordan Reyes", Points: 12, Fouls: 2},
		{ID: uuid.New(), GameID: gameB, TeamID: teamID, LinkedPlayerID: &rosterID, Name: "Jordan Reyes", Points: 8, Fouls: 1},
		// Mid-game substitute: no linked roster player.
		{ID: uuid.New(), GameID: gameA, TeamID: teamID, Name: "Walk-on", Points: 10},
		// Missing roster player keeps their line but contributes nothing.
		{ID: uuid.New(), GameID: gameB, TeamID: teamID, LinkedPlayerID: ptrUUID(), Name: "No Show", Points: 5, Missing: true},
	}

	lines := PlayerTotals(gamePlayers)
	require.Len(t, lines, 1)

	line := lines[0]
	assert.Equal(t, rosterID, line.PlayerID)
	assert.Equal(t, 20, line.TotalPoints)
	assert.Equal(t, 3, line.TotalFouls)
	assert.Equal(t, 2, line.GamesPlayed)
	assert.Equal(t, "10.0", line.AvgPoints)
}

func TestPlayerTotalsOrdersByPoints(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	teamID := uuid.New()

	lines := PlayerTotals([]*domain.GamePlayer{
		{ID: uuid.New(), GameID: uuid.New(), TeamID: teamID, LinkedPlayerID: &a, Name: "Low", Points: 4},
		{ID: uuid.New(), GameID: uuid.New(), TeamID: teamID, LinkedPlayerID: &b, Name: "High", Points: 22},
	})
	require.Len(t, lines, 2)
	assert.Equal(t, "High", lines[0].Name)
	assert.Equal(t, "Low", lines[1].Name)
}

func TestStandingsRanksAndTieBreaks(t *testing.T) {
	alpha := &domain.Team{ID: uuid.New(), Name: "Alpha"}
	bravo := &domain.Team{ID: uuid.New(), Name: "Bravo"}
	chili := &domain.Team{ID: uuid.New(), Name: "Chili"}
	idle := &domain.Team{ID: uuid.New(), Name: "Idle"}
	teams := []*domain.Team{alpha, bravo, chili, idle}

	games := []*domain.Game{
		// Alpha beats Chili by 20, Bravo beats Chili by 5: same record,
		// Alpha ranks ahead on point differential and shares rank 1.
		{ID: uuid.New(), HomeTeamID: alpha.ID, AwayTeamID: chili.ID, HomeScore: 60, AwayScore: 40},
		{ID: uuid.New(), HomeTeamID: bravo.ID, AwayTeamID: chili.ID, HomeScore: 50, AwayScore: 45},
	}

	rows := Standings(teams, games)
	require.Len(t, rows, 4)

	assert.Equal(t, "Alpha", rows[0].TeamName)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 20, rows[0].PointDiff)
	assert.Equal(t, "1.000", rows[0].WinPct)

	assert.Equal(t, "Bravo", rows[1].TeamName)
	assert.Equal(t, 1, rows[1].Rank, "equal win percentage shares the rank")

	assert.Equal(t, "Chili", rows[2].TeamName)
	assert.Equal(t, 3, rows[2].Rank, "rank after a tie skips")
	assert.Equal(t, 2, rows[2].Losses)
	assert.Equal(t, "0.000", rows[2].WinPct)

	// A team with no games played.
	assert.Equal(t, "Idle", rows[3].TeamName)
	assert.Equal(t, ".000", rows[3].WinPct)
	assert.Equal(t, "0.0", rows[3].PPG)
	assert.Equal(t, "0.0", rows[3].PAG)
	assert.Equal(t, 0, rows[3].GamesPlayed)
}

func TestStandingsTieCountsForNeither(t *testing.T) {
	a := &domain.Team{ID: uuid.New(), Name: "A"}
	b := &domain.Team{ID: uuid.New(), Name: "B"}

	rows := Standings([]*domain.Team{a, b}, []*domain.Game{
		{ID: uuid.New(), HomeTeamID: a.ID, AwayTeamID: b.ID, HomeScore: 44, AwayScore: 44},
	})
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, 0, row.Wins)
		assert.Equal(t, 0, row.Losses)
		assert.Equal(t, 1, row.GamesPlayed)
		assert.Equal(t, "0.000", row.WinPct)
	}
}

func TestStandingsNameBreaksFullTies(t *testing.T) {
	zeta := &domain.Team{ID: uuid.New(), Name: "Zeta"}
	echo := &domain.Team{ID: uuid.New(), Name: "Echo"}

	rows := Standings([]*domain.Team{zeta, echo}, nil)
	require.Len(t, rows, 2)
	assert.Equal(t, "Echo", rows[0].TeamName)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1, rows[1].Rank)
}

func ptrUUID() *uuid.UUID {
	id := uuid.New()
	return &id
}
