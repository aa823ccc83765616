package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamHandler_CreateAndRoster(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, "POST", ts.APIURL("/teams"), map[string]string{"name": "Eagles"}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var team struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	testutil.AssertJSONResponse(t, resp, &team)
	resp.Body.Close()
	assert.Equal(t, "Eagles", team.Name)

	number := 23
	resp = doRequest(t, "POST", ts.APIURL("/teams/"+team.ID+"/players"), map[string]interface{}{
		"name":   "Ann",
		"number": number,
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var player struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Number *int   `json:"number"`
	}
	testutil.AssertJSONResponse(t, resp, &player)
	resp.Body.Close()
	require.NotNil(t, player.Number)
	assert.Equal(t, 23, *player.Number)

	resp = doRequest(t, "GET", ts.APIURL("/teams/"+team.ID+"/players"), nil, "")
	var roster []struct {
		Name string `json:"name"`
	}
	testutil.AssertJSONResponse(t, resp, &roster)
	resp.Body.Close()
	require.Len(t, roster, 1)
	assert.Equal(t, "Ann", roster[0].Name)

	// Jersey number change
	newNumber := 45
	resp = doRequest(t, "PUT", ts.APIURL("/players/"+player.ID), map[string]interface{}{
		"number": newNumber,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertJSONResponse(t, resp, &player)
	resp.Body.Close()
	assert.Equal(t, 45, *player.Number)
	assert.Equal(t, "Ann", player.Name)
}

func TestTeamHandler_DeleteKeepsGameHistory(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	eagles := testutil.NewTeamBuilder().WithName("Eagles").WithPlayers("Ann", "Bea").Build(t, ts.DB.DB)
	hawks := testutil.NewTeamBuilder().WithName("Hawks").Build(t, ts.DB.DB)
	game := testutil.NewGameBuilder().WithTeams(eagles, hawks).WithScore(40, 30).Completed().Build(t, ts.DB.DB)

	resp := doRequest(t, "DELETE", ts.APIURL("/teams/"+eagles.ID.String()), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Team and roster are gone
	var teamCount, playerCount int64
	require.NoError(t, ts.DB.DB.Model(&domain.Team{}).Where("id = ?", eagles.ID).Count(&teamCount).Error)
	require.NoError(t, ts.DB.DB.Model(&domain.Player{}).Where("team_id = ?", eagles.ID).Count(&playerCount).Error)
	assert.Zero(t, teamCount)
	assert.Zero(t, playerCount)

	// The completed game survives
	var stored domain.Game
	require.NoError(t, ts.DB.DB.First(&stored, "id = ?", game.ID).Error)
	assert.Equal(t, 40, stored.HomeScore)
}

func TestTeamHandler_NotFound(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, "GET", ts.APIURL("/teams/00000000-0000-0000-0000-000000000001"), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, "DELETE", ts.APIURL("/teams/00000000-0000-0000-0000-000000000001"), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
