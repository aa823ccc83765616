package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gameJSON mirrors the game response shape the displays consume.
type gameJSON struct {
	ID               string `json:"id"`
	HomeTeamID       string `json:"homeTeamId"`
	AwayTeamID       string `json:"awayTeamId"`
	HomeScore        int    `json:"homeScore"`
	AwayScore        int    `json:"awayScore"`
	Period           int    `json:"period"`
	TimeRemaining    int    `json:"timeRemaining"`
	Possession       string `json:"possession"`
	HomeTimeouts     int    `json:"homeTimeouts"`
	AwayTimeouts     int    `json:"awayTimeouts"`
	HomeFouls        int    `json:"homeFouls"`
	AwayFouls        int    `json:"awayFouls"`
	ElamEndingActive bool   `json:"elamEndingActive"`
	TargetScore      *int   `json:"targetScore"`
	ClockRunning     bool   `json:"clockRunning"`
	Status           string `json:"status"`
	HomeBonus        string `json:"homeBonus"`
	AwayBonus        string `json:"awayBonus"`
}

type gamePlayerJSON struct {
	ID             string  `json:"id"`
	TeamID         string  `json:"teamId"`
	LinkedPlayerID *string `json:"linkedPlayerId"`
	Name           string  `json:"name"`
	Points         int     `json:"points"`
	Fouls          int     `json:"fouls"`
	Missing        bool    `json:"missing"`
}

func doRequest(t *testing.T, method, url string, body interface{}, token string) *http.Response {
	t.Helper()

	req := testutil.CreateAuthenticatedRequest(t, method, url, body, token)
	resp, err := (&http.Client{}).Do(req)
	require.NoError(t, err)
	return resp
}

func createGame(t *testing.T, ts *testutil.TestServer, token string, home, away *domain.Team, tournament bool) gameJSON {
	t.Helper()

	resp := doRequest(t, "POST", ts.APIURL("/games"), map[string]interface{}{
		"homeTeamId":   home.ID,
		"awayTeamId":   away.ID,
		"isTournament": tournament,
	}, token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var game gameJSON
	testutil.AssertJSONResponse(t, resp, &game)
	return game
}

func TestGameHandler_CreateSnapshotsRosters(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().WithName("Eagles").WithPlayers("Ann", "Bea").Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().WithName("Hawks").WithPlayers("Cal", "Dee", "Eli").Build(t, ts.DB.DB)

	game := createGame(t, ts, token, home, away, false)
	assert.Equal(t, 1200, game.TimeRemaining)
	assert.Equal(t, 1, game.Period)
	assert.Equal(t, 3, game.HomeTimeouts)
	assert.Equal(t, "active", game.Status)

	resp := doRequest(t, "GET", ts.APIURL("/games/"+game.ID+"/players"), nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var players []gamePlayerJSON
	testutil.AssertJSONResponse(t, resp, &players)
	assert.Len(t, players, 5)
	for _, p := range players {
		assert.NotNil(t, p.LinkedPlayerID, "roster snapshot rows must link back to the player")
		assert.Zero(t, p.Points)
	}
}

func TestGameHandler_ScoreClampsAndAttributes(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().WithPlayers("Ann").Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().WithPlayers("Cal").Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	resp := doRequest(t, "GET", ts.APIURL("/games/"+game.ID+"/players?team=home"), nil, "")
	var homePlayers []gamePlayerJSON
	testutil.AssertJSONResponse(t, resp, &homePlayers)
	resp.Body.Close()
	require.Len(t, homePlayers, 1)

	// Attributed three-pointer
	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team":         "home",
		"points":       3,
		"gamePlayerId": homePlayers[0].ID,
	}, token)
	var updated gameJSON
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 3, updated.HomeScore)

	resp = doRequest(t, "GET", ts.APIURL("/games/"+game.ID+"/players?team=home"), nil, "")
	testutil.AssertJSONResponse(t, resp, &homePlayers)
	resp.Body.Close()
	assert.Equal(t, 3, homePlayers[0].Points)

	// Correction past zero clamps instead of going negative
	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team":   "home",
		"points": -5,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 0, updated.HomeScore)
}

func TestGameHandler_FoulsDriveBonus(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	var updated gameJSON
	for i := 0; i < 6; i++ {
		resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/foul"), map[string]interface{}{
			"team":  "away",
			"count": 1,
		}, token)
		testutil.AssertJSONResponse(t, resp, &updated)
		resp.Body.Close()
	}
	assert.Equal(t, 6, updated.AwayFouls)
	assert.Equal(t, "bonus", updated.HomeBonus)
	assert.Equal(t, "", updated.AwayBonus)

	for i := 0; i < 3; i++ {
		resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/foul"), map[string]interface{}{
			"team":  "away",
			"count": 1,
		}, token)
		testutil.AssertJSONResponse(t, resp, &updated)
		resp.Body.Close()
	}
	assert.Equal(t, "bonus+", updated.HomeBonus)

	// Next period wipes team fouls and the bonus with them
	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/period"), map[string]interface{}{
		"direction": "next",
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 2, updated.Period)
	assert.Zero(t, updated.AwayFouls)
	assert.Equal(t, "", updated.HomeBonus)
}

func TestGameHandler_ClockSetPausesByDefault(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	var updated gameJSON
	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/clock/toggle"), nil, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	require.True(t, updated.ClockRunning)

	// An operator correction that says nothing about the clock stops it
	resp = doRequest(t, "PUT", ts.APIURL("/games/"+game.ID+"/clock"), map[string]interface{}{
		"time": 300,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 300, updated.TimeRemaining)
	assert.False(t, updated.ClockRunning)

	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/clock/toggle"), nil, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	require.True(t, updated.ClockRunning)

	// The tick loop opts out and the clock keeps running
	resp = doRequest(t, "PUT", ts.APIURL("/games/"+game.ID+"/clock"), map[string]interface{}{
		"time":       299,
		"pauseClock": false,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 299, updated.TimeRemaining)
	assert.True(t, updated.ClockRunning)
}

func TestGameHandler_TimeoutExhaustion(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	var updated gameJSON
	for i := 0; i < 3; i++ {
		resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/timeout"), map[string]interface{}{
			"team":   "home",
			"action": "subtract",
		}, token)
		testutil.AssertJSONResponse(t, resp, &updated)
		resp.Body.Close()
	}
	assert.Zero(t, updated.HomeTimeouts)

	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/timeout"), map[string]interface{}{
		"team":   "home",
		"action": "subtract",
	}, token)
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "No timeouts remaining")
	resp.Body.Close()

	// Granting one back always works
	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/timeout"), map[string]interface{}{
		"team":   "home",
		"action": "add",
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 1, updated.HomeTimeouts)
}

func TestGameHandler_TimeoutDefaultsToSubtract(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	// No action in the body means a timeout was used
	var updated gameJSON
	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/timeout"), map[string]interface{}{
		"team": "home",
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, 2, updated.HomeTimeouts)
}

func TestGameHandler_ElamEndingCompletesTournamentGame(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, true)

	// Bring the score to 40-35, then arm the Elam target
	var updated gameJSON
	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "home", "points": 40,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "away", "points": 35,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()

	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/elam"), map[string]interface{}{}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	require.NotNil(t, updated.TargetScore)
	assert.Equal(t, 48, *updated.TargetScore)
	assert.True(t, updated.ElamEndingActive)
	assert.False(t, updated.ClockRunning)

	// Away creeps closer; game stays live
	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "away", "points": 12,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, "active", updated.Status)

	// First team to the target wins it outright
	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "home", "points": 8,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, "completed", updated.Status)
	assert.Equal(t, 48, updated.HomeScore)
	assert.False(t, updated.ClockRunning)
}

func TestGameHandler_ElamIgnoredForLeagueGames(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	target := 10
	var updated gameJSON
	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/elam"), map[string]interface{}{
		"targetScore": target,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()

	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "home", "points": 12,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, "active", updated.Status, "league games never end on the Elam target")
}

func TestGameHandler_CurrentGameAddressing(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)

	// No active game yet
	resp := doRequest(t, "GET", ts.APIURL("/games/current"), nil, "")
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "No active game")
	resp.Body.Close()

	game := createGame(t, ts, token, home, away, false)

	var updated gameJSON
	resp = doRequest(t, "POST", ts.APIURL("/games/current/score"), map[string]interface{}{
		"team": "home", "points": 2,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, game.ID, updated.ID)
	assert.Equal(t, 2, updated.HomeScore)

	resp = doRequest(t, "POST", ts.APIURL("/games/current/end"), nil, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, "completed", updated.Status)

	resp = doRequest(t, "GET", ts.APIURL("/games/current"), nil, "")
	testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "No active game")
	resp.Body.Close()
}

func TestGameHandler_SwapTeams(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	var updated gameJSON
	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "home", "points": 7,
	}, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()

	resp = doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/swap"), nil, token)
	testutil.AssertJSONResponse(t, resp, &updated)
	resp.Body.Close()
	assert.Equal(t, home.ID.String(), updated.AwayTeamID)
	assert.Equal(t, away.ID.String(), updated.HomeTeamID)
	assert.Equal(t, 7, updated.AwayScore)
	assert.Zero(t, updated.HomeScore)
	assert.Equal(t, "away", updated.Possession)
}

func TestGameHandler_DeleteRequiresPIN(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	req := testutil.CreateAuthenticatedRequest(t, "DELETE", ts.APIURL("/games/"+game.ID), nil, token)
	req.Header.Set("X-Delete-Pin", "0000")
	resp, err := (&http.Client{}).Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	req = testutil.CreateAuthenticatedRequest(t, "DELETE", ts.APIURL("/games/"+game.ID), nil, token)
	req.Header.Set("X-Delete-Pin", ts.Config.DeletePIN)
	resp, err = (&http.Client{}).Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, "GET", ts.APIURL("/games/"+game.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGameHandler_MutationsRequireToken(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "home", "points": 2,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// The public read surface stays open
	resp = doRequest(t, "GET", ts.APIURL("/games/"+game.ID), nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGameHandler_InvalidGameID(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	resp := doRequest(t, "POST", ts.APIURL("/games/not-a-uuid/score"), map[string]interface{}{
		"team": "home", "points": 2,
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	missing := uuid.New()
	resp = doRequest(t, "POST", ts.APIURL("/games/"+missing.String()+"/score"), map[string]interface{}{
		"team": "home", "points": 2,
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
