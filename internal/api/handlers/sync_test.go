package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postSync(t *testing.T, ts *testutil.TestServer, key string, payload map[string]interface{}) *http.Response {
	t.Helper()

	body, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", ts.APIURL("/sync/game"), bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("X-Sync-Key", key)
	}

	resp, err := (&http.Client{}).Do(req)
	require.NoError(t, err)
	return resp
}

func syncPayload() map[string]interface{} {
	return map[string]interface{}{
		"homeTeamName": "Eagles",
		"awayTeamName": "Hawks",
		"homeScore":    55,
		"awayScore":    48,
		"homePlayers": []map[string]interface{}{
			{"name": "Ann", "number": 4, "points": 30, "fouls": 2},
			{"name": "Walk-on", "points": 25, "fouls": 0},
		},
		"awayPlayers": []map[string]interface{}{
			{"name": "Cal", "number": 7, "points": 48, "fouls": 4},
		},
	}
}

func TestSyncHandler_ImportGame(t *testing.T) {
	ts := testutil.NewTestServer(t)

	// Eagles exist with Ann on the roster; Hawks are unknown.
	eagles := testutil.NewTeamBuilder().WithName("Eagles").WithPlayers("Ann").Build(t, ts.DB.DB)

	resp := postSync(t, ts, ts.Config.SyncKey, syncPayload())
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		GameID    string `json:"gameId"`
		Duplicate bool   `json:"duplicate"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.False(t, result.Duplicate)

	// Hawks were created by name
	var teams []domain.Team
	require.NoError(t, ts.DB.DB.Find(&teams).Error)
	assert.Len(t, teams, 2)

	// The imported game is completed and counts toward standings
	var game domain.Game
	require.NoError(t, ts.DB.DB.First(&game, "id = ?", result.GameID).Error)
	assert.Equal(t, domain.GameStatusCompleted, game.Status)
	assert.Equal(t, 55, game.HomeScore)

	// Ann's line links back to her roster row; the walk-on stays unlinked
	var gamePlayers []domain.GamePlayer
	require.NoError(t, ts.DB.DB.Find(&gamePlayers, "game_id = ?", game.ID).Error)
	require.Len(t, gamePlayers, 3)
	for _, gp := range gamePlayers {
		switch gp.Name {
		case "Ann":
			require.NotNil(t, gp.LinkedPlayerID)
			assert.Equal(t, eagles.Players[0].ID, *gp.LinkedPlayerID)
		case "Walk-on":
			assert.Nil(t, gp.LinkedPlayerID)
		}
	}
}

func TestSyncHandler_DuplicateUpload(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postSync(t, ts, ts.Config.SyncKey, syncPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var first struct {
		GameID    string `json:"gameId"`
		Duplicate bool   `json:"duplicate"`
	}
	testutil.AssertJSONResponse(t, resp, &first)
	resp.Body.Close()

	// Same final uploaded again inside the window
	resp = postSync(t, ts, ts.Config.SyncKey, syncPayload())
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var second struct {
		GameID    string `json:"gameId"`
		Duplicate bool   `json:"duplicate"`
	}
	testutil.AssertJSONResponse(t, resp, &second)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.GameID, second.GameID)

	var count int64
	require.NoError(t, ts.DB.DB.Model(&domain.Game{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSyncHandler_KeyValidation(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := postSync(t, ts, "wrong-key", syncPayload())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postSync(t, ts, "", syncPayload())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
