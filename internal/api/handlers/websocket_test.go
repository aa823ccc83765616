package handlers_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gonzoleague/scoreboard/internal/testutil"
	"github.com/gonzoleague/scoreboard/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocket_DisplayReceivesScoreUpdates(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewOperatorBuilder().BuildAndAuthenticate(t, ts)

	home := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	away := testutil.NewTeamBuilder().Build(t, ts.DB.DB)
	game := createGame(t, ts, token, home, away, false)

	conn, _, err := ws.DefaultDialer.Dial(ts.WebSocketURL(), nil)
	require.NoError(t, err)
	defer conn.Close()

	// Let the hub register the client before mutating.
	time.Sleep(100 * time.Millisecond)

	resp := doRequest(t, "POST", ts.APIURL("/games/"+game.ID+"/score"), map[string]interface{}{
		"team": "home", "points": 2,
	}, token)
	resp.Body.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, websocket.MessageTypeGameUpdate, msg.Type)

	var payload struct {
		Game struct {
			ID        string `json:"id"`
			HomeScore int    `json:"homeScore"`
		} `json:"game"`
		HomeBonus string `json:"homeBonus"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, game.ID, payload.Game.ID)
	assert.Equal(t, 2, payload.Game.HomeScore)
	assert.Equal(t, "", payload.HomeBonus)
}
