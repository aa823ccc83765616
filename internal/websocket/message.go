package websocket

import (
	"encoding/json"

	"github.com/gonzoleague/scoreboard/internal/domain"
)

const (
	MessageTypeGameUpdate  = "game_update"
	MessageTypeGameDeleted = "game_deleted"
	MessageTypeError       = "error"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewMessage(msgType string, payload interface{}) (*Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{Type: msgType, Payload: data}, nil
}

// GameUpdatePayload is the full scoreboard frame pushed to displays.
// Bonus is derived server-side so every display agrees on the arrow.
type GameUpdatePayload struct {
	Game      *domain.Game `json:"game"`
	HomeBonus string       `json:"homeBonus"`
	AwayBonus string       `json:"awayBonus"`
}

type GameDeletedPayload struct {
	GameID string `json:"gameId"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
