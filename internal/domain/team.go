package domain

import (
	"github.com/google/uuid"
)

type Team struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	Name string    `json:"name" gorm:"not null"`

	// Relations
	Players []Player `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

// Player is a season roster entry. Points and Fouls are roster-level
// aggregate counters, distinct from the per-game counters on GamePlayer.
type Player struct {
	ID     uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	TeamID uuid.UUID `json:"teamId" gorm:"type:uuid;not null;index"`
	Name   string    `json:"name" gorm:"not null"`
	Number *int      `json:"number"`
	Points int       `json:"points" gorm:"not null;default:0"`
	Fouls  int       `json:"fouls" gorm:"not null;default:0"`
}
