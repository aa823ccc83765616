package domain

import (
	"github.com/google/uuid"
)

// Bracket rounds count down toward the final.
const (
	RoundFinal        = 1
	RoundSemifinal    = 2
	RoundQuarterfinal = 3
	QuarterfinalSlots = 8
	SemifinalSlots    = 4
	FinalSlots        = 2
	TeamsPerDivision  = 4
)

// BracketSlot is one node of the 8-team single-elimination tree. Two slots
// share a NextSlotID to form a match; IsTopSlot marks which of the pair
// feeds the home side of the next match.
type BracketSlot struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Round         int        `json:"round" gorm:"not null"`
	Position      int        `json:"position" gorm:"not null"`
	TeamID        *uuid.UUID `json:"teamId" gorm:"type:uuid"`
	GameID        *uuid.UUID `json:"gameId" gorm:"type:uuid"`
	NextSlotID    *uuid.UUID `json:"nextSlotId" gorm:"type:uuid"`
	IsTopSlot     bool       `json:"isTopSlot" gorm:"not null;default:true"`
	ScheduledTime *string    `json:"scheduledTime"`
}
