package domain

import (
	"github.com/google/uuid"
)

type GameStatus string

const (
	GameStatusActive    GameStatus = "active"
	GameStatusCompleted GameStatus = "completed"
)

type TeamSide string

const (
	SideHome TeamSide = "home"
	SideAway TeamSide = "away"
)

// PeriodLengthSeconds is the regulation length of a half (20:00).
const PeriodLengthSeconds = 1200

type Game struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	HomeTeamID       uuid.UUID  `json:"homeTeamId" gorm:"type:uuid;not null"`
	AwayTeamID       uuid.UUID  `json:"awayTeamId" gorm:"type:uuid;not null"`
	HomeScore        int        `json:"homeScore" gorm:"not null;default:0"`
	AwayScore        int        `json:"awayScore" gorm:"not null;default:0"`
	Period           int        `json:"period" gorm:"not null;default:1"`
	TimeRemaining    int        `json:"timeRemaining" gorm:"not null;default:1200"`
	Possession       TeamSide   `json:"possession" gorm:"not null;default:'home'"`
	HomeTimeouts     int        `json:"homeTimeouts" gorm:"not null;default:3"`
	AwayTimeouts     int        `json:"awayTimeouts" gorm:"not null;default:3"`
	HomeFouls        int        `json:"homeFouls" gorm:"not null;default:0"`
	AwayFouls        int        `json:"awayFouls" gorm:"not null;default:0"`
	ElamEndingActive bool       `json:"elamEndingActive" gorm:"not null;default:false"`
	TargetScore      *int       `json:"targetScore"`
	ClockRunning     bool       `json:"clockRunning" gorm:"not null;default:false"`
	Status           GameStatus `json:"status" gorm:"not null;default:'active'"`
	IsTournament     bool       `json:"isTournament" gorm:"not null;default:false"`
	CreatedAt        int64      `json:"createdAt" gorm:"autoCreateTime"`
}

// TeamID returns the team playing the given side.
func (g *Game) TeamID(side TeamSide) uuid.UUID {
	if side == SideHome {
		return g.HomeTeamID
	}
	return g.AwayTeamID
}

// GamePlayer is the per-game snapshot of a roster player, or an ad-hoc
// mid-game substitute when LinkedPlayerID is nil. Missing players keep
// their (zero) line on the box score but are excluded from aggregation.
type GamePlayer struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	GameID         uuid.UUID  `json:"gameId" gorm:"type:uuid;not null;index"`
	TeamID         uuid.UUID  `json:"teamId" gorm:"type:uuid;not null"`
	LinkedPlayerID *uuid.UUID `json:"linkedPlayerId" gorm:"type:uuid"`
	Name           string     `json:"name" gorm:"not null"`
	Number         *int       `json:"number"`
	Points         int        `json:"points" gorm:"not null;default:0"`
	Fouls          int        `json:"fouls" gorm:"not null;default:0"`
	Missing        bool       `json:"missing" gorm:"not null;default:false"`
}
