package repository

import (
	"context"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
)

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetAll(ctx context.Context) ([]*domain.Team, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Team, error)
	// Delete removes the team and its roster players. Completed game
	// history is never touched.
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlayerRepository interface {
	Create(ctx context.Context, player *domain.Player) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Player, error)
	GetByTeamID(ctx context.Context, teamID uuid.UUID) ([]*domain.Player, error)
	Update(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GameRepository interface {
	Create(ctx context.Context, game *domain.Game) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
	// GetCurrent returns the most-recently-created active game, a
	// convenience selector for single-game deployments.
	GetCurrent(ctx context.Context) (*domain.Game, error)
	List(ctx context.Context, status *domain.GameStatus) ([]*domain.Game, error)
	// Mutate runs fn against the row inside one transaction (row-locked
	// on Postgres), so concurrent control actions cannot lose updates.
	Mutate(ctx context.Context, id uuid.UUID, fn func(game *domain.Game) error) (*domain.Game, error)
	// Delete removes the game and its game players.
	Delete(ctx context.Context, id uuid.UUID) error
}

type GamePlayerRepository interface {
	Create(ctx context.Context, gamePlayer *domain.GamePlayer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GamePlayer, error)
	GetByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.GamePlayer, error)
	GetByGameAndTeam(ctx context.Context, gameID, teamID uuid.UUID) ([]*domain.GamePlayer, error)
	UpdateStats(ctx context.Context, id uuid.UUID, points, fouls int) (*domain.GamePlayer, error)
	UpdateMissing(ctx context.Context, id uuid.UUID, missing bool) (*domain.GamePlayer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type BracketRepository interface {
	GetAll(ctx context.Context) ([]*domain.BracketSlot, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.BracketSlot, error)
	// ReplaceAll clears the bracket and inserts the seeded slots.
	ReplaceAll(ctx context.Context, slots []*domain.BracketSlot) error
	Update(ctx context.Context, slot *domain.BracketSlot) error
	DeleteAll(ctx context.Context) error
}

type OperatorRepository interface {
	Create(ctx context.Context, operator *domain.Operator) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.Operator, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.OperatorSession) error
	DeleteByOperatorID(ctx context.Context, operatorID uuid.UUID) error
}

type Repositories struct {
	Team       TeamRepository
	Player     PlayerRepository
	Game       GameRepository
	GamePlayer GamePlayerRepository
	Bracket    BracketRepository
	Operator   OperatorRepository
	Session    SessionRepository
}
