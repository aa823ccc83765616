package service

import (
	"context"
	"errors"

	"github.com/gonzoleague/scoreboard/internal/bracket"
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/engine"
	"github.com/gonzoleague/scoreboard/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GameService struct {
	gameRepo       repository.GameRepository
	gamePlayerRepo repository.GamePlayerRepository
	playerRepo     repository.PlayerRepository
	bracketRepo    repository.BracketRepository
}

func NewGameService(gameRepo repository.GameRepository, gamePlayerRepo repository.GamePlayerRepository, playerRepo repository.PlayerRepository, bracketRepo repository.BracketRepository) *GameService {
	return &GameService{
		gameRepo:       gameRepo,
		gamePlayerRepo: gamePlayerRepo,
		playerRepo:     playerRepo,
		bracketRepo:    bracketRepo,
	}
}

type CreateGameInput struct {
	HomeTeamID   uuid.UUID
	AwayTeamID   uuid.UUID
	IsTournament bool
}

// CreateGame starts a match and snapshots both rosters into GamePlayer
// rows, so mid-season roster edits never rewrite old box scores.
func (s *GameService) CreateGame(ctx context.Context, input CreateGameInput) (*domain.Game, error) {
	game := &domain.Game{
		ID:            uuid.New(),
		HomeTeamID:    input.HomeTeamID,
		AwayTeamID:    input.AwayTeamID,
		Period:        1,
		TimeRemaining: domain.PeriodLengthSeconds,
		Possession:    domain.SideHome,
		HomeTimeouts:  3,
		AwayTimeouts:  3,
		Status:        domain.GameStatusActive,
		IsTournament:  input.IsTournament,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	for _, teamID := range []uuid.UUID{game.HomeTeamID, game.AwayTeamID} {
		roster, err := s.playerRepo.GetByTeamID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		for _, player := range roster {
			linkedID := player.ID
			gamePlayer := &domain.GamePlayer{
				ID:             uuid.New(),
				GameID:         game.ID,
				TeamID:         teamID,
				LinkedPlayerID: &linkedID,
				Name:           player.Name,
				Number:         player.Number,
			}
			if err := s.gamePlayerRepo.Create(ctx, gamePlayer); err != nil {
				return nil, err
			}
		}
	}

	return game, nil
}

// Resolve finds the addressed game, or falls back to the most recent
// active game when no id is given.
func (s *GameService) Resolve(ctx context.Context, gameID *uuid.UUID) (*domain.Game, error) {
	if gameID != nil {
		game, err := s.gameRepo.GetByID(ctx, *gameID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrGameNotFound
			}
			return nil, err
		}
		return game, nil
	}

	game, err := s.gameRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveGame
		}
		return nil, err
	}
	return game, nil
}

// Control applies one engine command atomically, mirrors score/foul
// deltas onto the addressed game player, and advances the tournament
// bracket when the command completes a tournament game.
func (s *GameService) Control(ctx context.Context, gameID *uuid.UUID, cmd engine.Command, gamePlayerID *uuid.UUID) (*domain.Game, error) {
	game, err := s.Resolve(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var events []engine.Event
	updated, err := s.gameRepo.Mutate(ctx, game.ID, func(g *domain.Game) error {
		evts, next, err := engine.Apply(*g, cmd)
		if err != nil {
			return err
		}
		events = evts
		*g = next
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGameNotFound
		}
		return nil, err
	}

	if gamePlayerID != nil {
		if err := s.applyPlayerDelta(ctx, updated, cmd, *gamePlayerID); err != nil {
			return nil, err
		}
	}

	for _, event := range events {
		if event.Type != engine.EvtGameCompleted {
			continue
		}
		if updated.IsTournament && event.WinnerTeamID != uuid.Nil {
			if err := s.advanceWinner(ctx, updated.ID, event.WinnerTeamID); err != nil {
				return nil, err
			}
		}
	}

	return updated, nil
}

// applyPlayerDelta mirrors a team score/foul delta onto one game player.
// A stale or mismatched id is skipped rather than failing the team
// update, matching the control panel's fire-and-forget attribution.
func (s *GameService) applyPlayerDelta(ctx context.Context, game *domain.Game, cmd engine.Command, gamePlayerID uuid.UUID) error {
	var delta int
	switch cmd.Type {
	case engine.CmdScore:
		delta = cmd.Points
	case engine.CmdFoul:
		delta = cmd.Count
	default:
		return nil
	}

	gamePlayer, err := s.gamePlayerRepo.GetByID(ctx, gamePlayerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if gamePlayer.GameID != game.ID || gamePlayer.TeamID != game.TeamID(cmd.Team) {
		return nil
	}

	points, fouls := gamePlayer.Points, gamePlayer.Fouls
	if cmd.Type == engine.CmdScore {
		points = engine.ClampStat(points, delta)
	} else {
		fouls = engine.ClampStat(fouls, delta)
	}

	_, err = s.gamePlayerRepo.UpdateStats(ctx, gamePlayerID, points, fouls)
	return err
}

func (s *GameService) advanceWinner(ctx context.Context, gameID, winnerTeamID uuid.UUID) error {
	slots, err := s.bracketRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	next, ok := bracket.Advance(slots, gameID, winnerTeamID)
	if !ok {
		return nil
	}
	return s.bracketRepo.Update(ctx, next)
}

func (s *GameService) GetGames(ctx context.Context, status *domain.GameStatus) ([]*domain.Game, error) {
	return s.gameRepo.List(ctx, status)
}

func (s *GameService) DeleteGame(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Resolve(ctx, &id); err != nil {
		return err
	}
	return s.gameRepo.Delete(ctx, id)
}

type AddGamePlayerInput struct {
	GameID         uuid.UUID
	TeamID         uuid.UUID
	LinkedPlayerID *uuid.UUID
	Name           string
	Number         *int
}

// AddGamePlayer adds a box-score row mid-game. No linked roster player
// marks a substitute, which season aggregation skips.
func (s *GameService) AddGamePlayer(ctx context.Context, input AddGamePlayerInput) (*domain.GamePlayer, error) {
	if _, err := s.Resolve(ctx, &input.GameID); err != nil {
		return nil, err
	}

	gamePlayer := &domain.GamePlayer{
		ID:             uuid.New(),
		GameID:         input.GameID,
		TeamID:         input.TeamID,
		LinkedPlayerID: input.LinkedPlayerID,
		Name:           input.Name,
		Number:         input.Number,
	}
	if err := s.gamePlayerRepo.Create(ctx, gamePlayer); err != nil {
		return nil, err
	}
	return gamePlayer, nil
}

func (s *GameService) GetGamePlayers(ctx context.Context, gameID uuid.UUID) ([]*domain.GamePlayer, error) {
	return s.gamePlayerRepo.GetByGame(ctx, gameID)
}

func (s *GameService) GetGamePlayersBySide(ctx context.Context, gameID *uuid.UUID, side domain.TeamSide) ([]*domain.GamePlayer, error) {
	game, err := s.Resolve(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return s.gamePlayerRepo.GetByGameAndTeam(ctx, game.ID, game.TeamID(side))
}

func (s *GameService) UpdateGamePlayerStats(ctx context.Context, id uuid.UUID, points, fouls int) (*domain.GamePlayer, error) {
	gamePlayer, err := s.gamePlayerRepo.UpdateStats(ctx, id, points, fouls)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGamePlayerNotFound
		}
		return nil, err
	}
	return gamePlayer, nil
}

func (s *GameService) UpdateGamePlayerMissing(ctx context.Context, id uuid.UUID, missing bool) (*domain.GamePlayer, error) {
	gamePlayer, err := s.gamePlayerRepo.UpdateMissing(ctx, id, missing)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGamePlayerNotFound
		}
		return nil, err
	}
	return gamePlayer, nil
}

func (s *GameService) DeleteGamePlayer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.gamePlayerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrGamePlayerNotFound
		}
		return err
	}
	return s.gamePlayerRepo.Delete(ctx, id)
}
