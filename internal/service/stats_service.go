package service

import (
	"context"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/repository"
	"github.com/gonzoleague/scoreboard/internal/stats"
)

type StatsService struct {
	teamRepo       repository.TeamRepository
	gameRepo       repository.GameRepository
	gamePlayerRepo repository.GamePlayerRepository
}

func NewStatsService(teamRepo repository.TeamRepository, gameRepo repository.GameRepository, gamePlayerRepo repository.GamePlayerRepository) *StatsService {
	return &StatsService{
		teamRepo:       teamRepo,
		gameRepo:       gameRepo,
		gamePlayerRepo: gamePlayerRepo,
	}
}

// Standings ranks teams over completed league games only; the tournament
// pool never leaks into the season table.
func (s *StatsService) Standings(ctx context.Context) ([]stats.TeamRow, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	games, err := s.completedGames(ctx, false)
	if err != nil {
		return nil, err
	}

	return stats.Standings(teams, games), nil
}

// PlayerStats aggregates box scores across the chosen pool of completed
// games.
func (s *StatsService) PlayerStats(ctx context.Context, tournament bool) ([]stats.PlayerLine, error) {
	games, err := s.completedGames(ctx, tournament)
	if err != nil {
		return nil, err
	}

	var gamePlayers []*domain.GamePlayer
	for _, g := range games {
		players, err := s.gamePlayerRepo.GetByGame(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		gamePlayers = append(gamePlayers, players...)
	}

	return stats.PlayerTotals(gamePlayers), nil
}

// TournamentGames lists every bracket game, active and completed, for
// the public tournament page.
func (s *StatsService) TournamentGames(ctx context.Context) ([]*domain.Game, error) {
	games, err := s.gameRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	tournament := make([]*domain.Game, 0, len(games))
	for _, g := range games {
		if g.IsTournament {
			tournament = append(tournament, g)
		}
	}
	return tournament, nil
}

func (s *StatsService) completedGames(ctx context.Context, tournament bool) ([]*domain.Game, error) {
	completed := domain.GameStatusCompleted
	games, err := s.gameRepo.List(ctx, &completed)
	if err != nil {
		return nil, err
	}

	pool := make([]*domain.Game, 0, len(games))
	for _, g := range games {
		if g.IsTournament == tournament {
			pool = append(pool, g)
		}
	}
	return pool, nil
}
