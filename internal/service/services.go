package service

import (
	"github.com/gonzoleague/scoreboard/internal/config"
	"github.com/gonzoleague/scoreboard/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Team    *TeamService
	Game    *GameService
	Bracket *BracketService
	Stats   *StatsService
	Sync    *SyncService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	gameService := NewGameService(repos.Game, repos.GamePlayer, repos.Player, repos.Bracket)

	return &Services{
		Auth:    NewAuthService(repos.Operator, repos.Session, cfg),
		Team:    NewTeamService(repos.Team, repos.Player),
		Game:    gameService,
		Bracket: NewBracketService(repos.Bracket, gameService),
		Stats:   NewStatsService(repos.Team, repos.Game, repos.GamePlayer),
		Sync:    NewSyncService(repos.Team, repos.Player, repos.Game, repos.GamePlayer, cfg),
	}
}
