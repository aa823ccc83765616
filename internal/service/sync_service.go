package service

import (
	"context"
	"errors"
	"time"

	"github.com/gonzoleague/scoreboard/internal/config"
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrSyncDisabled   = errors.New("sync is not configured")
	ErrInvalidSyncKey = errors.New("invalid sync key")
)

// syncDuplicateWindow is how far back an identical final counts as a
// re-upload of the same game rather than a rematch.
const syncDuplicateWindow = 24 * time.Hour

type SyncService struct {
	teamRepo       repository.TeamRepository
	playerRepo     repository.PlayerRepository
	gameRepo       repository.GameRepository
	gamePlayerRepo repository.GamePlayerRepository
	cfg            *config.Config
}

func NewSyncService(teamRepo repository.TeamRepository, playerRepo repository.PlayerRepository, gameRepo repository.GameRepository, gamePlayerRepo repository.GamePlayerRepository, cfg *config.Config) *SyncService {
	return &SyncService{
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		gameRepo:       gameRepo,
		gamePlayerRepo: gamePlayerRepo,
		cfg:            cfg,
	}
}

// ValidateKey checks the shared upload key. An unset key disables sync
// entirely rather than accepting everything.
func (s *SyncService) ValidateKey(key string) error {
	if s.cfg.SyncKey == "" {
		return ErrSyncDisabled
	}
	if key != s.cfg.SyncKey {
		return ErrInvalidSyncKey
	}
	return nil
}

type SyncPlayerInput struct {
	Name   string `json:"name"`
	Number *int   `json:"number"`
	Points int    `json:"points"`
	Fouls  int    `json:"fouls"`
}

type SyncGameInput struct {
	HomeTeamName string            `json:"homeTeamName"`
	AwayTeamName string            `json:"awayTeamName"`
	HomeScore    int               `json:"homeScore"`
	AwayScore    int               `json:"awayScore"`
	IsTournament bool              `json:"isTournament"`
	HomePlayers  []SyncPlayerInput `json:"homePlayers"`
	AwayPlayers  []SyncPlayerInput `json:"awayPlayers"`
}

type SyncResult struct {
	Game      *domain.Game
	Duplicate bool
}

// ImportGame ingests a finished game uploaded from an offline scorer.
// Teams are matched by name and created when unknown; player lines link
// back to roster players by name so season stats pick them up. An
// identical final between the same teams inside the duplicate window is
// treated as a re-upload and returns the stored game unchanged.
func (s *SyncService) ImportGame(ctx context.Context, input SyncGameInput) (*SyncResult, error) {
	homeTeam, err := s.findOrCreateTeam(ctx, input.HomeTeamName)
	if err != nil {
		return nil, err
	}
	awayTeam, err := s.findOrCreateTeam(ctx, input.AwayTeamName)
	if err != nil {
		return nil, err
	}

	existing, err := s.findDuplicate(ctx, homeTeam.ID, awayTeam.ID, input.HomeScore, input.AwayScore)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &SyncResult{Game: existing, Duplicate: true}, nil
	}

	game := &domain.Game{
		ID:            uuid.New(),
		HomeTeamID:    homeTeam.ID,
		AwayTeamID:    awayTeam.ID,
		HomeScore:     input.HomeScore,
		AwayScore:     input.AwayScore,
		Period:        2,
		TimeRemaining: 0,
		Possession:    domain.SideHome,
		Status:        domain.GameStatusCompleted,
		IsTournament:  input.IsTournament,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	if err := s.importPlayers(ctx, game.ID, homeTeam.ID, input.HomePlayers); err != nil {
		return nil, err
	}
	if err := s.importPlayers(ctx, game.ID, awayTeam.ID, input.AwayPlayers); err != nil {
		return nil, err
	}

	return &SyncResult{Game: game}, nil
}

func (s *SyncService) findOrCreateTeam(ctx context.Context, name string) (*domain.Team, error) {
	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, team := range teams {
		if team.Name == name {
			return team, nil
		}
	}

	team := &domain.Team{ID: uuid.New(), Name: name}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *SyncService) findDuplicate(ctx context.Context, homeTeamID, awayTeamID uuid.UUID, homeScore, awayScore int) (*domain.Game, error) {
	completed := domain.GameStatusCompleted
	games, err := s.gameRepo.List(ctx, &completed)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-syncDuplicateWindow).Unix()
	for _, g := range games {
		if g.HomeTeamID == homeTeamID && g.AwayTeamID == awayTeamID &&
			g.HomeScore == homeScore && g.AwayScore == awayScore &&
			g.CreatedAt >= cutoff {
			return g, nil
		}
	}
	return nil, nil
}

func (s *SyncService) importPlayers(ctx context.Context, gameID, teamID uuid.UUID, players []SyncPlayerInput) error {
	roster, err := s.playerRepo.GetByTeamID(ctx, teamID)
	if err != nil {
		return err
	}

	byName := make(map[string]uuid.UUID, len(roster))
	for _, p := range roster {
		byName[p.Name] = p.ID
	}

	for _, p := range players {
		gamePlayer := &domain.GamePlayer{
			ID:     uuid.New(),
			GameID: gameID,
			TeamID: teamID,
			Name:   p.Name,
			Number: p.Number,
			Points: p.Points,
			Fouls:  p.Fouls,
		}
		if linkedID, ok := byName[p.Name]; ok {
			id := linkedID
			gamePlayer.LinkedPlayerID = &id
		}
		if err := s.gamePlayerRepo.Create(ctx, gamePlayer); err != nil {
			return err
		}
	}
	return nil
}
