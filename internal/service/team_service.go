package service

import (
	"context"
	"errors"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamService struct {
	teamRepo   repository.TeamRepository
	playerRepo repository.PlayerRepository
}

func NewTeamService(teamRepo repository.TeamRepository, playerRepo repository.PlayerRepository) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, name string) (*domain.Team, error) {
	team := &domain.Team{
		ID:   uuid.New(),
		Name: name,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) GetTeams(ctx context.Context) ([]*domain.Team, error) {
	return s.teamRepo.GetAll(ctx)
}

func (s *TeamService) GetTeam(ctx context.Context, id uuid.UUID) (*domain.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}

// DeleteTeam removes the team and its roster. Completed games and their
// box scores stay.
func (s *TeamService) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetTeam(ctx, id); err != nil {
		return err
	}
	return s.teamRepo.Delete(ctx, id)
}

type CreatePlayerInput struct {
	TeamID uuid.UUID
	Name   string
	Number *int
}

func (s *TeamService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*domain.Player, error) {
	if _, err := s.GetTeam(ctx, input.TeamID); err != nil {
		return nil, err
	}

	player := &domain.Player{
		ID:     uuid.New(),
		TeamID: input.TeamID,
		Name:   input.Name,
		Number: input.Number,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *TeamService) GetRoster(ctx context.Context, teamID uuid.UUID) ([]*domain.Player, error) {
	return s.playerRepo.GetByTeamID(ctx, teamID)
}

type UpdatePlayerInput struct {
	Name   *string
	Number *int
}

func (s *TeamService) UpdatePlayer(ctx context.Context, id uuid.UUID, input UpdatePlayerInput) (*domain.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, err
	}

	if input.Name != nil {
		player.Name = *input.Name
	}
	if input.Number != nil {
		player.Number = input.Number
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *TeamService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.playerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrPlayerNotFound
		}
		return err
	}
	return s.playerRepo.Delete(ctx, id)
}
