package service

import (
	"context"
	"errors"

	"github.com/gonzoleague/scoreboard/internal/bracket"
	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/gonzoleague/scoreboard/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BracketService struct {
	bracketRepo repository.BracketRepository
	gameService *GameService
}

func NewBracketService(bracketRepo repository.BracketRepository, gameService *GameService) *BracketService {
	return &BracketService{
		bracketRepo: bracketRepo,
		gameService: gameService,
	}
}

// Get returns the bracket, validated on every read so a manually edited
// database surfaces as an error rather than a half-drawn tree.
func (s *BracketService) Get(ctx context.Context) ([]*domain.BracketSlot, error) {
	slots, err := s.bracketRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := bracket.Validate(slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// Init seeds a fresh bracket from the two division standings, replacing
// whatever bracket existed before.
func (s *BracketService) Init(ctx context.Context, east, west []uuid.UUID) ([]*domain.BracketSlot, error) {
	slots, err := bracket.Seed(east, west)
	if err != nil {
		return nil, err
	}
	if err := s.bracketRepo.ReplaceAll(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

type UpdateSlotInput struct {
	TeamID        *uuid.UUID
	GameID        *uuid.UUID
	ClearGameID   bool
	ScheduledTime *string
}

func (s *BracketService) UpdateSlot(ctx context.Context, id uuid.UUID, input UpdateSlotInput) (*domain.BracketSlot, error) {
	slot, err := s.bracketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSlotNotFound
		}
		return nil, err
	}

	if input.TeamID != nil {
		slot.TeamID = input.TeamID
	}
	if input.ClearGameID {
		slot.GameID = nil
	} else if input.GameID != nil {
		slot.GameID = input.GameID
	}
	if input.ScheduledTime != nil {
		slot.ScheduledTime = input.ScheduledTime
	}

	if err := s.bracketRepo.Update(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

// CreateMatchGame starts the tournament game for one bracket match. Both
// slots must hold a team. The game id is bound to the top slot, which is
// how completion later finds its way back into the tree.
func (s *BracketService) CreateMatchGame(ctx context.Context, round, match int) (*domain.Game, error) {
	slots, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	top, bottom, err := bracket.MatchPair(slots, round, match)
	if err != nil {
		return nil, err
	}
	if top.TeamID == nil || bottom.TeamID == nil {
		return nil, domain.ErrSlotsUnassigned
	}

	game, err := s.gameService.CreateGame(ctx, CreateGameInput{
		HomeTeamID:   *top.TeamID,
		AwayTeamID:   *bottom.TeamID,
		IsTournament: true,
	})
	if err != nil {
		return nil, err
	}

	gameID := game.ID
	top.GameID = &gameID
	if err := s.bracketRepo.Update(ctx, top); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *BracketService) Reset(ctx context.Context) error {
	return s.bracketRepo.DeleteAll(ctx)
}
