package postgres

import (
	"context"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gamePlayerRepository struct {
	db *gorm.DB
}

func NewGamePlayerRepository(db *gorm.DB) *gamePlayerRepository {
	return &gamePlayerRepository{db: db}
}

func (r *gamePlayerRepository) Create(ctx context.Context, gamePlayer *domain.GamePlayer) error {
	return r.db.WithContext(ctx).Create(gamePlayer).Error
}

func (r *gamePlayerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.GamePlayer, error) {
	var gamePlayer domain.GamePlayer
	err := r.db.WithContext(ctx).First(&gamePlayer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &gamePlayer, nil
}

func (r *gamePlayerRepository) GetByGame(ctx context.Context, gameID uuid.UUID) ([]*domain.GamePlayer, error) {
	var gamePlayers []*domain.GamePlayer
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("number ASC NULLS LAST").
		Find(&gamePlayers).Error
	if err != nil {
		return nil, err
	}
	return gamePlayers, nil
}

func (r *gamePlayerRepository) GetByGameAndTeam(ctx context.Context, gameID, teamID uuid.UUID) ([]*domain.GamePlayer, error) {
	var gamePlayers []*domain.GamePlayer
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND team_id = ?", gameID, teamID).
		Order("number ASC NULLS LAST").
		Find(&gamePlayers).Error
	if err != nil {
		return nil, err
	}
	return gamePlayers, nil
}

func (r *gamePlayerRepository) UpdateStats(ctx context.Context, id uuid.UUID, points, fouls int) (*domain.GamePlayer, error) {
	return r.patch(ctx, id, map[string]interface{}{"points": points, "fouls": fouls})
}

func (r *gamePlayerRepository) UpdateMissing(ctx context.Context, id uuid.UUID, missing bool) (*domain.GamePlayer, error) {
	return r.patch(ctx, id, map[string]interface{}{"missing": missing})
}

func (r *gamePlayerRepository) patch(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*domain.GamePlayer, error) {
	var gamePlayer domain.GamePlayer
	err := r.db.WithContext(ctx).First(&gamePlayer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Model(&gamePlayer).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return &gamePlayer, nil
}

func (r *gamePlayerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.GamePlayer{}, "id = ?", id).Error
}
