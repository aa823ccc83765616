package postgres

import (
	"context"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bracketRepository struct {
	db *gorm.DB
}

func NewBracketRepository(db *gorm.DB) *bracketRepository {
	return &bracketRepository{db: db}
}

func (r *bracketRepository) GetAll(ctx context.Context) ([]*domain.BracketSlot, error) {
	var slots []*domain.BracketSlot
	err := r.db.WithContext(ctx).
		Order("round DESC, position ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *bracketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.BracketSlot, error) {
	var slot domain.BracketSlot
	err := r.db.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *bracketRepository) ReplaceAll(ctx context.Context, slots []*domain.BracketSlot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.BracketSlot{}).Error; err != nil {
			return err
		}
		return tx.Create(slots).Error
	})
}

func (r *bracketRepository) Update(ctx context.Context, slot *domain.BracketSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *bracketRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.BracketSlot{}).Error
}
