package postgres

import (
	"context"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type operatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) *operatorRepository {
	return &operatorRepository{db: db}
}

func (r *operatorRepository) Create(ctx context.Context, operator *domain.Operator) error {
	return r.db.WithContext(ctx).Create(operator).Error
}

func (r *operatorRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Operator, error) {
	var operator domain.Operator
	err := r.db.WithContext(ctx).First(&operator, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

func (r *operatorRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.Operator, error) {
	var operator domain.Operator
	err := r.db.WithContext(ctx).First(&operator, "display_name = ?", displayName).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *sessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.OperatorSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) DeleteByOperatorID(ctx context.Context, operatorID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("operator_id = ?", operatorID).Delete(&domain.OperatorSession{}).Error
}
