package postgres

import (
	"context"

	"github.com/gonzoleague/scoreboard/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *domain.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) GetCurrent(ctx context.Context) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.GameStatusActive).
		Order("created_at DESC").
		First(&game).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) List(ctx context.Context, status *domain.GameStatus) ([]*domain.Game, error) {
	var games []*domain.Game
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

// Mutate applies fn to the game row inside one transaction. On Postgres
// the row is locked for the duration, so two operators clicking at once
// serialize instead of losing an update. SQLite's single-writer lock
// gives the same guarantee without the clause.
func (r *gameRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(game *domain.Game) error) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&game, "id = ?", id).Error; err != nil {
			return err
		}
		if err := fn(&game); err != nil {
			return err
		}
		return tx.Save(&game).Error
	})
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", id).Delete(&domain.GamePlayer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Game{}, "id = ?", id).Error
	})
}
