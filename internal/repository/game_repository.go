package repository

import (
	"context"
	"reda_kids_backend/internal/model"

	"gorm.io/gorm"
)

type GameRepository struct {
	DB *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{DB: db}
}

func (r *GameRepository) Create(game *model.Game) error {
	return r.DB.Omit("Levels").Create(game).Error
}

func (r *GameRepository) Update(game *model.Game) error {
	return r.DB.Omit("Levels").Save(game).Error
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*model.Game, error) {
	var game model.Game
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&game).Error
	return &game, err
}

func (r *GameRepository) List(ctx context.Context, enabledOnly bool) ([]model.Game, error) {
	var games []model.Game
	query := r.DB.WithContext(ctx).Model(&model.Game{})
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	err := query.Order("display_order ASC, id ASC").Find(&games).Error
	return games, err
}
