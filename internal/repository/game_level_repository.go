package repository

import (
	"context"
	"reda_kids_backend/internal/model"

	"gorm.io/gorm"
)

type GameLevelRepository struct {
	DB *gorm.DB
}

func NewGameLevelRepository(db *gorm.DB) *GameLevelRepository {
	return &GameLevelRepository{DB: db}
}

func (r *GameLevelRepository) Create(level *model.GameLevel) error {
	return r.DB.Create(level).Error
}

func (r *GameLevelRepository) Update(level *model.GameLevel) error {
	return r.DB.Save(level).Error
}

func (r *GameLevelRepository) Delete(level *model.GameLevel) error {
	return r.DB.Delete(level).Error
}

func (r *GameLevelRepository) FindByID(id uint) (*model.GameLevel, error) {
	var level model.GameLevel
	err := r.DB.First(&level, id).Error
	return &level, err
}

func (r *GameLevelRepository) FindByGameAndLevel(gameID string, level int) (*model.GameLevel, error) {
	var l model.GameLevel
	err := r.DB.Where("game_id = ? AND level = ?", gameID, level).First(&l).Error
	return &l, err
}

// FindByGameID returns the levels of a game in no particular order.
func (r *GameLevelRepository) FindByGameID(ctx context.Context, gameID string) ([]model.GameLevel, error) {
	var levels []model.GameLevel
	err := r.DB.WithContext(ctx).Where("game_id = ?", gameID).Find(&levels).Error
	return levels, err
}

// GetTotalActivitiesCount sums activities over every level of the game.
func (r *GameLevelRepository) GetTotalActivitiesCount(ctx context.Context, gameID string) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).
		Model(&model.GameLevel{}).
		Select("COALESCE(SUM(activities_count), 0)").
		Where("game_id = ?", gameID).
		Scan(&total).Error
	return total, err
}
