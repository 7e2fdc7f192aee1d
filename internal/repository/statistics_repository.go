package repository

import (
	"context"
	"errors"
	"reda_kids_backend/internal/model"

	"gorm.io/gorm"
)

type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

func (r *StatisticsRepository) Create(ctx context.Context, stat *model.StudentStatistics) error {
	return r.DB.WithContext(ctx).Create(stat).Error
}

func (r *StatisticsRepository) UpdateMaxUnlockedLevel(ctx context.Context, id uint, level int) error {
	return r.DB.WithContext(ctx).
		Model(&model.StudentStatistics{}).
		Where("id = ?", id).
		Update("max_unlocked_level", level).
		Error
}

// ListByStudent returns rows oldest first; gameID may be empty for all games.
func (r *StatisticsRepository) ListByStudent(ctx context.Context, studentID uint, gameID string) ([]model.StudentStatistics, error) {
	var stats []model.StudentStatistics
	query := r.DB.WithContext(ctx).Where("student_id = ?", studentID)
	if gameID != "" {
		query = query.Where("game_id = ?", gameID)
	}
	err := query.Order("created_at ASC, id ASC").Find(&stats).Error
	return stats, err
}

// GetLastCompletedActivity returns nil when the student has not completed anything in the game.
func (r *StatisticsRepository) GetLastCompletedActivity(ctx context.Context, studentID uint, gameID string) (*model.LastActivity, error) {
	var stat model.StudentStatistics
	err := r.DB.WithContext(ctx).
		Select("level", "activity").
		Where("student_id = ? AND game_id = ? AND is_completed = ?", studentID, gameID, true).
		Order("level DESC, activity DESC").
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.LastActivity{Level: stat.Level, Activity: stat.Activity}, nil
}

// GetDistinctCompletedActivities counts distinct completed (level, activity) pairs.
func (r *StatisticsRepository) GetDistinctCompletedActivities(ctx context.Context, studentID uint, gameID string) (int64, error) {
	var count int64
	sub := r.DB.Model(&model.StudentStatistics{}).
		Distinct("level", "activity").
		Where("student_id = ? AND game_id = ? AND is_completed = ?", studentID, gameID, true)
	err := r.DB.WithContext(ctx).Table("(?) AS completed", sub).Count(&count).Error
	return count, err
}

// GetTotalPoints is the running point total of the student's latest row in the game.
func (r *StatisticsRepository) GetTotalPoints(ctx context.Context, studentID uint, gameID string) (int, error) {
	var stat model.StudentStatistics
	err := r.DB.WithContext(ctx).
		Select("total_points").
		Where("student_id = ? AND game_id = ?", studentID, gameID).
		Order("id DESC").
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return stat.TotalPoints, err
}
