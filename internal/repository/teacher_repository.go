package repository

import (
	"reda_kids_backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

func (r *TeacherRepository) FindByID(id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.DB.Preload("User").First(&teacher, id).Error
	return &teacher, err
}

func (r *TeacherRepository) FindByUserID(userID uint) (*model.Teacher, error) {
	var teacher model.Teacher
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&teacher).Error
	return &teacher, err
}

func (r *TeacherRepository) List(page, limit int) ([]model.Teacher, int64, error) {
	var teachers []model.Teacher
	var total int64

	if err := r.DB.Model(&model.Teacher{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Preload("User").Order("id ASC").Offset(offset).Limit(limit).Find(&teachers).Error
	return teachers, total, err
}
