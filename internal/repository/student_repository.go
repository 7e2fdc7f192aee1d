package repository

import (
	"reda_kids_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) FindByID(id uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("User").First(&student, id).Error
	return &student, err
}

func (r *StudentRepository) FindByUserID(userID uint) (*model.Student, error) {
	var student model.Student
	err := r.DB.Preload("User").Where("user_id = ?", userID).First(&student).Error
	return &student, err
}

func (r *StudentRepository) Update(student *model.Student) error {
	return r.DB.Omit("User", "Courses").Save(student).Error
}

func (r *StudentRepository) List(search string, page, limit int) ([]model.Student, int64, error) {
	var students []model.Student
	var total int64

	query := r.DB.Model(&model.Student{}).Joins("JOIN users ON users.id = students.user_id AND users.deleted_at IS NULL")
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("users.name LIKE ? OR users.username LIKE ?", term, term)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("User").Order("students.id ASC").Offset(offset).Limit(limit).Find(&students).Error
	return students, total, err
}

// IsTaughtBy reports whether the student is enrolled in any course of the teacher.
func (r *StudentRepository) IsTaughtBy(studentID, teacherID uint) (bool, error) {
	var count int64
	err := r.DB.Table("course_students").
		Joins("JOIN courses ON courses.id = course_students.course_id AND courses.deleted_at IS NULL").
		Where("course_students.student_id = ? AND courses.teacher_id = ?", studentID, teacherID).
		Count(&count).Error
	return count > 0, err
}
