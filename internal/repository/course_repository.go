package repository

import (
	"reda_kids_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Omit("Teacher", "Students").Create(course).Error
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Omit("Teacher", "Students").Save(course).Error
}

// Delete removes the enrollments and soft-deletes the course.
func (r *CourseRepository) Delete(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(course).Association("Students").Clear(); err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Teacher.User").First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) ListByTeacher(teacherID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("teacher_id = ?", teacherID).Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByStudent(studentID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN course_students ON course_students.course_id = courses.id").
		Where("course_students.student_id = ?", studentID).
		Preload("Teacher.User").
		Order("courses.name ASC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) List(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	if err := r.DB.Model(&model.Course{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Preload("Teacher.User").Order("id DESC").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) AddStudents(course *model.Course, students []model.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.DB.Model(course).Omit("Students.*").Association("Students").Append(students)
}

func (r *CourseRepository) RemoveStudent(course *model.Course, student *model.Student) error {
	return r.DB.Model(course).Association("Students").Delete(student)
}

func (r *CourseRepository) ListStudents(courseID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.DB.
		Joins("JOIN course_students ON course_students.student_id = students.id").
		Where("course_students.course_id = ?", courseID).
		Preload("User").
		Order("students.id ASC").
		Find(&students).Error
	return students, err
}
