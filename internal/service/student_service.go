package service

import (
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	StudentRepo *repository.StudentRepository
	CourseRepo  *repository.CourseRepository
}

func NewStudentService(studentRepo *repository.StudentRepository, courseRepo *repository.CourseRepository) *StudentService {
	return &StudentService{
		StudentRepo: studentRepo,
		CourseRepo:  courseRepo,
	}
}

// GetByUserID returns the student profile of a user.
func (s *StudentService) GetByUserID(userID uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) GetByID(id uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *StudentService) ListCourses(userID uint) ([]model.Course, error) {
	student, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.CourseRepo.ListByStudent(student.ID)
}

func (s *StudentService) UpdateProfile(userID uint, grade *int, avatar *string) (*model.Student, error) {
	student, err := s.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if grade != nil {
		student.Grade = *grade
	}
	if avatar != nil {
		student.Avatar = *avatar
	}
	if err := s.StudentRepo.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) ListStudents(search string, page, limit int) ([]model.Student, int64, error) {
	return s.StudentRepo.List(search, page, limit)
}
