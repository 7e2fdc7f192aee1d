package service

import (
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/util"

	"gorm.io/gorm"
)

type TeacherService struct {
	TeacherRepo *repository.TeacherRepository
	StudentRepo *repository.StudentRepository
}

func NewTeacherService(teacherRepo *repository.TeacherRepository, studentRepo *repository.StudentRepository) *TeacherService {
	return &TeacherService{
		TeacherRepo: teacherRepo,
		StudentRepo: studentRepo,
	}
}

func (s *TeacherService) GetByUserID(userID uint) (*model.Teacher, error) {
	teacher, err := s.TeacherRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}

func (s *TeacherService) ListTeachers(page, limit int) ([]model.Teacher, int64, error) {
	return s.TeacherRepo.List(page, limit)
}

// StudentForActor loads a student the actor is allowed to look at:
// admins see everyone, teachers only students enrolled in their courses.
func (s *TeacherService) StudentForActor(actor Actor, studentID uint) (*model.Student, error) {
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}

	if actor.IsAdmin() {
		return student, nil
	}
	if actor.Role != model.RoleTeacher {
		return nil, util.ErrPermissionDenied
	}

	teacher, err := s.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	ok, err := s.StudentRepo.IsTaughtBy(student.ID, teacher.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrPermissionDenied
	}
	return student, nil
}
