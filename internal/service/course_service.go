package service

import (
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

// CourseStore is the course persistence used by CourseService.
type CourseStore interface {
	Create(course *model.Course) error
	Update(course *model.Course) error
	Delete(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	ListByTeacher(teacherID uint) ([]model.Course, error)
	List(page, limit int) ([]model.Course, int64, error)
	AddStudents(course *model.Course, students []model.Student) error
	RemoveStudent(course *model.Course, student *model.Student) error
	ListStudents(courseID uint) ([]model.Student, error)
}

type TeacherFinder interface {
	FindByID(id uint) (*model.Teacher, error)
	FindByUserID(userID uint) (*model.Teacher, error)
}

type StudentFinder interface {
	FindByID(id uint) (*model.Student, error)
}

type CourseService struct {
	CourseRepo  CourseStore
	TeacherRepo TeacherFinder
	StudentRepo StudentFinder
}

func NewCourseService(courseRepo CourseStore, teacherRepo TeacherFinder, studentRepo StudentFinder) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		TeacherRepo: teacherRepo,
		StudentRepo: studentRepo,
	}
}

type CourseInput struct {
	Name        string
	Description string
	Grade       int
	// required for admins; teachers always own what they create
	TeacherID uint
}

func (s *CourseService) CreateCourse(actor Actor, in CourseInput) (*model.Course, error) {
	teacherID, err := s.ownerFor(actor, in.TeacherID)
	if err != nil {
		return nil, err
	}

	course := &model.Course{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Grade:       in.Grade,
		TeacherID:   teacherID,
	}
	if course.Grade <= 0 {
		course.Grade = util.DefaultGrade
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(actor Actor, id uint, in CourseInput) (*model.Course, error) {
	course, err := s.courseForActor(actor, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		course.Name = name
	}
	course.Description = in.Description
	if in.Grade > 0 {
		course.Grade = in.Grade
	}
	if actor.IsAdmin() && in.TeacherID != 0 && in.TeacherID != course.TeacherID {
		if _, err := s.findTeacher(in.TeacherID); err != nil {
			return nil, err
		}
		course.TeacherID = in.TeacherID
		course.Teacher = nil
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(actor Actor, id uint) error {
	course, err := s.courseForActor(actor, id)
	if err != nil {
		return err
	}
	return s.CourseRepo.Delete(course)
}

// ListCourses returns the actor's own courses, or every course for admins.
func (s *CourseService) ListCourses(actor Actor, page, limit int) ([]model.Course, int64, error) {
	if actor.IsAdmin() {
		return s.CourseRepo.List(page, limit)
	}
	teacher, err := s.teacherOf(actor)
	if err != nil {
		return nil, 0, err
	}
	courses, err := s.CourseRepo.ListByTeacher(teacher.ID)
	if err != nil {
		return nil, 0, err
	}
	return courses, int64(len(courses)), nil
}

func (s *CourseService) ListStudents(actor Actor, courseID uint) ([]model.Student, error) {
	if _, err := s.courseForActor(actor, courseID); err != nil {
		return nil, err
	}
	return s.CourseRepo.ListStudents(courseID)
}

// EnrollStudents adds students to a course. Already enrolled students are kept.
func (s *CourseService) EnrollStudents(actor Actor, courseID uint, studentIDs []uint) error {
	course, err := s.courseForActor(actor, courseID)
	if err != nil {
		return err
	}

	students := make([]model.Student, 0, len(studentIDs))
	for _, id := range studentIDs {
		student, err := s.StudentRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrStudentNotFound
			}
			return err
		}
		students = append(students, *student)
	}
	return s.CourseRepo.AddStudents(course, students)
}

func (s *CourseService) RemoveStudent(actor Actor, courseID, studentID uint) error {
	course, err := s.courseForActor(actor, courseID)
	if err != nil {
		return err
	}
	student, err := s.StudentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrStudentNotFound
		}
		return err
	}
	return s.CourseRepo.RemoveStudent(course, student)
}

func (s *CourseService) courseForActor(actor Actor, id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if actor.IsAdmin() {
		return course, nil
	}

	teacher, err := s.teacherOf(actor)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacher.ID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *CourseService) ownerFor(actor Actor, requested uint) (uint, error) {
	if actor.IsAdmin() {
		if requested == 0 {
			return 0, util.ErrTeacherRequired
		}
		teacher, err := s.findTeacher(requested)
		if err != nil {
			return 0, err
		}
		return teacher.ID, nil
	}
	teacher, err := s.teacherOf(actor)
	if err != nil {
		return 0, err
	}
	return teacher.ID, nil
}

func (s *CourseService) teacherOf(actor Actor) (*model.Teacher, error) {
	if actor.Role != model.RoleTeacher {
		return nil, util.ErrPermissionDenied
	}
	teacher, err := s.TeacherRepo.FindByUserID(actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}

func (s *CourseService) findTeacher(id uint) (*model.Teacher, error) {
	teacher, err := s.TeacherRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeacherNotFound
		}
		return nil, err
	}
	return teacher, nil
}
