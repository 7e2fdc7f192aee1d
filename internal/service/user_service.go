package service

import (
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

// UserAdminStore adds the account administration queries to UserStore.
type UserAdminStore interface {
	UserStore
	CreateTeacher(user *model.User, teacher *model.Teacher) error
	Update(user *model.User) error
	SetDisabled(userID uint, disabled bool) error
	Delete(userID uint) error
	List(filter repository.UserFilter, page, limit int) ([]model.User, int64, error)
}

// UserService handles account administration.
type UserService struct {
	UserRepo UserAdminStore
}

func NewUserService(userRepo UserAdminStore) *UserService {
	return &UserService{
		UserRepo: userRepo,
	}
}

type CreateUserInput struct {
	Name      string
	Username  string
	Email     string
	Password  string
	Role      model.UserRole
	Grade     int
	Specialty string
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

func (s *UserService) GetUsers(filter repository.UserFilter, page, limit int) ([]model.User, int64, error) {
	return s.UserRepo.List(filter, page, limit)
}

func (s *UserService) GetUser(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateUser creates an account of any role together with its profile row.
func (s *UserService) CreateUser(in CreateUserInput) (*model.User, error) {
	if !in.Role.Valid() {
		return nil, util.ErrInvalidRole
	}

	username := strings.ToLower(strings.TrimSpace(in.Username))
	if _, err := s.UserRepo.FindByUsername(username); err == nil {
		return nil, util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(in.Name),
		Username: username,
		Role:     in.Role,
	}

	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		if _, err := s.UserRepo.FindByEmail(email); err == nil {
			return nil, util.ErrEmailRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user.Email = &email
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	switch in.Role {
	case model.RoleStudent:
		grade := in.Grade
		if grade <= 0 {
			grade = util.DefaultGrade
		}
		err = s.UserRepo.CreateStudent(user, &model.Student{Grade: grade})
	case model.RoleTeacher:
		err = s.UserRepo.CreateTeacher(user, &model.Teacher{Specialty: in.Specialty})
	case model.RoleAdmin:
		err = s.UserRepo.CreateAdmin(user, &model.Admin{})
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(id uint, in UpdateUserInput) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email == "" {
			user.Email = nil
		} else {
			existing, err := s.UserRepo.FindByEmail(email)
			if err == nil && existing.ID != user.ID {
				return nil, util.ErrEmailRegistered
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = &email
		}
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ResetPassword(id uint, password string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.UserRepo.Update(user)
}

// SetDisabled blocks or unblocks logins. Admins cannot disable themselves.
func (s *UserService) SetDisabled(actorID, id uint, disabled bool) error {
	if actorID == id && disabled {
		return util.ErrPermissionDenied
	}
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.UserRepo.SetDisabled(id, disabled)
}

func (s *UserService) DeleteUser(actorID, id uint) error {
	if actorID == id {
		return util.ErrPermissionDenied
	}
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.UserRepo.Delete(id)
}
