package service

import (
	"errors"
	"fmt"
	"reda_kids_backend/internal/config"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/util"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserStore is the part of the user repository the auth flow needs.
type UserStore interface {
	FindByID(id uint) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	CreateStudent(user *model.User, student *model.Student) error
	CreateAdmin(user *model.User, admin *model.Admin) error
	UpdateLastLogin(userID uint) error
	CountByRole(role model.UserRole) (int64, error)
}

type AuthService struct {
	UserRepo UserStore
	Cfg      *config.Config
	log      *zap.Logger
}

func NewAuthService(userRepo UserStore, cfg *config.Config, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
		log:      log,
	}
}

type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Grade    int
}

// Register signs up a student. Teachers and admins are created by an admin.
func (s *AuthService) Register(in RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if err := s.ensureUsernameFree(username); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != "" {
		if err := s.ensureEmailFree(email); err != nil {
			return nil, err
		}
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     strings.TrimSpace(in.Name),
		Username: username,
		Password: hashed,
		Role:     model.RoleStudent,
	}
	if email != "" {
		user.Email = &email
	}

	grade := in.Grade
	if grade <= 0 {
		grade = util.DefaultGrade
	}
	if err := s.UserRepo.CreateStudent(user, &model.Student{Grade: grade}); err != nil {
		return nil, err
	}

	s.log.Info("Student registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks username and password and issues a token.
func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}
	if user.Disabled {
		return "", nil, util.ErrUserDisabled
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		s.log.Warn("Failed to update last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return token, user, nil
}

func (s *AuthService) GetCurrentUser(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the configured administrator when no admin exists yet.
func (s *AuthService) EnsureAdmin(cfg config.AdminConfig) error {
	count, err := s.UserRepo.CountByRole(model.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.Username == "" || cfg.Password == "" {
		s.log.Warn("No admin account exists and no bootstrap admin is configured")
		return nil
	}

	hashed, err := HashPassword(cfg.Password)
	if err != nil {
		return err
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Username
	}

	admin := &model.User{
		Name:     name,
		Username: strings.ToLower(cfg.Username),
		Password: hashed,
		Role:     model.RoleAdmin,
	}
	if err := s.UserRepo.CreateAdmin(admin, &model.Admin{Super: true}); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	s.log.Info("Bootstrap admin created", zap.String("username", admin.Username))
	return nil
}

func (s *AuthService) ensureUsernameFree(username string) error {
	_, err := s.UserRepo.FindByUsername(username)
	if err == nil {
		return util.ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) ensureEmailFree(email string) error {
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return util.ErrEmailRegistered
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
