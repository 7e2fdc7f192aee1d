package service

import (
	"reda_kids_backend/internal/config"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService() (*AuthService, *mockUserStore) {
	store := new(mockUserStore)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	return NewAuthService(store, cfg, nil), store
}

func TestRegister(t *testing.T) {
	t.Run("creates a student", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("FindByUsername", "ana").Return(nil, gorm.ErrRecordNotFound)
		store.On("FindByEmail", "ana@example.com").Return(nil, gorm.ErrRecordNotFound)
		store.On("CreateStudent", mock.AnythingOfType("*model.User"), mock.AnythingOfType("*model.Student")).Return(nil)

		user, err := svc.Register(RegisterInput{Name: "Ana", Username: " Ana ", Email: "ANA@example.com", Password: "secret123"})

		require.NoError(t, err)
		assert.Equal(t, "ana", user.Username)
		assert.Equal(t, model.RoleStudent, user.Role)
		require.NotNil(t, user.Email)
		assert.Equal(t, "ana@example.com", *user.Email)
		assert.NotEqual(t, "secret123", user.Password)

		student := store.Calls[len(store.Calls)-1].Arguments.Get(1).(*model.Student)
		assert.Equal(t, 1, student.Grade)
	})

	t.Run("username taken", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("FindByUsername", "ana").Return(&model.User{Username: "ana"}, nil)

		_, err := svc.Register(RegisterInput{Name: "Ana", Username: "ana", Password: "secret123"})

		assert.ErrorIs(t, err, util.ErrUsernameTaken)
	})
}

func TestLogin(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		svc, store := newTestAuthService()
		user := &model.User{Username: "ana", Password: hashed, Role: model.RoleStudent}
		user.ID = 3
		store.On("FindByUsername", "ana").Return(user, nil)
		store.On("UpdateLastLogin", uint(3)).Return(nil)

		token, got, err := svc.Login("ana", "secret123")

		require.NoError(t, err)
		assert.Same(t, user, got)
		claims, err := util.ParseJWT(token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, uint(3), claims.UserID)
		assert.Equal(t, model.RoleStudent, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("FindByUsername", "ana").Return(&model.User{Username: "ana", Password: hashed}, nil)

		_, _, err := svc.Login("ana", "nope")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("FindByUsername", "bob").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login("bob", "secret123")

		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("disabled user", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("FindByUsername", "ana").Return(&model.User{Username: "ana", Password: hashed, Disabled: true}, nil)

		_, _, err := svc.Login("ana", "secret123")

		assert.ErrorIs(t, err, util.ErrUserDisabled)
	})
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("skips when an admin exists", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("CountByRole", model.RoleAdmin).Return(int64(1), nil)

		require.NoError(t, svc.EnsureAdmin(config.AdminConfig{Username: "admin", Password: "admin12345"}))
		store.AssertNotCalled(t, "CreateAdmin", mock.Anything, mock.Anything)
	})

	t.Run("creates the configured admin", func(t *testing.T) {
		svc, store := newTestAuthService()
		store.On("CountByRole", model.RoleAdmin).Return(int64(0), nil)
		store.On("CreateAdmin", mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "admin" && u.Role == model.RoleAdmin && u.Name == "Admin"
		}), mock.Anything).Return(nil)

		require.NoError(t, svc.EnsureAdmin(config.AdminConfig{Username: "Admin", Password: "admin12345"}))
		store.AssertExpectations(t)
	})
}
