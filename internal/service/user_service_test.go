package service

import (
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func userWithID(id uint, role model.UserRole) *model.User {
	u := &model.User{Username: "u", Role: role}
	u.ID = id
	return u
}

func TestAdminCannotLockThemselvesOut(t *testing.T) {
	store := new(mockUserStore)
	svc := NewUserService(store)

	assert.ErrorIs(t, svc.SetDisabled(1, 1, true), util.ErrPermissionDenied)
	assert.ErrorIs(t, svc.DeleteUser(1, 1), util.ErrPermissionDenied)

	store.AssertNotCalled(t, "SetDisabled", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestSetDisabled(t *testing.T) {
	t.Run("disables another user", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByID", uint(7)).Return(userWithID(7, model.RoleStudent), nil)
		store.On("SetDisabled", uint(7), true).Return(nil)

		require.NoError(t, NewUserService(store).SetDisabled(1, 7, true))
		store.AssertExpectations(t)
	})

	t.Run("re-enabling oneself is allowed", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByID", uint(1)).Return(userWithID(1, model.RoleAdmin), nil)
		store.On("SetDisabled", uint(1), false).Return(nil)

		require.NoError(t, NewUserService(store).SetDisabled(1, 1, false))
	})

	t.Run("unknown user", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByID", uint(9)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, NewUserService(store).SetDisabled(1, 9, true), util.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	store := new(mockUserStore)
	store.On("FindByID", uint(7)).Return(userWithID(7, model.RoleTeacher), nil)
	store.On("Delete", uint(7)).Return(nil)

	require.NoError(t, NewUserService(store).DeleteUser(1, 7))
	store.AssertExpectations(t)
}

func TestCreateUser(t *testing.T) {
	t.Run("teacher gets a teacher profile", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByUsername", "profe").Return(nil, gorm.ErrRecordNotFound)
		store.On("CreateTeacher", mock.AnythingOfType("*model.User"), mock.MatchedBy(func(p *model.Teacher) bool {
			return p.Specialty == "math"
		})).Return(nil)

		user, err := NewUserService(store).CreateUser(CreateUserInput{
			Name: "Profe", Username: "Profe", Password: "secret123", Role: model.RoleTeacher, Specialty: "math",
		})

		require.NoError(t, err)
		assert.Equal(t, "profe", user.Username)
		store.AssertExpectations(t)
	})

	t.Run("invalid role", func(t *testing.T) {
		store := new(mockUserStore)

		_, err := NewUserService(store).CreateUser(CreateUserInput{Username: "x", Password: "secret123", Role: "janitor"})

		assert.ErrorIs(t, err, util.ErrInvalidRole)
	})

	t.Run("email already registered", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByUsername", "ana").Return(nil, gorm.ErrRecordNotFound)
		store.On("FindByEmail", "ana@example.com").Return(userWithID(3, model.RoleStudent), nil)

		_, err := NewUserService(store).CreateUser(CreateUserInput{
			Username: "ana", Email: "ana@example.com", Password: "secret123", Role: model.RoleStudent,
		})

		assert.ErrorIs(t, err, util.ErrEmailRegistered)
	})
}
