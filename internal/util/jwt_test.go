package util

import (
	"net/http/httptest"
	"reda_kids_backend/internal/model"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-with-enough-length-1234"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Username: "ana", Role: model.RoleStudent}
	user.ID = 42

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, model.RoleStudent, claims.Role)
	assert.Equal(t, "ana", claims.Username)
	assert.NotEmpty(t, claims.ID)
}

func TestParseJWTWrongSecret(t *testing.T) {
	user := &model.User{Username: "ana", Role: model.RoleStudent}
	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	user := &model.User{Username: "ana", Role: model.RoleTeacher}
	token, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestUserContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Nil(t, GetUserFromContext(c))

	SetUserInContext(c, &Claims{UserID: 7, Role: model.RoleAdmin})
	claims := GetUserFromContext(c)
	require.NotNil(t, claims)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestValidGameID(t *testing.T) {
	assert.True(t, ValidGameID("game-calculos"))
	assert.True(t, ValidGameID("conteo"))
	assert.False(t, ValidGameID("Game Calculos"))
	assert.False(t, ValidGameID("game-"))
	assert.False(t, ValidGameID(""))
}

func TestParsePage(t *testing.T) {
	page, limit := ParsePage("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = ParsePage("3", "500")
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)

	page, limit = ParsePage("-1", "x")
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}
