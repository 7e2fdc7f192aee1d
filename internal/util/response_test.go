package util

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("load course: %w", ErrCourseNotFound), http.StatusNotFound},
		{ErrLevelExists, http.StatusConflict},
		{ErrPermissionDenied, http.StatusForbidden},
		{ErrUserDisabled, http.StatusUnauthorized},
		{ErrInvalidAttempt, http.StatusBadRequest},
		{ErrTeacherRequired, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
	}
}
