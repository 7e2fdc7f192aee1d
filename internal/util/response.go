package util

import (
	"errors"
	"net/http"
	"reda_kids_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, "created", data)
}

// Paged answers with one page of a listing.
func Paged(c *gin.Context, list interface{}, total int64, page, limit int) {
	Success(c, PageResponse{List: list, Total: total, Page: page, Limit: limit})
}

func Error(c *gin.Context, status int, message string) {
	respond(c, status, message, nil)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Request failed",
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString("request_id")),
	)
	Error(c, http.StatusInternalServerError, "Internal server error")
}

var statusByError = []struct {
	status int
	errs   []error
}{
	{http.StatusNotFound, []error{ErrUserNotFound, ErrStudentNotFound, ErrTeacherNotFound, ErrCourseNotFound, ErrGameNotFound, ErrLevelNotFound}},
	{http.StatusConflict, []error{ErrUsernameTaken, ErrEmailRegistered, ErrGameExists, ErrLevelExists}},
	{http.StatusForbidden, []error{ErrPermissionDenied}},
	{http.StatusUnauthorized, []error{ErrInvalidCredentials, ErrUserDisabled}},
	{http.StatusBadRequest, []error{ErrInvalidRole, ErrInvalidAttempt, ErrTeacherRequired}},
}

// HandleError answers with the status matching a known service error, or 500.
func HandleError(c *gin.Context, err error) {
	for _, group := range statusByError {
		for _, known := range group.errs {
			if errors.Is(err, known) {
				Error(c, group.status, err.Error())
				return
			}
		}
	}
	LogInternalError(c, err)
}
