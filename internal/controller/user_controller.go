package controller

import (
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserController serves the admin account management endpoints.
type UserController struct {
	UserService    *service.UserService
	StudentService *service.StudentService
	TeacherService *service.TeacherService
}

func NewUserController(userService *service.UserService, studentService *service.StudentService, teacherService *service.TeacherService) *UserController {
	return &UserController{
		UserService:    userService,
		StudentService: studentService,
		TeacherService: teacherService,
	}
}

type CreateUserRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	Username  string `json:"username" binding:"required,min=3,max=50,username"`
	Email     string `json:"email" binding:"omitempty,email,max=100"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	Role      string `json:"role" binding:"required,oneof=student teacher admin"`
	Grade     int    `json:"grade" binding:"omitempty,min=1,max=12"`
	Specialty string `json:"specialty" binding:"max=100"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=100"`
}

type SetDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// GetUsers godoc
// @Summary List users
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Param   role query string false "Role filter"
// @Param   search query string false "Name, username or email"
// @Param   disabled query bool false "Disabled filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	filter := repository.UserFilter{
		Role:   ctx.Query("role"),
		Search: ctx.Query("search"),
	}
	if v := ctx.Query("disabled"); v != "" {
		disabled, err := strconv.ParseBool(v)
		if err != nil {
			util.BadRequest(ctx, "invalid disabled filter")
			return
		}
		filter.Disabled = &disabled
	}

	users, total, err := c.UserService.GetUsers(filter, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Paged(ctx, users, total, page, limit)
}

// CreateUser godoc
// @Summary Create a user of any role
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateUserRequest true "User"
// @Success 201 {object} util.Response{data=model.User}
// @Failure 409 {object} util.Response
// @Router /api/admin/users [post]
func (c *UserController) CreateUser(ctx *gin.Context) {
	var req CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.CreateUser(service.CreateUserInput{
		Name:      req.Name,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Role:      model.UserRole(req.Role),
		Grade:     req.Grade,
		Specialty: req.Specialty,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, user)
}

// UpdateUser godoc
// @Summary Update name or email of a user
// @Tags Admin
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "User ID"
// @Param   body body UpdateUserRequest true "Fields"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(id, service.UpdateUserInput{Name: req.Name, Email: req.Email})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// DeleteUser godoc
// @Summary Delete a user and its profile
// @Tags Admin
// @Security BearerAuth
// @Param   id path int true "User ID"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.UserService.DeleteUser(actor.UserID, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// SetDisabled godoc
// @Summary Disable or enable a user
// @Tags Admin
// @Accept  json
// @Security BearerAuth
// @Param   id path int true "User ID"
// @Param   body body SetDisabledRequest true "State"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disable [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDisabled(actor.UserID, id, req.Disabled); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"id": id, "disabled": req.Disabled})
}

// ResetPassword godoc
// @Summary Set a new password for a user
// @Tags Admin
// @Accept  json
// @Security BearerAuth
// @Param   id path int true "User ID"
// @Param   body body ResetPasswordRequest true "Password"
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/reset-password [put]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.ResetPassword(id, req.Password); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListStudents godoc
// @Summary List students
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "Page"
// @Param   limit query int false "Page size"
// @Param   search query string false "Name or username"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	students, total, err := c.StudentService.ListStudents(ctx.Query("search"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Paged(ctx, students, total, page, limit)
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/admin/teachers [get]
func (c *UserController) ListTeachers(ctx *gin.Context) {
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	teachers, total, err := c.TeacherService.ListTeachers(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Paged(ctx, teachers, total, page, limit)
}
