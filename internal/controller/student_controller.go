package controller

import (
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

type UpdateStudentProfileRequest struct {
	Grade  *int    `json:"grade" binding:"omitempty,min=1,max=12"`
	Avatar *string `json:"avatar" binding:"omitempty,max=255"`
}

// @Summary Own student profile
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.RoleStudent}
// @Router /api/students/me [get]
func (c *StudentController) Me(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	student, err := c.StudentService.GetByUserID(actor.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// @Summary Update grade or avatar
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateStudentProfileRequest true "Fields"
// @Success 200 {object} util.Response{data=model.RoleStudent}
// @Router /api/students/me [put]
func (c *StudentController) UpdateMe(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req UpdateStudentProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	student, err := c.StudentService.UpdateProfile(actor.UserID, req.Grade, req.Avatar)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, student)
}

// @Summary Courses the student is enrolled in
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/students/me/courses [get]
func (c *StudentController) MyCourses(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	courses, err := c.StudentService.ListCourses(actor.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}
