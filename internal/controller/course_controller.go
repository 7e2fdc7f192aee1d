package controller

import (
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CourseController serves course management for teachers. Admins may act on any course.
type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

type CourseRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=2000"`
	Grade       int    `json:"grade" binding:"omitempty,min=1,max=12"`
	TeacherID   uint   `json:"teacherId"`
}

type EnrollRequest struct {
	StudentIDs []uint `json:"studentIds" binding:"required,min=1,dive,gt=0"`
}

// @Summary List courses
// @Description Teachers get their own courses, admins get every course
// @Tags Course
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/teacher/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	page, limit := util.ParsePage(ctx.Query("page"), ctx.Query("limit"))

	courses, total, err := c.CourseService.ListCourses(actor, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Paged(ctx, courses, total, page, limit)
}

// @Summary Create a course
// @Tags Course
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CourseRequest true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Router /api/teacher/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(actor, service.CourseInput(req))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags Course
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body CourseRequest true "Course"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/teacher/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(actor, id, service.CourseInput(req))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course
// @Tags Course
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.CourseService.DeleteCourse(actor, id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Students enrolled in a course
// @Tags Course
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Student}
// @Router /api/teacher/courses/{id}/students [get]
func (c *CourseController) ListStudents(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	students, err := c.CourseService.ListStudents(actor, id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, students)
}

// @Summary Enroll students in a course
// @Tags Course
// @Accept json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param body body EnrollRequest true "Student ids"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/students [post]
func (c *CourseController) EnrollStudents(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.CourseService.EnrollStudents(actor, id, req.StudentIDs); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"enrolled": len(req.StudentIDs)})
}

// @Summary Remove a student from a course
// @Tags Course
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/courses/{id}/students/{studentId} [delete]
func (c *CourseController) RemoveStudent(ctx *gin.Context) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return
	}
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}

	if err := c.CourseService.RemoveStudent(actor, id, studentID); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
