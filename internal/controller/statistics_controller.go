package controller

import (
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentLookup interface {
	GetByUserID(userID uint) (*model.Student, error)
}

type StudentAccess interface {
	StudentForActor(actor service.Actor, studentID uint) (*model.Student, error)
}

// StatisticsController serves attempts, summaries and progress. Students act on
// their own profile; teachers reach students through StudentAccess.
type StatisticsController struct {
	StatisticsService *service.StatisticsService
	Students          StudentLookup
	Access            StudentAccess
}

func NewStatisticsController(statisticsService *service.StatisticsService, students StudentLookup, access StudentAccess) *StatisticsController {
	return &StatisticsController{
		StatisticsService: statisticsService,
		Students:          students,
		Access:            access,
	}
}

type AttemptRequest struct {
	GameID         string `json:"gameId" binding:"required,gameid"`
	Level          int    `json:"level" binding:"required,min=1"`
	Activity       int    `json:"activity" binding:"required,min=1"`
	Points         int    `json:"points" binding:"min=0"`
	CorrectAnswers *int   `json:"correctAnswers" binding:"omitempty,min=0"`
	TotalQuestions *int   `json:"totalQuestions" binding:"omitempty,min=0"`
	CompletionTime *int   `json:"completionTime" binding:"omitempty,min=0"`
	IsCompleted    bool   `json:"isCompleted"`
}

// @Summary Record a game attempt
// @Tags Statistics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AttemptRequest true "Attempt"
// @Success 201 {object} util.Response{data=model.StudentStatistics}
// @Failure 400 {object} util.Response
// @Router /api/statistics [post]
func (c *StatisticsController) SubmitAttempt(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}

	var req AttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	stat, err := c.StatisticsService.SubmitAttempt(ctx.Request.Context(), student.ID, service.AttemptInput(req))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, stat)
}

// @Summary Own attempts, oldest first
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param gameId query string false "Only this game"
// @Success 200 {object} util.Response{data=[]model.StudentStatistics}
// @Router /api/statistics [get]
func (c *StatisticsController) ListStatistics(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}
	c.listStatistics(ctx, student.ID)
}

// @Summary Own dashboard summary
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=model.AggregatedStudentStats}
// @Router /api/students/me/summary [get]
func (c *StatisticsController) MySummary(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}
	c.summary(ctx, student.ID)
}

// @Summary Own progress in every enabled game
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.GameProgressEntry}
// @Router /api/students/me/progress [get]
func (c *StatisticsController) MyProgress(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}

	entries, err := c.StatisticsService.AllProgress(ctx.Request.Context(), student.ID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// @Summary Own progress in one game
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param gameId path string true "Game ID"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Router /api/students/me/progress/{gameId} [get]
func (c *StatisticsController) MyGameProgress(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}
	c.gameProgress(ctx, student.ID)
}

// @Summary Highest playable level in a game
// @Tags Statistics
// @Produce json
// @Security BearerAuth
// @Param gameId path string true "Game ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/students/me/max-level/{gameId} [get]
func (c *StatisticsController) MyMaxLevel(ctx *gin.Context) {
	student, ok := c.currentStudent(ctx)
	if !ok {
		return
	}
	gameID, ok := pathGameID(ctx)
	if !ok {
		return
	}

	level, err := c.StatisticsService.MaxUnlockedLevel(ctx.Request.Context(), student.ID, gameID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"gameId": gameID, "maxUnlockedLevel": level})
}

// @Summary Summary of one of the teacher's students
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Success 200 {object} util.Response{data=model.AggregatedStudentStats}
// @Failure 403 {object} util.Response
// @Router /api/teacher/students/{studentId}/summary [get]
func (c *StatisticsController) StudentSummary(ctx *gin.Context) {
	student, ok := c.accessibleStudent(ctx)
	if !ok {
		return
	}
	c.summary(ctx, student.ID)
}

// @Summary Progress of one of the teacher's students in a game
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param gameId path string true "Game ID"
// @Success 200 {object} util.Response{data=model.StudentProgress}
// @Router /api/teacher/students/{studentId}/progress/{gameId} [get]
func (c *StatisticsController) StudentGameProgress(ctx *gin.Context) {
	student, ok := c.accessibleStudent(ctx)
	if !ok {
		return
	}
	c.gameProgress(ctx, student.ID)
}

// @Summary Attempts of one of the teacher's students
// @Tags Teacher
// @Produce json
// @Security BearerAuth
// @Param studentId path int true "Student ID"
// @Param gameId query string false "Only this game"
// @Success 200 {object} util.Response{data=[]model.StudentStatistics}
// @Router /api/teacher/students/{studentId}/statistics [get]
func (c *StatisticsController) StudentStatistics(ctx *gin.Context) {
	student, ok := c.accessibleStudent(ctx)
	if !ok {
		return
	}
	c.listStatistics(ctx, student.ID)
}

func (c *StatisticsController) listStatistics(ctx *gin.Context, studentID uint) {
	gameID := ctx.Query("gameId")
	if gameID != "" && !util.ValidGameID(gameID) {
		util.BadRequest(ctx, "invalid gameId")
		return
	}

	stats, err := c.StatisticsService.ListStatistics(ctx.Request.Context(), studentID, gameID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

func (c *StatisticsController) summary(ctx *gin.Context, studentID uint) {
	summary, err := c.StatisticsService.Summary(ctx.Request.Context(), studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

func (c *StatisticsController) gameProgress(ctx *gin.Context, studentID uint) {
	gameID, ok := pathGameID(ctx)
	if !ok {
		return
	}

	progress, err := c.StatisticsService.Progress(ctx.Request.Context(), studentID, gameID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

func (c *StatisticsController) currentStudent(ctx *gin.Context) (*model.Student, bool) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return nil, false
	}
	student, err := c.Students.GetByUserID(actor.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return nil, false
	}
	return student, true
}

func (c *StatisticsController) accessibleStudent(ctx *gin.Context) (*model.Student, bool) {
	actor, ok := actorFrom(ctx)
	if !ok {
		return nil, false
	}
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return nil, false
	}
	student, err := c.Access.StudentForActor(actor, studentID)
	if err != nil {
		util.HandleError(ctx, err)
		return nil, false
	}
	return student, true
}
