package controller

import (
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

type CreateGameRequest struct {
	ID           string `json:"id" binding:"required,gameid"`
	Name         string `json:"name" binding:"required,max=100"`
	Description  string `json:"description"`
	Enabled      *bool  `json:"enabled"`
	DisplayOrder *int   `json:"displayOrder"`
}

type UpdateGameRequest struct {
	Name         string `json:"name" binding:"max=100"`
	Description  string `json:"description"`
	Enabled      *bool  `json:"enabled"`
	DisplayOrder *int   `json:"displayOrder"`
}

type LevelRequest struct {
	Level           int                    `json:"level" binding:"required,min=1"`
	ActivitiesCount int                    `json:"activitiesCount" binding:"required,min=1"`
	Config          map[string]interface{} `json:"config"`
}

type UpdateLevelRequest struct {
	Level           int                    `json:"level" binding:"omitempty,min=1"`
	ActivitiesCount int                    `json:"activitiesCount" binding:"omitempty,min=1"`
	Config          map[string]interface{} `json:"config"`
}

// @Summary List games
// @Description Admins also get disabled games
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Game}
// @Router /api/games [get]
func (c *GameController) ListGames(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	includeDisabled := claims != nil && claims.Role == model.RoleAdmin

	games, err := c.GameService.ListGames(ctx.Request.Context(), includeDisabled)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, games)
}

// @Summary Get a game
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param gameId path string true "Game ID"
// @Success 200 {object} util.Response{data=model.Game}
// @Failure 404 {object} util.Response
// @Router /api/games/{gameId} [get]
func (c *GameController) GetGame(ctx *gin.Context) {
	gameID, ok := pathGameID(ctx)
	if !ok {
		return
	}

	game, err := c.GameService.GetGame(ctx.Request.Context(), gameID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, game)
}

// @Summary Levels of a game in ascending order
// @Tags Game
// @Produce json
// @Security BearerAuth
// @Param gameId path string true "Game ID"
// @Success 200 {object} util.Response{data=[]model.GameLevel}
// @Router /api/games/{gameId}/levels [get]
func (c *GameController) ListLevels(ctx *gin.Context) {
	gameID, ok := pathGameID(ctx)
	if !ok {
		return
	}

	levels, err := c.GameService.ListLevels(ctx.Request.Context(), gameID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, levels)
}

// @Summary Create a game
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateGameRequest true "Game"
// @Success 201 {object} util.Response{data=model.Game}
// @Failure 409 {object} util.Response
// @Router /api/admin/games [post]
func (c *GameController) CreateGame(ctx *gin.Context) {
	var req CreateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	game, err := c.GameService.CreateGame(ctx.Request.Context(), service.GameInput{
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		Enabled:      req.Enabled,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, game)
}

// @Summary Update a game
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameId path string true "Game ID"
// @Param body body UpdateGameRequest true "Fields"
// @Success 200 {object} util.Response{data=model.Game}
// @Router /api/admin/games/{gameId} [put]
func (c *GameController) UpdateGame(ctx *gin.Context) {
	gameID, ok := pathGameID(ctx)
	if !ok {
		return
	}

	var req UpdateGameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	game, err := c.GameService.UpdateGame(ctx.Request.Context(), gameID, service.GameInput{
		Name:         req.Name,
		Description:  req.Description,
		Enabled:      req.Enabled,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, game)
}

// @Summary Add a level to a game
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameId path string true "Game ID"
// @Param body body LevelRequest true "Level"
// @Success 201 {object} util.Response{data=model.GameLevel}
// @Failure 409 {object} util.Response "Level number already used"
// @Router /api/admin/games/{gameId}/levels [post]
func (c *GameController) CreateLevel(ctx *gin.Context) {
	gameID, ok := pathGameID(ctx)
	if !ok {
		return
	}

	var req LevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level, err := c.GameService.CreateLevel(ctx.Request.Context(), gameID, service.LevelInput(req))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, level)
}

// @Summary Update a level
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Level ID"
// @Param body body UpdateLevelRequest true "Fields"
// @Success 200 {object} util.Response{data=model.GameLevel}
// @Router /api/admin/levels/{id} [put]
func (c *GameController) UpdateLevel(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req UpdateLevelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	level, err := c.GameService.UpdateLevel(id, service.LevelInput(req))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, level)
}

// @Summary Delete a level
// @Tags Admin
// @Security BearerAuth
// @Param id path int true "Level ID"
// @Success 200 {object} util.Response
// @Router /api/admin/levels/{id} [delete]
func (c *GameController) DeleteLevel(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.GameService.DeleteLevel(id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
