package controller

import (
	"reda_kids_backend/internal/service"
	"reda_kids_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// actorFrom writes 401 and returns false when the request carries no user.
func actorFrom(ctx *gin.Context) (service.Actor, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role}, true
}

// pathID writes 400 and returns false when the path parameter is not a positive id.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

func pathGameID(ctx *gin.Context) (string, bool) {
	gameID := ctx.Param("gameId")
	if !util.ValidGameID(gameID) {
		util.BadRequest(ctx, "invalid gameId")
		return "", false
	}
	return gameID, true
}
