package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/VS237/momshop/internal/service"
	"github.com/VS237/momshop/pkg/auth"
)

// actorOf returns the authenticated caller, or an anonymous actor.
func actorOf(ctx *gin.Context) service.Actor {
	p, ok := auth.GetCurrentUser(ctx)
	if !ok {
		return service.Actor{}
	}
	return service.ActorFrom(p)
}

func queryInt(ctx *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(ctx.Query(key))
	if err != nil {
		return def
	}
	return v
}
