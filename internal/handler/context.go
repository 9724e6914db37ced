package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospiflow/internal/model"
)

const (
	ContextActor = "actor"
	ContextToken = "session_token"
)

// CurrentActor returns the actor set by the authentication middleware.
func CurrentActor(c *gin.Context) *model.Actor {
	v, ok := c.Get(ContextActor)
	if !ok {
		return nil
	}
	actor, _ := v.(*model.Actor)
	return actor
}

// ActorID is the id of the current actor or "" on public routes.
func ActorID(c *gin.Context) string {
	if a := CurrentActor(c); a != nil {
		return a.ID
	}
	return ""
}
