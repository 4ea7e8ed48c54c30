// Package httpctx carries the authenticated actor through the Gin context.
package httpctx

import (
	"github.com/gin-gonic/gin"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

const actorKey = "actor"

// SetActor stores the authenticated user for downstream handlers.
func SetActor(c *gin.Context, u *entity.User) {
	c.Set(actorKey, u)
	c.Set("userID", u.ID)
}

// Actor returns the authenticated user, or nil on anonymous requests.
func Actor(c *gin.Context) *entity.User {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}
