package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/interface/httpctx"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
	"github.com/ramah83/ST-System-Bank/pkg/response"
)

type sessionView struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// Auth validates the access token cookie and requires a live session in
// Redis. On success the actor is placed in the Gin context for handlers.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		var sess sessionView
		found, err := helpers.RedisGetJSON(c.Request.Context(), rdb, "session:"+claims.SessionID, &sess)
		if err != nil || !found {
			resp := response.Error[any](c, http.StatusUnauthorized, "session expired", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}

		httpctx.SetActor(c, &entity.User{
			ID:          sess.UserID,
			Email:       sess.Email,
			IsStaff:     sess.IsStaff,
			IsSuperuser: sess.IsSuperuser,
			IsActive:    true,
		})
		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}

// RequireStaff gates a group to staff and superusers. Must run after Auth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := httpctx.Actor(c)
		if actor == nil || !actor.IsAdmin() {
			resp := response.Error[any](c, http.StatusForbidden, "staff access required", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Next()
	}
}
