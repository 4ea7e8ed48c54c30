package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ramah83/ST-System-Bank/internal/container"
	handlers "github.com/ramah83/ST-System-Bank/internal/interface/http"
	"github.com/ramah83/ST-System-Bank/internal/interface/middleware"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
)

// AdminModule wires the staff surface under /api/admin, behind auth plus a
// staff gate. Per-operation permissions stay with the access policy; the
// route gate only keeps customers out of the namespace.

type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RequireStaff(),
		middleware.RateLimit(container.GetRedis(), 240, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()),
	)
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/search", m.Handler.SearchUsers)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)

		admin.POST("/account-types", m.Handler.CreateAccountType)
		admin.DELETE("/account-types/:id", m.Handler.DeleteAccountType)

		admin.GET("/accounts", m.Handler.ListAccounts)
		admin.DELETE("/accounts/:id", m.Handler.CloseAccount)
		admin.POST("/accounts/cleanup", m.Handler.CleanupAdminAccounts)

		admin.GET("/transactions", m.Handler.SearchTransactions)
		admin.GET("/transactions/:id", m.Handler.GetTransaction)
		admin.DELETE("/transactions/:id", m.Handler.DeleteTransaction)
	}
}
