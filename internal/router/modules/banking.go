package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ramah83/ST-System-Bank/internal/container"
	handlers "github.com/ramah83/ST-System-Bank/internal/interface/http"
	"github.com/ramah83/ST-System-Bank/internal/interface/middleware"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
)

// BankingModule wires the customer money routes, all behind auth.
// POST /api/transactions/deposit, POST /api/transactions/withdraw,
// GET /api/transactions (statement), GET /api/interest/preview

type BankingModule struct {
	Handler *handlers.TransactionHandler
	JWT     *helpers.JWTManager
}

func NewBankingModule(h *handlers.TransactionHandler, jwt *helpers.JWTManager) *BankingModule {
	return &BankingModule{Handler: h, JWT: jwt}
}

func (m *BankingModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	// money movements get a tighter per-user budget than reads
	postLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil)
	readLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)
	{
		auth.POST("/transactions/deposit", postLimiter, m.Handler.Deposit)
		auth.POST("/transactions/withdraw", postLimiter, m.Handler.Withdraw)
		auth.GET("/transactions", readLimiter, m.Handler.Statement)
		auth.GET("/interest/preview", readLimiter, m.Handler.InterestPreview)
	}
}
