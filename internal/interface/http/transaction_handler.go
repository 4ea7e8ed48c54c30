package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/application"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
	"github.com/ramah83/ST-System-Bank/internal/interface/httpctx"
	"github.com/ramah83/ST-System-Bank/pkg/response"
	"github.com/ramah83/ST-System-Bank/pkg/validation"
)

type TransactionHandler struct {
	Banking   *application.BankingService
	Reporting *application.ReportingService
	Logger    *logrus.Logger
}

func NewTransactionHandler(banking *application.BankingService, reporting *application.ReportingService, logger *logrus.Logger) *TransactionHandler {
	return &TransactionHandler{Banking: banking, Reporting: reporting, Logger: logger}
}

type amountRequest struct {
	// Amount travels as a string to keep exact decimal semantics.
	Amount string `json:"amount" binding:"required"`
}

func parseAmount(c *gin.Context) (decimal.Decimal, bool) {
	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"amount": "must be a decimal number"})
		return decimal.Zero, false
	}
	return amount, true
}

func (h *TransactionHandler) Deposit(c *gin.Context) {
	amount, ok := parseAmount(c)
	if !ok {
		return
	}
	tr, err := h.Banking.Deposit(c.Request.Context(), httpctx.Actor(c), amount)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, viewTransaction(tr), "deposit posted", nil)
}

func (h *TransactionHandler) Withdraw(c *gin.Context) {
	amount, ok := parseAmount(c)
	if !ok {
		return
	}
	tr, err := h.Banking.Withdraw(c.Request.Context(), httpctx.Actor(c), amount)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, viewTransaction(tr), "withdrawal posted", nil)
}

// Statement returns the caller's ledger, optionally bounded by
// ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *TransactionHandler) Statement(c *gin.Context) {
	filter, ok := dateWindow(c)
	if !ok {
		return
	}
	account, rows, err := h.Reporting.Statement(c.Request.Context(), httpctx.Actor(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"account":      viewAccount(account),
		"transactions": viewTransactions(rows),
	}, "statement", gin.H{"count": len(rows)})
}

// InterestPreview shows what one compounding period would pay right now.
func (h *TransactionHandler) InterestPreview(c *gin.Context) {
	interest, err := h.Banking.PreviewInterest(c.Request.Context(), httpctx.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"interest": interest.String()}, "interest preview", nil)
}

func dateWindow(c *gin.Context) (repository.TransactionFilter, bool) {
	var f repository.TransactionFilter
	if raw := c.Query("from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"from": "must match format 2006-01-02"})
			return f, false
		}
		f.From = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"to": "must match format 2006-01-02"})
			return f, false
		}
		f.To = &d
	}
	return f, true
}
