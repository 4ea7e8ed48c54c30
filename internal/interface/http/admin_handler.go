package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/application"
	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/interface/httpctx"
	"github.com/ramah83/ST-System-Bank/pkg/response"
	"github.com/ramah83/ST-System-Bank/pkg/validation"
)

// AdminHandler is the staff surface: user directory, account type
// management, account oversight and the full transaction report.
type AdminHandler struct {
	Users     *application.UserService
	Accounts  *application.AccountService
	Banking   *application.BankingService
	Reporting *application.ReportingService
	Logger    *logrus.Logger
}

func NewAdminHandler(
	users *application.UserService,
	accounts *application.AccountService,
	banking *application.BankingService,
	reporting *application.ReportingService,
	logger *logrus.Logger,
) *AdminHandler {
	return &AdminHandler{Users: users, Accounts: accounts, Banking: banking, Reporting: reporting, Logger: logger}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context(), httpctx.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, viewUser(u))
	}
	response.Success(c, http.StatusOK, out, "users", gin.H{"count": len(out)})
}

// SearchUsers queries the Elasticsearch directory with ?q=.
func (h *AdminHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"q": "is required"})
		return
	}
	docs, err := h.Users.SearchUsers(c.Request.Context(), httpctx.Actor(c), q)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, docs, "user search", gin.H{"count": len(docs)})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), httpctx.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "user deleted", nil)
}

type accountTypeRequest struct {
	Name                       string `json:"name" binding:"required"`
	MaximumWithdrawalAmount    string `json:"maximum_withdrawal_amount" binding:"required"`
	AnnualInterestRate         string `json:"annual_interest_rate" binding:"required"`
	InterestCalculationPerYear int    `json:"interest_calculation_per_year" binding:"required,frequency"`
}

func (h *AdminHandler) CreateAccountType(c *gin.Context) {
	var req accountTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	maxAmount, err := decimal.NewFromString(req.MaximumWithdrawalAmount)
	if err != nil || !maxAmount.IsPositive() {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"maximum_withdrawal_amount": "must be a positive decimal"})
		return
	}
	rate, err := decimal.NewFromString(req.AnnualInterestRate)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"annual_interest_rate": "must be between 0 and 100"})
		return
	}

	t, err := h.Accounts.CreateAccountType(c.Request.Context(), httpctx.Actor(c), application.AccountTypeInput{
		Name:                       req.Name,
		MaximumWithdrawalAmount:    maxAmount,
		AnnualInterestRate:         rate,
		InterestCalculationPerYear: req.InterestCalculationPerYear,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, viewAccountType(t), "account type created", nil)
}

func (h *AdminHandler) DeleteAccountType(c *gin.Context) {
	if err := h.Accounts.DeleteAccountType(c.Request.Context(), httpctx.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account type deleted", nil)
}

func (h *AdminHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.Accounts.ListAccounts(c.Request.Context(), httpctx.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, viewAccount(a))
	}
	response.Success(c, http.StatusOK, out, "accounts", gin.H{"count": len(out)})
}

// CleanupAdminAccounts removes accounts held by staff, which the policy
// forbids going forward but older data may still contain.
func (h *AdminHandler) CleanupAdminAccounts(c *gin.Context) {
	n, err := h.Accounts.RemoveAdminAccounts(c.Request.Context(), httpctx.Actor(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": n}, "staff-owned accounts removed", nil)
}

func (h *AdminHandler) CloseAccount(c *gin.Context) {
	if err := h.Accounts.CloseAccount(c.Request.Context(), httpctx.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "account closed", nil)
}

// SearchTransactions is the staff ledger report. Filters:
// ?q= free text, ?type=deposit|withdrawal|interest, ?from/?to dates,
// ?account_id= one account. All compose with AND.
func (h *AdminHandler) SearchTransactions(c *gin.Context) {
	filter, ok := dateWindow(c)
	if !ok {
		return
	}
	filter.Text = c.Query("q")
	filter.AccountID = c.Query("account_id")
	if raw := c.Query("type"); raw != "" {
		t, ok := parseTransactionType(raw)
		if !ok {
			response.Fail[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"type": "must be one of: deposit, withdrawal, interest"})
			return
		}
		filter.Type = t
	}

	rows, err := h.Reporting.SearchTransactions(c.Request.Context(), httpctx.Actor(c), filter)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, viewTransactions(rows), "transactions", gin.H{"count": len(rows)})
}

func (h *AdminHandler) GetTransaction(c *gin.Context) {
	tr, err := h.Reporting.GetTransaction(c.Request.Context(), httpctx.Actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, viewTransaction(tr), "transaction", nil)
}

// DeleteTransaction is the audited superuser override.
func (h *AdminHandler) DeleteTransaction(c *gin.Context) {
	if err := h.Banking.DeleteTransaction(c.Request.Context(), httpctx.Actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "transaction deleted", nil)
}

func parseTransactionType(raw string) (entity.TransactionType, bool) {
	switch raw {
	case "deposit":
		return entity.TransactionDeposit, true
	case "withdrawal":
		return entity.TransactionWithdrawal, true
	case "interest":
		return entity.TransactionInterest, true
	default:
		return 0, false
	}
}
