package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/application"
	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
	"github.com/ramah83/ST-System-Bank/internal/interface/httpctx"
	"github.com/ramah83/ST-System-Bank/pkg/validation"
)

type stubAccountRepo struct {
	repository.AccountRepository
	account *entity.Account
}

func (s *stubAccountRepo) GetByUserID(ctx context.Context, userID string) (*entity.Account, error) {
	if s.account == nil || s.account.UserID != userID {
		return nil, entity.ErrAccountNotFound
	}
	return s.account, nil
}

type stubLedger struct {
	repository.TransactionRepository
	account *entity.Account
}

func (s *stubLedger) Post(ctx context.Context, p repository.PostParams) (*entity.Transaction, error) {
	balance := s.account.Balance.Add(p.Amount)
	if p.Type == entity.TransactionWithdrawal {
		if p.Amount.GreaterThan(s.account.Balance) {
			return nil, entity.ErrInsufficientFunds
		}
		balance = s.account.Balance.Sub(p.Amount)
	}
	s.account.Balance = balance
	return &entity.Transaction{
		ID:           "tr-1",
		AccountID:    p.AccountID,
		Amount:       p.Amount,
		BalanceAfter: balance,
		Type:         p.Type,
		Timestamp:    time.Now(),
	}, nil
}

func (s *stubLedger) Filter(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	return []*entity.Transaction{
		{ID: "tr-1", AccountID: f.AccountID, Amount: decimal.NewFromInt(100), BalanceAfter: decimal.NewFromInt(100), Type: entity.TransactionDeposit, Timestamp: time.Now()},
	}, nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func asActor(u *entity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpctx.SetActor(c, u)
		c.Next()
	}
}

func newTestRouter(t *testing.T, actor *entity.User, balance string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	account := &entity.Account{
		ID:        "acct-1",
		UserID:    "user-1",
		AccountNo: 10000001,
		Balance:   mustDecimal(balance),
		Type: &entity.AccountType{
			ID:                         "type-1",
			Name:                       "Savings",
			MaximumWithdrawalAmount:    mustDecimal("1500"),
			AnnualInterestRate:         mustDecimal("2.5"),
			InterestCalculationPerYear: 12,
		},
	}
	accounts := &stubAccountRepo{account: account}
	ledger := &stubLedger{account: account}
	policy := application.NewAccessPolicy()

	banking := application.NewBankingService(accounts, ledger, policy, logger, mustDecimal("10"), mustDecimal("10"))
	reporting := application.NewReportingService(ledger, accounts, policy, logger)
	h := NewTransactionHandler(banking, reporting, logger)

	r := gin.New()
	api := r.Group("/api", asActor(actor))
	api.POST("/transactions/deposit", h.Deposit)
	api.POST("/transactions/withdraw", h.Withdraw)
	api.GET("/transactions", h.Statement)
	api.GET("/interest/preview", h.InterestPreview)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDepositEndpoint(t *testing.T) {
	r := newTestRouter(t, &entity.User{ID: "user-1", IsActive: true}, "0")

	w := doJSON(r, http.MethodPost, "/api/transactions/deposit", gin.H{"amount": "1000"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			BalanceAfter string `json:"balance_after"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success || resp.Data.BalanceAfter != "1000" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestDepositEndpointRejectsStaff(t *testing.T) {
	r := newTestRouter(t, &entity.User{ID: "user-1", IsStaff: true, IsActive: true}, "0")

	w := doJSON(r, http.MethodPost, "/api/transactions/deposit", gin.H{"amount": "1000"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403; body %s", w.Code, w.Body.String())
	}
}

func TestDepositEndpointBadPayload(t *testing.T) {
	r := newTestRouter(t, &entity.User{ID: "user-1", IsActive: true}, "0")

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"missing amount", gin.H{}, http.StatusBadRequest},
		{"non-numeric amount", gin.H{"amount": "ten"}, http.StatusBadRequest},
		{"below minimum", gin.H{"amount": "1"}, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/transactions/deposit", tt.body)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestWithdrawEndpoint(t *testing.T) {
	r := newTestRouter(t, &entity.User{ID: "user-1", IsActive: true}, "500")

	w := doJSON(r, http.MethodPost, "/api/transactions/withdraw", gin.H{"amount": "600"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("overdraw status = %d, want 422; body %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/api/transactions/withdraw", gin.H{"amount": "200"})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body.String())
	}
}

func TestStatementEndpoint(t *testing.T) {
	r := newTestRouter(t, &entity.User{ID: "user-1", IsActive: true}, "100")

	w := doJSON(r, http.MethodGet, "/api/transactions?from=2026-01-01&to=2026-12-31", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/api/transactions?from=bogus", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", w.Code)
	}
}

func TestInterestPreviewEndpoint(t *testing.T) {
	r := newTestRouter(t, &entity.User{ID: "user-1", IsActive: true}, "1000")

	w := doJSON(r, http.MethodGet, "/api/interest/preview", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Interest string `json:"interest"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Interest != "2.08" {
		t.Fatalf("interest = %q, want 2.08", resp.Data.Interest)
	}
}
