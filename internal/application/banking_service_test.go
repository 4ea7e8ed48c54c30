package application

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func savingsType() *entity.AccountType {
	return &entity.AccountType{
		ID:                         "type-1",
		Name:                       "Savings",
		MaximumWithdrawalAmount:    dec("1500"),
		AnnualInterestRate:         dec("2.5"),
		InterestCalculationPerYear: 12,
	}
}

func customerAccount(balance string) *entity.Account {
	return &entity.Account{
		ID:            "acct-1",
		UserID:        "user-1",
		AccountTypeID: "type-1",
		AccountNo:     10000001,
		Balance:       dec(balance),
		Type:          savingsType(),
	}
}

func newBankingFixture(account *entity.Account) (*BankingService, *mockTransactionRepo) {
	accounts := &mockAccountRepo{
		GetByUserIDFn: func(ctx context.Context, userID string) (*entity.Account, error) {
			if account == nil || account.UserID != userID {
				return nil, entity.ErrAccountNotFound
			}
			return account, nil
		},
	}
	ledger := &mockTransactionRepo{
		PostFn: func(ctx context.Context, p repository.PostParams) (*entity.Transaction, error) {
			newBalance := account.Balance.Add(p.Amount)
			if p.Type == entity.TransactionWithdrawal {
				if p.Amount.GreaterThan(account.Balance) {
					return nil, entity.ErrInsufficientFunds
				}
				newBalance = account.Balance.Sub(p.Amount)
			}
			account.Balance = newBalance
			return &entity.Transaction{
				ID:           "tr-1",
				AccountID:    p.AccountID,
				Amount:       p.Amount,
				BalanceAfter: newBalance,
				Type:         p.Type,
				Timestamp:    time.Now(),
			}, nil
		},
	}
	svc := NewBankingService(accounts, ledger, NewAccessPolicy(), testLogger(), dec("10"), dec("10"))
	return svc, ledger
}

func customer() *entity.User {
	return &entity.User{ID: "user-1", Email: "amal@example.com", IsActive: true}
}

func staff() *entity.User {
	return &entity.User{ID: "staff-1", Email: "ops@example.com", IsStaff: true, IsActive: true}
}

func TestDepositWithdrawSequence(t *testing.T) {
	account := customerAccount("0")
	svc, _ := newBankingFixture(account)
	ctx := context.Background()
	actor := customer()

	tr, err := svc.Deposit(ctx, actor, dec("1000"))
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !tr.BalanceAfter.Equal(dec("1000")) {
		t.Fatalf("balance after first deposit = %s, want 1000", tr.BalanceAfter)
	}

	tr, err = svc.Deposit(ctx, actor, dec("500"))
	if err != nil {
		t.Fatalf("second deposit: %v", err)
	}
	if !tr.BalanceAfter.Equal(dec("1500")) {
		t.Fatalf("balance after second deposit = %s, want 1500", tr.BalanceAfter)
	}

	if _, err := svc.Withdraw(ctx, actor, dec("2000")); !errors.Is(err, entity.ErrExceedsAccountLimit) {
		t.Fatalf("withdraw over ceiling: err = %v, want ErrExceedsAccountLimit", err)
	}
	if !account.Balance.Equal(dec("1500")) {
		t.Fatalf("balance changed by rejected withdrawal: %s", account.Balance)
	}

	tr, err = svc.Withdraw(ctx, actor, dec("300"))
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !tr.BalanceAfter.Equal(dec("1200")) {
		t.Fatalf("balance after withdrawal = %s, want 1200", tr.BalanceAfter)
	}
}

func TestDepositValidation(t *testing.T) {
	tests := []struct {
		name    string
		actor   *entity.User
		amount  string
		wantErr error
	}{
		{"staff refused before amount checks", staff(), "-5", entity.ErrAdminAccountNotAllowed},
		{"zero amount", customer(), "0", entity.ErrInvalidAmount},
		{"negative amount", customer(), "-20", entity.ErrInvalidAmount},
		{"three decimal places", customer(), "20.555", entity.ErrInvalidAmount},
		{"below minimum", customer(), "9.99", entity.ErrBelowMinimumAmount},
		{"at minimum", customer(), "10", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newBankingFixture(customerAccount("100"))
			_, err := svc.Deposit(context.Background(), tt.actor, dec(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithdrawValidation(t *testing.T) {
	tests := []struct {
		name    string
		actor   *entity.User
		balance string
		amount  string
		wantErr error
	}{
		{"staff refused", staff(), "1000", "100", entity.ErrAdminAccountNotAllowed},
		{"below minimum", customer(), "1000", "5", entity.ErrBelowMinimumAmount},
		{"over account ceiling", customer(), "5000", "1500.01", entity.ErrExceedsAccountLimit},
		{"insufficient funds", customer(), "100", "200", entity.ErrInsufficientFunds},
		{"exactly the balance", customer(), "200", "200", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newBankingFixture(customerAccount(tt.balance))
			_, err := svc.Withdraw(context.Background(), tt.actor, dec(tt.amount))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDepositPassesInterestInterval(t *testing.T) {
	account := customerAccount("0")
	account.Type.InterestCalculationPerYear = 4
	var got repository.PostParams
	svc, ledger := newBankingFixture(account)
	inner := ledger.PostFn
	ledger.PostFn = func(ctx context.Context, p repository.PostParams) (*entity.Transaction, error) {
		got = p
		return inner(ctx, p)
	}

	if _, err := svc.Deposit(context.Background(), customer(), dec("50")); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if got.InterestIntervalMonths != 3 {
		t.Fatalf("interval = %d months, want 3 for quarterly compounding", got.InterestIntervalMonths)
	}
}

func TestDeleteTransaction(t *testing.T) {
	deleted := false
	ledger := &mockTransactionRepo{
		GetByIDFn: func(ctx context.Context, id string) (*entity.Transaction, error) {
			return &entity.Transaction{ID: id, AccountID: "acct-1", Amount: dec("100")}, nil
		},
		DeleteFn: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	svc := NewBankingService(&mockAccountRepo{}, ledger, NewAccessPolicy(), testLogger(), dec("10"), dec("10"))
	ctx := context.Background()

	super := &entity.User{ID: "root-1", Email: "root@example.com", IsSuperuser: true}
	if err := svc.DeleteTransaction(ctx, staff(), "tr-1"); !errors.Is(err, entity.ErrNotPermitted) {
		t.Fatalf("staff delete: err = %v, want ErrNotPermitted", err)
	}
	if err := svc.DeleteTransaction(ctx, customer(), "tr-1"); !errors.Is(err, entity.ErrNotPermitted) {
		t.Fatalf("customer delete: err = %v, want ErrNotPermitted", err)
	}
	if deleted {
		t.Fatal("delete reached the ledger without permission")
	}
	if err := svc.DeleteTransaction(ctx, super, "tr-1"); err != nil {
		t.Fatalf("superuser delete: %v", err)
	}
	if !deleted {
		t.Fatal("superuser delete never reached the ledger")
	}
}

func TestPreviewInterest(t *testing.T) {
	account := customerAccount("1000")
	svc, _ := newBankingFixture(account)

	got, err := svc.PreviewInterest(context.Background(), customer())
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	// 1000 * (2.5/100/12) = 2.0833..., rounded to 2.08
	if !got.Equal(dec("2.08")) {
		t.Fatalf("interest = %s, want 2.08", got)
	}
}
