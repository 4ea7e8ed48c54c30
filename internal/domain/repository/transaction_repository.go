package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

// PostParams describes one balance mutation to apply atomically.
type PostParams struct {
	AccountID string
	Type      entity.TransactionType
	Amount    decimal.Decimal
	// InterestIntervalMonths is 12 / compounding frequency; used to set the
	// interest start date when this deposit turns out to be the account's
	// first.
	InterestIntervalMonths int
}

// TransactionFilter composes with logical AND; zero values mean "no filter".
type TransactionFilter struct {
	From *time.Time // inclusive
	To   *time.Time // inclusive
	// Text matches as a substring against the stringified amount and
	// balance snapshot, the account number and the owner email.
	Text string
	Type entity.TransactionType // 0 = any
	// AccountID restricts to one account (customer report view).
	AccountID string
}

// TransactionRepository is the append-only ledger.
type TransactionRepository interface {
	// Post serializes on the account row: it locks the row, re-checks funds
	// for withdrawals (entity.ErrInsufficientFunds), applies the balance
	// mutation and appends the ledger row with the post-mutation snapshot,
	// all in one database transaction.
	Post(ctx context.Context, p PostParams) (*entity.Transaction, error)
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	// Filter returns matching rows ordered by timestamp descending.
	Filter(ctx context.Context, f TransactionFilter) ([]*entity.Transaction, error)
	// Delete is the superuser-only audited override; normal flows never
	// remove ledger rows.
	Delete(ctx context.Context, id string) error
}
