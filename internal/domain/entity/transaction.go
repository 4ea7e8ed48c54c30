package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType discriminates ledger entries.
type TransactionType int

const (
	TransactionDeposit    TransactionType = 1
	TransactionWithdrawal TransactionType = 2
	TransactionInterest   TransactionType = 3
)

func (t TransactionType) String() string {
	switch t {
	case TransactionDeposit:
		return "deposit"
	case TransactionWithdrawal:
		return "withdrawal"
	case TransactionInterest:
		return "interest"
	default:
		return "unknown"
	}
}

// Valid reports whether t is a known ledger entry type.
func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal || t == TransactionInterest
}

// Transaction is an immutable ledger row. BalanceAfter is the account balance
// captured at commit time; the ledger's snapshots for one account always form
// the running total of its signed amounts.
type Transaction struct {
	ID           string
	AccountID    string
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
	Type         TransactionType
	Timestamp    time.Time

	// Joined fields for reporting views.
	AccountNo  int64
	OwnerEmail string
}

// SignedAmount returns the amount with the sign of its effect on the balance.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TransactionWithdrawal {
		return t.Amount.Neg()
	}
	return t.Amount
}
