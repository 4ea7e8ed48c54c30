package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType is a shared policy bundle: withdrawal ceiling and interest
// terms. Rows are effectively immutable once accounts reference them;
// deletion is blocked while any account does.
type AccountType struct {
	ID                         string
	Name                       string
	MaximumWithdrawalAmount    decimal.Decimal
	AnnualInterestRate         decimal.Decimal // percent, 0-100
	InterestCalculationPerYear int             // 1-12
}

// CalculateInterest computes one period of interest on principal:
// principal * (rate/100/frequency), rounded to 2 decimal places.
func (t *AccountType) CalculateInterest(principal decimal.Decimal) decimal.Decimal {
	if t.InterestCalculationPerYear <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(t.InterestCalculationPerYear))
	periodRate := t.AnnualInterestRate.Div(decimal.NewFromInt(100)).Div(n)
	return principal.Mul(periodRate).Round(2)
}

// InterestInterval is the number of months between compounding periods.
func (t *AccountType) InterestInterval() int {
	if t.InterestCalculationPerYear <= 0 {
		return 12
	}
	interval := 12 / t.InterestCalculationPerYear
	if interval < 1 {
		interval = 1
	}
	return interval
}

// Account holds a customer's funds. One per user, enforced by the store.
// Balance is the single source of truth for current funds and is only ever
// mutated by the transaction service.
type Account struct {
	ID                 string
	UserID             string
	AccountTypeID      string
	AccountNo          int64
	Gender             string // "M" or "F"
	BirthDate          *time.Time
	Balance            decimal.Decimal
	InitialDepositDate *time.Time
	InterestStartDate  *time.Time

	// Joined fields, populated on reads that need them.
	Type       *AccountType
	OwnerEmail string
}

// InterestCalculationMonths lists the calendar months (1-12) in which
// interest would fall due, spaced by the type's compounding interval and
// anchored at the interest start date. Empty until a first deposit exists.
func (a *Account) InterestCalculationMonths() []int {
	if a.InterestStartDate == nil || a.Type == nil || a.Type.InterestCalculationPerYear <= 0 {
		return nil
	}
	interval := a.Type.InterestInterval()
	var months []int
	for m := int(a.InterestStartDate.Month()); m <= 12; m += interval {
		months = append(months, m)
	}
	return months
}
