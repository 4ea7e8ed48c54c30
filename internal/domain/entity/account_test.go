package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateInterest(t *testing.T) {
	tests := []struct {
		name      string
		rate      string
		frequency int
		principal string
		want      string
	}{
		{"monthly 2.5% on 1000", "2.5", 12, "1000", "2.08"},
		{"annual 5% on 1000", "5", 1, "1000", "50"},
		{"quarterly 4% on 2500", "4", 4, "2500", "25"},
		{"zero principal", "2.5", 12, "0", "0"},
		{"zero rate", "0", 12, "1000", "0"},
		{"zero frequency yields nothing", "5", 0, "1000", "0"},
		{"rounds half up", "1", 12, "500.5", "0.42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := &AccountType{
				AnnualInterestRate:         d(tt.rate),
				InterestCalculationPerYear: tt.frequency,
			}
			got := at.CalculateInterest(d(tt.principal))
			if !got.Equal(d(tt.want)) {
				t.Fatalf("interest = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInterestInterval(t *testing.T) {
	tests := []struct {
		frequency int
		want      int
	}{
		{12, 1},
		{4, 3},
		{2, 6},
		{1, 12},
		{0, 12},
	}
	for _, tt := range tests {
		at := &AccountType{InterestCalculationPerYear: tt.frequency}
		if got := at.InterestInterval(); got != tt.want {
			t.Fatalf("frequency %d: interval = %d, want %d", tt.frequency, got, tt.want)
		}
	}
}

func TestInterestCalculationMonths(t *testing.T) {
	start := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	a := &Account{
		InterestStartDate: &start,
		Type:              &AccountType{InterestCalculationPerYear: 4},
	}
	got := a.InterestCalculationMonths()
	want := []int{3, 6, 9, 12}
	if len(got) != len(want) {
		t.Fatalf("months = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("months = %v, want %v", got, want)
		}
	}

	bare := &Account{}
	if months := bare.InterestCalculationMonths(); months != nil {
		t.Fatalf("account without deposits should have no schedule, got %v", months)
	}
}

func TestTransactionSignedAmount(t *testing.T) {
	dep := &Transaction{Type: TransactionDeposit, Amount: d("100")}
	if !dep.SignedAmount().Equal(d("100")) {
		t.Fatalf("deposit signed amount = %s", dep.SignedAmount())
	}
	wd := &Transaction{Type: TransactionWithdrawal, Amount: d("40")}
	if !wd.SignedAmount().Equal(d("-40")) {
		t.Fatalf("withdrawal signed amount = %s", wd.SignedAmount())
	}
}
