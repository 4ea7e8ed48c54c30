package handlers

import (
	"time"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

// JSON projections of the domain records. Password hashes and internal
// foreign keys stay out of responses.

type userView struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	IsActive    bool      `json:"is_active"`
	JoinedAt    time.Time `json:"joined_at"`
}

func viewUser(u *entity.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		IsActive:    u.IsActive,
		JoinedAt:    u.JoinedAt,
	}
}

type accountTypeView struct {
	ID                         string `json:"id"`
	Name                       string `json:"name"`
	MaximumWithdrawalAmount    string `json:"maximum_withdrawal_amount"`
	AnnualInterestRate         string `json:"annual_interest_rate"`
	InterestCalculationPerYear int    `json:"interest_calculation_per_year"`
}

func viewAccountType(t *entity.AccountType) accountTypeView {
	return accountTypeView{
		ID:                         t.ID,
		Name:                       t.Name,
		MaximumWithdrawalAmount:    t.MaximumWithdrawalAmount.String(),
		AnnualInterestRate:         t.AnnualInterestRate.String(),
		InterestCalculationPerYear: t.InterestCalculationPerYear,
	}
}

type accountView struct {
	ID                 string           `json:"id"`
	AccountNo          int64            `json:"account_no"`
	OwnerEmail         string           `json:"owner_email,omitempty"`
	Gender             string           `json:"gender"`
	BirthDate          *time.Time       `json:"birth_date,omitempty"`
	Balance            string           `json:"balance"`
	InitialDepositDate *time.Time       `json:"initial_deposit_date,omitempty"`
	InterestStartDate  *time.Time       `json:"interest_start_date,omitempty"`
	Type               *accountTypeView `json:"account_type,omitempty"`
}

func viewAccount(a *entity.Account) accountView {
	v := accountView{
		ID:                 a.ID,
		AccountNo:          a.AccountNo,
		OwnerEmail:         a.OwnerEmail,
		Gender:             a.Gender,
		BirthDate:          a.BirthDate,
		Balance:            a.Balance.String(),
		InitialDepositDate: a.InitialDepositDate,
		InterestStartDate:  a.InterestStartDate,
	}
	if a.Type != nil {
		tv := viewAccountType(a.Type)
		v.Type = &tv
	}
	return v
}

type addressView struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

func viewAddress(a *entity.Address) *addressView {
	if a == nil {
		return nil
	}
	return &addressView{
		StreetAddress: a.StreetAddress,
		City:          a.City,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
	}
}

type transactionView struct {
	ID           string    `json:"id"`
	AccountNo    int64     `json:"account_no,omitempty"`
	OwnerEmail   string    `json:"owner_email,omitempty"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balance_after"`
	Timestamp    time.Time `json:"timestamp"`
}

func viewTransaction(tr *entity.Transaction) transactionView {
	return transactionView{
		ID:           tr.ID,
		AccountNo:    tr.AccountNo,
		OwnerEmail:   tr.OwnerEmail,
		Type:         tr.Type.String(),
		Amount:       tr.Amount.String(),
		BalanceAfter: tr.BalanceAfter.String(),
		Timestamp:    tr.Timestamp,
	}
}

func viewTransactions(rows []*entity.Transaction) []transactionView {
	out := make([]transactionView, 0, len(rows))
	for _, tr := range rows {
		out = append(out, viewTransaction(tr))
	}
	return out
}

type runView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Duration    float64    `json:"duration_seconds"`
	TotalTests  int        `json:"total_tests"`
	Passed      int        `json:"passed"`
	Failed      int        `json:"failed"`
	Errored     int        `json:"errored"`
	SuccessRate float64    `json:"success_rate"`
	Coverage    float64    `json:"coverage"`
	LogURL      string     `json:"log_url,omitempty"`
}

func viewRun(r *entity.TestRun) runView {
	return runView{
		ID:          r.ID,
		Name:        r.Name,
		Status:      string(r.Status),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Duration:    r.Duration,
		TotalTests:  r.TotalTests,
		Passed:      r.Passed,
		Failed:      r.Failed,
		Errored:     r.Errored,
		SuccessRate: r.SuccessRate(),
		Coverage:    r.Coverage,
		LogURL:      r.LogURL,
	}
}

type caseView struct {
	Name      string  `json:"name"`
	ClassName string  `json:"class_name"`
	Module    string  `json:"module"`
	Status    string  `json:"status"`
	Duration  float64 `json:"duration_seconds"`
	ErrorText string  `json:"error_text,omitempty"`
}

func viewCases(cases []*entity.TestCase) []caseView {
	out := make([]caseView, 0, len(cases))
	for _, tc := range cases {
		out = append(out, caseView{
			Name:      tc.Name,
			ClassName: tc.ClassName,
			Module:    tc.ModuleName,
			Status:    string(tc.Status),
			Duration:  tc.Duration,
			ErrorText: tc.ErrorText,
		})
	}
	return out
}
