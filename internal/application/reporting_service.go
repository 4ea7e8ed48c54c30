package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

// ReportingService answers read-only ledger questions: a customer's own
// statement and the staff-wide transaction search.
type ReportingService struct {
	ledger   repository.TransactionRepository
	accounts repository.AccountRepository
	policy   *AccessPolicy
	logger   *logrus.Logger
}

func NewReportingService(
	ledger repository.TransactionRepository,
	accounts repository.AccountRepository,
	policy *AccessPolicy,
	logger *logrus.Logger,
) *ReportingService {
	return &ReportingService{ledger: ledger, accounts: accounts, policy: policy, logger: logger}
}

// Statement returns the actor's own ledger, newest first, optionally
// restricted to a date window. The account id in the filter is always
// forced to the actor's account so the filter cannot reach other ledgers.
func (s *ReportingService) Statement(ctx context.Context, actor *entity.User, f repository.TransactionFilter) (*entity.Account, []*entity.Transaction, error) {
	if !s.policy.Can(actor, ActionView, ResourceTransaction) {
		return nil, nil, entity.ErrNotPermitted
	}
	account, err := s.accounts.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, nil, err
	}
	f.AccountID = account.ID
	rows, err := s.ledger.Filter(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return account, rows, nil
}

// SearchTransactions is the staff report across all accounts: free-text,
// date window and type filters compose with AND.
func (s *ReportingService) SearchTransactions(ctx context.Context, actor *entity.User, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, entity.ErrNotPermitted
	}
	return s.ledger.Filter(ctx, f)
}

// GetTransaction fetches a single ledger row for the staff detail view.
func (s *ReportingService) GetTransaction(ctx context.Context, actor *entity.User, id string) (*entity.Transaction, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, entity.ErrNotPermitted
	}
	return s.ledger.GetByID(ctx, id)
}
