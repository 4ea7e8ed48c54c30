package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

// BankingService moves money. Every mutation of a balance goes through
// here and ends up as a ledger row; there is no other write path.
type BankingService struct {
	accounts repository.AccountRepository
	ledger   repository.TransactionRepository
	policy   *AccessPolicy
	logger   *logrus.Logger

	minDeposit    decimal.Decimal
	minWithdrawal decimal.Decimal
}

func NewBankingService(
	accounts repository.AccountRepository,
	ledger repository.TransactionRepository,
	policy *AccessPolicy,
	logger *logrus.Logger,
	minDeposit, minWithdrawal decimal.Decimal,
) *BankingService {
	return &BankingService{
		accounts:      accounts,
		ledger:        ledger,
		policy:        policy,
		logger:        logger,
		minDeposit:    minDeposit,
		minWithdrawal: minWithdrawal,
	}
}

// Deposit credits the actor's account. The actor must be a customer with an
// open account, and the amount must clear the configured minimum. The first
// deposit on an account also starts its interest clock.
func (s *BankingService) Deposit(ctx context.Context, actor *entity.User, amount decimal.Decimal) (*entity.Transaction, error) {
	if !s.policy.Can(actor, ActionDeposit, ResourceAccount) {
		return nil, entity.ErrAdminAccountNotAllowed
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(s.minDeposit) {
		return nil, entity.ErrBelowMinimumAmount
	}

	account, err := s.accounts.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	interval := 12
	if account.Type != nil {
		interval = account.Type.InterestInterval()
	}
	tr, err := s.ledger.Post(ctx, repository.PostParams{
		AccountID:              account.ID,
		Type:                   entity.TransactionDeposit,
		Amount:                 amount,
		InterestIntervalMonths: interval,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"account_no":    account.AccountNo,
		"amount":        amount.String(),
		"balance_after": tr.BalanceAfter.String(),
	}).Info("deposit posted")
	return tr, nil
}

// Withdraw debits the actor's account. Beyond the minimum check, the amount
// must not exceed the account type's per-transaction ceiling, and the
// balance check happens inside the posting lock so concurrent withdrawals
// cannot overdraw.
func (s *BankingService) Withdraw(ctx context.Context, actor *entity.User, amount decimal.Decimal) (*entity.Transaction, error) {
	if !s.policy.Can(actor, ActionWithdraw, ResourceAccount) {
		return nil, entity.ErrAdminAccountNotAllowed
	}
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if amount.LessThan(s.minWithdrawal) {
		return nil, entity.ErrBelowMinimumAmount
	}

	account, err := s.accounts.GetByUserID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if account.Type != nil && amount.GreaterThan(account.Type.MaximumWithdrawalAmount) {
		return nil, entity.ErrExceedsAccountLimit
	}

	tr, err := s.ledger.Post(ctx, repository.PostParams{
		AccountID: account.ID,
		Type:      entity.TransactionWithdrawal,
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"account_no":    account.AccountNo,
		"amount":        amount.String(),
		"balance_after": tr.BalanceAfter.String(),
	}).Info("withdrawal posted")
	return tr, nil
}

// PreviewInterest returns the interest one compounding period would earn on
// the actor's current balance. Pure arithmetic, nothing is posted.
func (s *BankingService) PreviewInterest(ctx context.Context, actor *entity.User) (decimal.Decimal, error) {
	account, err := s.accounts.GetByUserID(ctx, actor.ID)
	if err != nil {
		return decimal.Zero, err
	}
	if account.Type == nil {
		return decimal.Zero, entity.ErrAccountTypeNotFound
	}
	return account.Type.CalculateInterest(account.Balance), nil
}

// DeleteTransaction removes a ledger row. Ledger rows are immutable by
// design, so this is restricted to superusers and logged as an audited
// override.
func (s *BankingService) DeleteTransaction(ctx context.Context, actor *entity.User, id string) error {
	if !s.policy.Can(actor, ActionDelete, ResourceTransaction) {
		return entity.ErrNotPermitted
	}
	tr, err := s.ledger.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ledger.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"transaction_id": tr.ID,
		"account_id":     tr.AccountID,
		"amount":         tr.Amount.String(),
		"actor":          actor.Email,
	}).Warn("ledger row deleted by superuser override")
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.Exponent() < -2 {
		return entity.ErrInvalidAmount
	}
	return nil
}
