package application

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
)

// RegisterInput is everything a new customer supplies in one shot: identity,
// account choice and postal address.
type RegisterInput struct {
	Email         string
	Password      string
	FirstName     string
	LastName      string
	AccountTypeID string
	Gender        string
	BirthDate     *time.Time
	StreetAddress string
	City          string
	PostalCode    string
	Country       string
}

// AccountTypeInput carries the policy bundle for a new account type.
type AccountTypeInput struct {
	Name                       string
	MaximumWithdrawalAmount    decimal.Decimal
	AnnualInterestRate         decimal.Decimal
	InterestCalculationPerYear int
}

// AccountService handles onboarding and account-type administration.
type AccountService struct {
	users    repository.UserRepository
	accounts repository.AccountRepository
	policy   *AccessPolicy
	logger   *logrus.Logger

	accountNumberStart int64
}

func NewAccountService(
	users repository.UserRepository,
	accounts repository.AccountRepository,
	policy *AccessPolicy,
	logger *logrus.Logger,
	accountNumberStart int64,
) *AccountService {
	return &AccountService{
		users:              users,
		accounts:           accounts,
		policy:             policy,
		logger:             logger,
		accountNumberStart: accountNumberStart,
	}
}

// Register creates the user, their single bank account and their single
// address together. If the account or address step fails the freshly
// created user is removed again so a retry starts clean.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*entity.User, *entity.Account, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, nil, err
	}

	user := &entity.User{
		Email:     in.Email,
		Password:  hash,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		IsActive:  true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	account, err := s.OpenAccount(ctx, user, in.AccountTypeID, in.Gender, in.BirthDate)
	if err != nil {
		s.rollbackUser(ctx, user.ID)
		return nil, nil, err
	}

	address := &entity.Address{
		UserID:        user.ID,
		StreetAddress: in.StreetAddress,
		City:          in.City,
		PostalCode:    in.PostalCode,
		Country:       in.Country,
	}
	if err := s.accounts.CreateAddress(ctx, address); err != nil {
		s.rollbackUser(ctx, user.ID)
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"email":      user.Email,
		"account_no": account.AccountNo,
	}).Info("customer registered")
	return user, account, nil
}

// OpenAccount attaches a bank account to owner. Staff and superusers are
// refused regardless of who asks.
func (s *AccountService) OpenAccount(ctx context.Context, owner *entity.User, typeID, gender string, birthDate *time.Time) (*entity.Account, error) {
	if !s.policy.Can(owner, ActionCreate, ResourceAccount) {
		return nil, entity.ErrAdminAccountNotAllowed
	}
	if _, err := s.accounts.GetType(ctx, typeID); err != nil {
		return nil, err
	}

	no, err := s.accounts.NextAccountNo(ctx, s.accountNumberStart)
	if err != nil {
		return nil, err
	}

	account := &entity.Account{
		UserID:        owner.ID,
		AccountTypeID: typeID,
		AccountNo:     no,
		Gender:        gender,
		BirthDate:     birthDate,
		Balance:       decimal.Zero,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Profile bundles a customer's user row with their account and address.
func (s *AccountService) Profile(ctx context.Context, userID string) (*entity.User, *entity.Account, *entity.Address, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, entity.ErrAccountNotFound) {
			return nil, nil, nil, err
		}
		account = nil
	}
	address, err := s.accounts.GetAddressByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, entity.ErrAddressNotFound) {
			return nil, nil, nil, err
		}
		address = nil
	}
	return user, account, address, nil
}

// CreateAccountType adds a policy bundle. Staff only.
func (s *AccountService) CreateAccountType(ctx context.Context, actor *entity.User, in AccountTypeInput) (*entity.AccountType, error) {
	if !s.policy.Can(actor, ActionCreate, ResourceAccountType) {
		return nil, entity.ErrNotPermitted
	}
	t := &entity.AccountType{
		Name:                       in.Name,
		MaximumWithdrawalAmount:    in.MaximumWithdrawalAmount,
		AnnualInterestRate:         in.AnnualInterestRate,
		InterestCalculationPerYear: in.InterestCalculationPerYear,
	}
	if err := s.accounts.CreateType(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *AccountService) ListAccountTypes(ctx context.Context) ([]*entity.AccountType, error) {
	return s.accounts.ListTypes(ctx)
}

// DeleteAccountType removes an unused policy bundle; the store refuses with
// entity.ErrAccountTypeInUse while accounts still reference it.
func (s *AccountService) DeleteAccountType(ctx context.Context, actor *entity.User, id string) error {
	if !s.policy.Can(actor, ActionDelete, ResourceAccountType) {
		return entity.ErrNotPermitted
	}
	return s.accounts.DeleteType(ctx, id)
}

// ListAccounts returns every account with owner and type joined. Staff only.
func (s *AccountService) ListAccounts(ctx context.Context, actor *entity.User) ([]*entity.Account, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, entity.ErrNotPermitted
	}
	return s.accounts.List(ctx)
}

// CloseAccount deletes an account outright. Superuser only; the ledger rows
// go with it.
func (s *AccountService) CloseAccount(ctx context.Context, actor *entity.User, id string) error {
	if !s.policy.Can(actor, ActionDelete, ResourceAccount) {
		return entity.ErrNotPermitted
	}
	return s.accounts.Delete(ctx, id)
}

// RemoveAdminAccounts deletes any accounts that ended up owned by staff or
// superusers, for data created before the holding ban. Superuser only.
func (s *AccountService) RemoveAdminAccounts(ctx context.Context, actor *entity.User) (int64, error) {
	if !s.policy.Can(actor, ActionDelete, ResourceAccount) {
		return 0, entity.ErrNotPermitted
	}
	n, err := s.accounts.DeleteAdminOwned(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.WithFields(logrus.Fields{"removed": n, "actor": actor.Email}).Warn("staff-owned accounts removed")
	}
	return n, nil
}

func (s *AccountService) rollbackUser(ctx context.Context, userID string) {
	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("registration rollback failed")
	}
}
