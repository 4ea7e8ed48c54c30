package repository

import (
	"context"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

// AccountRepository persists account types, accounts and addresses.
type AccountRepository interface {
	CreateType(ctx context.Context, t *entity.AccountType) error
	GetType(ctx context.Context, id string) (*entity.AccountType, error)
	ListTypes(ctx context.Context) ([]*entity.AccountType, error)
	// DeleteType fails with entity.ErrAccountTypeInUse while any account
	// still references the type.
	DeleteType(ctx context.Context, id string) error

	// Create fails with entity.ErrDuplicateAccountForUser or
	// entity.ErrDuplicateAccountNumber on uniqueness violations.
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Account, error)
	List(ctx context.Context) ([]*entity.Account, error)
	Delete(ctx context.Context, id string) error
	// NextAccountNo allocates the next free account number, never below start.
	NextAccountNo(ctx context.Context, start int64) (int64, error)
	// DeleteAdminOwned removes any accounts held by staff or superusers and
	// reports how many were removed. Cleanup for data predating the policy.
	DeleteAdminOwned(ctx context.Context) (int64, error)

	// CreateAddress fails with entity.ErrDuplicateAddressForUser when the
	// user already has one.
	CreateAddress(ctx context.Context, a *entity.Address) error
	GetAddressByUserID(ctx context.Context, userID string) (*entity.Address, error)
}
