package entity

import "errors"

// Validation and policy failures. All are deterministic consequences of
// input or state: surfaced to the caller, never retried.
var (
	ErrInvalidAmount           = errors.New("amount must be positive with at most two decimal places")
	ErrBelowMinimumAmount      = errors.New("amount below configured minimum")
	ErrExceedsAccountLimit     = errors.New("amount exceeds account withdrawal limit")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrAdminAccountNotAllowed  = errors.New("staff and administrators cannot hold bank accounts")
	ErrDuplicateAccountNumber  = errors.New("account number already in use")
	ErrDuplicateAccountForUser = errors.New("user already has a bank account")
	ErrDuplicateAddressForUser = errors.New("user already has an address")
	ErrDuplicateEmail          = errors.New("email already registered")
	ErrAccountTypeInUse        = errors.New("account type is referenced by existing accounts")
	ErrNotPermitted            = errors.New("operation not permitted for this actor")
	ErrInvalidCredentials      = errors.New("invalid email or password")

	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountTypeNotFound = errors.New("account type not found")
	ErrAddressNotFound     = errors.New("address not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrTestRunNotFound     = errors.New("test run not found")
)
