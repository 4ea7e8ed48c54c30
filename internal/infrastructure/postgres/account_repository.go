package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) CreateType(ctx context.Context, t *entity.AccountType) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO account_types (name, maximum_withdrawal_amount, annual_interest_rate, interest_calculation_per_year)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.Name, t.MaximumWithdrawalAmount, t.AnnualInterestRate, t.InterestCalculationPerYear)
	return row.Scan(&t.ID)
}

func (r *AccountRepository) GetType(ctx context.Context, id string) (*entity.AccountType, error) {
	t := &entity.AccountType{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, maximum_withdrawal_amount, annual_interest_rate, interest_calculation_per_year
		FROM account_types WHERE id = $1
	`, id).Scan(&t.ID, &t.Name, &t.MaximumWithdrawalAmount, &t.AnnualInterestRate, &t.InterestCalculationPerYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAccountTypeNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *AccountRepository) ListTypes(ctx context.Context) ([]*entity.AccountType, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, maximum_withdrawal_amount, annual_interest_rate, interest_calculation_per_year
		FROM account_types ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*entity.AccountType
	for rows.Next() {
		t := &entity.AccountType{}
		if err := rows.Scan(&t.ID, &t.Name, &t.MaximumWithdrawalAmount, &t.AnnualInterestRate, &t.InterestCalculationPerYear); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

func (r *AccountRepository) DeleteType(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM account_types WHERE id = $1`, id)
	if err != nil {
		// reference from accounts surfaces as a foreign key violation
		return mapConstraintErr(err)
	}
	if res.RowsAffected() == 0 {
		return entity.ErrAccountTypeNotFound
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, a *entity.Account) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO accounts (user_id, account_type_id, account_no, gender, birth_date, balance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, a.UserID, a.AccountTypeID, a.AccountNo, a.Gender, a.BirthDate, a.Balance)
	if err := row.Scan(&a.ID); err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

const accountSelect = `
	SELECT a.id, a.user_id, a.account_type_id, a.account_no, a.gender, a.birth_date,
	       a.balance, a.initial_deposit_date, a.interest_start_date, u.email,
	       t.id, t.name, t.maximum_withdrawal_amount, t.annual_interest_rate, t.interest_calculation_per_year
	FROM accounts a
	JOIN users u ON u.id = a.user_id
	JOIN account_types t ON t.id = a.account_type_id
`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	a := &entity.Account{Type: &entity.AccountType{}}
	err := row.Scan(&a.ID, &a.UserID, &a.AccountTypeID, &a.AccountNo, &a.Gender, &a.BirthDate,
		&a.Balance, &a.InitialDepositDate, &a.InterestStartDate, &a.OwnerEmail,
		&a.Type.ID, &a.Type.Name, &a.Type.MaximumWithdrawalAmount, &a.Type.AnnualInterestRate, &a.Type.InterestCalculationPerYear)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, accountSelect+` WHERE a.id = $1`, id))
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*entity.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, accountSelect+` WHERE a.user_id = $1`, userID))
}

func (r *AccountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	rows, err := r.pool.Query(ctx, accountSelect+` ORDER BY a.account_no`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) NextAccountNo(ctx context.Context, start int64) (int64, error) {
	var next int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(MAX(account_no) + 1, $1) FROM accounts
	`, start).Scan(&next)
	if err != nil {
		return 0, err
	}
	if next < start {
		next = start
	}
	return next, nil
}

func (r *AccountRepository) DeleteAdminOwned(ctx context.Context) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM accounts
		WHERE user_id IN (SELECT id FROM users WHERE is_staff OR is_superuser)
	`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

func (r *AccountRepository) CreateAddress(ctx context.Context, a *entity.Address) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO addresses (user_id, street_address, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.UserID, a.StreetAddress, a.City, a.PostalCode, a.Country)
	if err := row.Scan(&a.ID); err != nil {
		return mapConstraintErr(err)
	}
	return nil
}

func (r *AccountRepository) GetAddressByUserID(ctx context.Context, userID string) (*entity.Address, error) {
	a := &entity.Address{}
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, street_address, city, postal_code, country
		FROM addresses WHERE user_id = $1
	`, userID).Scan(&a.ID, &a.UserID, &a.StreetAddress, &a.City, &a.PostalCode, &a.Country)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAddressNotFound
		}
		return nil, err
	}
	return a, nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
