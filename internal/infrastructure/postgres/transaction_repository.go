package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
)

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Post applies one balance mutation and its ledger append as a single unit.
// The account row is locked FOR UPDATE for the duration, so concurrent
// postings against the same account serialize and every snapshot equals the
// running total at its commit point.
func (r *TransactionRepository) Post(ctx context.Context, p repository.PostParams) (*entity.Transaction, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("tx begin failed: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance decimal.Decimal
	var initialDeposit *time.Time
	err = tx.QueryRow(ctx, `
		SELECT balance, initial_deposit_date FROM accounts WHERE id = $1 FOR UPDATE
	`, p.AccountID).Scan(&balance, &initialDeposit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("lock acquisition failed: %w", err)
	}

	var newBalance decimal.Decimal
	switch p.Type {
	case entity.TransactionWithdrawal:
		if p.Amount.GreaterThan(balance) {
			return nil, entity.ErrInsufficientFunds
		}
		newBalance = balance.Sub(p.Amount)
	default:
		newBalance = balance.Add(p.Amount)
	}

	if p.Type == entity.TransactionDeposit && initialDeposit == nil {
		now := time.Now()
		interestStart := now.AddDate(0, p.InterestIntervalMonths, 0)
		_, err = tx.Exec(ctx, `
			UPDATE accounts
			SET balance = $1, initial_deposit_date = $2, interest_start_date = $3
			WHERE id = $4
		`, newBalance, now, interestStart, p.AccountID)
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE accounts SET balance = $1 WHERE id = $2
		`, newBalance, p.AccountID)
	}
	if err != nil {
		return nil, fmt.Errorf("balance update failed: %w", err)
	}

	t := &entity.Transaction{
		AccountID:    p.AccountID,
		Amount:       p.Amount,
		BalanceAfter: newBalance,
		Type:         p.Type,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO transactions (account_id, amount, balance_after, transaction_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, timestamp
	`, t.AccountID, t.Amount, t.BalanceAfter, int(t.Type)).Scan(&t.ID, &t.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("ledger append failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("tx commit failed: %w", err)
	}
	return t, nil
}

const transactionSelect = `
	SELECT tr.id, tr.account_id, tr.amount, tr.balance_after, tr.transaction_type, tr.timestamp,
	       a.account_no, u.email
	FROM transactions tr
	JOIN accounts a ON a.id = tr.account_id
	JOIN users u ON u.id = a.user_id
`

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	t := &entity.Transaction{}
	var txType int
	err := row.Scan(&t.ID, &t.AccountID, &t.Amount, &t.BalanceAfter, &txType, &t.Timestamp,
		&t.AccountNo, &t.OwnerEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrTransactionNotFound
		}
		return nil, err
	}
	t.Type = entity.TransactionType(txType)
	return t, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, transactionSelect+` WHERE tr.id = $1`, id))
}

// buildTransactionQuery AND-composes the filter's set conditions onto the
// base select. The To bound is inclusive on the day, so it becomes a strict
// bound on the following midnight.
func buildTransactionQuery(f repository.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AccountID != "" {
		conds = append(conds, "tr.account_id = "+arg(f.AccountID))
	}
	if f.From != nil {
		conds = append(conds, "tr.timestamp >= "+arg(*f.From))
	}
	if f.To != nil {
		conds = append(conds, "tr.timestamp < "+arg(f.To.AddDate(0, 0, 1)))
	}
	if f.Type != 0 {
		conds = append(conds, "tr.transaction_type = "+arg(int(f.Type)))
	}
	if f.Text != "" {
		p := arg("%" + f.Text + "%")
		conds = append(conds, fmt.Sprintf(
			"(tr.amount::text LIKE %[1]s OR tr.balance_after::text LIKE %[1]s OR a.account_no::text LIKE %[1]s OR u.email ILIKE %[1]s)", p))
	}

	query := transactionSelect
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	return query + " ORDER BY tr.timestamp DESC", args
}

func (r *TransactionRepository) Filter(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query, args := buildTransactionQuery(f)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrTransactionNotFound
	}
	return nil
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
