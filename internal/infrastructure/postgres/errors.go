package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapConstraintErr translates postgres constraint violations into the domain
// error taxonomy, keyed by constraint name. Unknown violations pass through.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case "users_email_key":
			return entity.ErrDuplicateEmail
		case "accounts_user_id_key":
			return entity.ErrDuplicateAccountForUser
		case "accounts_account_no_key":
			return entity.ErrDuplicateAccountNumber
		case "addresses_user_id_key":
			return entity.ErrDuplicateAddressForUser
		}
	case pgForeignKeyViolation:
		if pgErr.ConstraintName == "accounts_account_type_id_fkey" {
			return entity.ErrAccountTypeInUse
		}
	}
	return err
}
