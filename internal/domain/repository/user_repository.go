package repository

import (
	"context"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	// List returns users ordered by join date descending.
	List(ctx context.Context) ([]*entity.User, error)
	// Delete removes a user; dependent account, address and ledger rows
	// cascade at the store level.
	Delete(ctx context.Context, id string) error
}
