package repository

import (
	"context"

	"agroapi/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a user. A taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByEmail returns a user by email or sql.ErrNoRows.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
