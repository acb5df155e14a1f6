package mongodb

import (
	"context"

	"scheme-matcher/internal/models"
)

// UserRepository defines the interface for account persistence.
// Accounts are insert-only; there are no update or delete operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
