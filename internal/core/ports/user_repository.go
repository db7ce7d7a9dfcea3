package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// IncrementLoginCount bumps login_count atomically on successful login.
	IncrementLoginCount(ctx context.Context, id string) error

	// Analytics reads.
	CountAll(ctx context.Context) (int64, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
}
