package ports

import (
	"context"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

// AuthService implements registration and login. Registration always creates
// client-role accounts; admins are seeded out of band.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// SessionService resolves a bearer token to a live user record. The lookup is
// performed on every call so role and login count are never stale claims
// baked into the token.
type SessionService interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}
