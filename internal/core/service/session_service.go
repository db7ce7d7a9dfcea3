package service

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/streetlab/storefront-api/internal/core/domain"
	"github.com/streetlab/storefront-api/internal/core/ports"
)

// SessionService verifies bearer tokens and resolves them to live user
// records. Verification itself mutates nothing.
type SessionService struct {
	repo      ports.UserRepository
	jwtSecret string
}

func NewSessionService(repo ports.UserRepository, jwtSecret string) *SessionService {
	return &SessionService{repo: repo, jwtSecret: jwtSecret}
}

// Resolve verifies signature and expiry, then looks the embedded user ID up
// in the store. A token whose subject no longer resolves is treated as
// invalid: the session is dead even though the signature checks out.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.repo.FindByID(ctx, sub)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}
	return user, nil
}
