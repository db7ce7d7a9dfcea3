package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/streetlab/storefront-api/internal/core/domain"
)

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil {
		t.Fatalf("expected user, got nil")
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected client role, got %s", user.Role)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing email, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "a@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for missing password, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "bob", "bob@example.com", "pass"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), "bobby", "bob@example.com", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	registered, err := svc.Register(context.Background(), "carol", "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.LoginCount != 1 {
		t.Fatalf("expected login count 1, got %d", user.LoginCount)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if sub, _ := claims["sub"].(string); sub != registered.ID {
		t.Fatalf("expected sub %q, got %q", registered.ID, claims["sub"])
	}
	// Role must never ride inside the token; it is resolved fresh per request.
	if _, ok := claims["role"]; ok {
		t.Fatalf("token must not carry a role claim")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "dave", "dave@example.com", "right"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "dave@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(repo.loginBumps) != 0 {
		t.Fatalf("login count must not change on failed login")
	}
}

func TestAuthService_Login_CounterWriteFailureStillLogsIn(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, err := svc.Register(context.Background(), "erin", "erin@example.com", "pass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	repo.incErr = errors.New("mongo: connection reset")

	token, user, err := svc.Login(context.Background(), "erin@example.com", "pass")
	if err != nil {
		t.Fatalf("login must succeed when only the counter write fails, got %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	// The stored count never moved, so the returned user must not claim it did.
	if user.LoginCount != 0 {
		t.Fatalf("expected login count 0, got %d", user.LoginCount)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
