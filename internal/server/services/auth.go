// Package services contains the server-side business logic. This file
// implements AuthService: signup, signin with temporary-password override
// resolution, and current-user lookup.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/server/auth"
	"github.com/apetrenko/storefront/internal/server/config"
	"github.com/apetrenko/storefront/internal/server/models"
	"github.com/apetrenko/storefront/internal/server/repositories/repomanager"
)

// SignUpInput carries the fields accepted at registration.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthService provides credential-based authentication:
//   - SignUp: create an account and issue a token
//   - SignIn: verify credentials (honouring a temporary override) and issue a token
//   - CurrentUser: resolve the account behind a verified token subject
type AuthService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// SignUp registers a new account and returns a signed token for it.
// A taken email yields common.ErrUserAlreadyExists.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, in.Email)
	if err == nil {
		return "", common.ErrUserAlreadyExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("checking email uniqueness: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if _, err := repo.Create(ctx, user); err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}

	return auth.GenerateToken(in.Email, s.jwtSecret, s.tokenValidityDuration)
}

// SignIn verifies email/password and returns a signed token. The effective
// password is the newest temporary override when one exists, else the stored
// permanent hash; the override is consulted on every call, never cached.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUserNotFound
		}
		return "", fmt.Errorf("looking up user: %w", err)
	}

	effectiveHash := user.PasswordHash
	override, err := s.repomanager.TemporaryPasswords(s.db).GetActiveByUserID(ctx, user.ID)
	if err == nil {
		effectiveHash = override.PasswordHash
	} else if !errors.Is(err, common.ErrNotFound) {
		return "", fmt.Errorf("looking up temporary password: %w", err)
	}

	if !auth.CheckPassword(password, effectiveHash) {
		return "", common.ErrWrongPassword
	}

	return auth.GenerateToken(email, s.jwtSecret, s.tokenValidityDuration)
}

// CurrentUser resolves the account for a previously verified token subject.
func (s *AuthService) CurrentUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return user, nil
}
