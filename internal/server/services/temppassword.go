package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/dbx"
	"github.com/apetrenko/storefront/internal/server/auth"
	"github.com/apetrenko/storefront/internal/server/models"
	"github.com/apetrenko/storefront/internal/server/repositories/repomanager"
)

// TemporaryPasswordService implements the administrative reset flow: issuing
// an override that shadows the permanent password, and revoking it.
type TemporaryPasswordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTemporaryPasswordService(db *sql.DB, m repomanager.RepositoryManager) *TemporaryPasswordService {
	return &TemporaryPasswordService{db: db, repomanager: m}
}

// Issue replaces any existing override for the user with a new one. Delete
// and insert run in one transaction, keeping at most one active override per
// user.
func (s *TemporaryPasswordService) Issue(ctx context.Context, email, password string) error {
	user, err := s.lookupUser(ctx, email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing temporary password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.TemporaryPasswords(tx)

		if err := repo.DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}
		_, err := repo.Create(ctx, &models.TemporaryPassword{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			PasswordHash: hash,
		})
		return err
	})
}

// Revoke removes any override for the user, restoring the permanent password.
func (s *TemporaryPasswordService) Revoke(ctx context.Context, email string) error {
	user, err := s.lookupUser(ctx, email)
	if err != nil {
		return err
	}
	return s.repomanager.TemporaryPasswords(s.db).DeleteByUserID(ctx, user.ID)
}

func (s *TemporaryPasswordService) lookupUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	return user, nil
}
