// Package temppasswords persists administrative password overrides.
// While a row exists for a user, its hash shadows the permanent password
// during signin.
package temppasswords

import (
	"context"

	"github.com/apetrenko/storefront/internal/server/models"
)

type Repository interface {
	// GetActiveByUserID returns the newest override for the user, or
	// common.ErrNotFound when none exists.
	GetActiveByUserID(ctx context.Context, userID string) (*models.TemporaryPassword, error)
	Create(ctx context.Context, tp *models.TemporaryPassword) (*models.TemporaryPassword, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
