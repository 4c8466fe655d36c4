// Package users persists user accounts keyed by unique email.
package users

import (
	"context"

	"github.com/apetrenko/storefront/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
