// Package products persists the product catalog. The order workflow only
// reads from it; writes come from the administrative tooling.
package products

import (
	"context"

	"github.com/apetrenko/storefront/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
}
