// Package orders persists order headers and their line items. The write
// methods take a DBTX so the workflow can run header and lines inside one
// transaction.
package orders

import (
	"context"

	"github.com/apetrenko/storefront/internal/server/models"
)

type Repository interface {
	CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error)
	CreateLine(ctx context.Context, l *models.OrderLine) (*models.OrderLine, error)
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetLines(ctx context.Context, orderID string) ([]models.OrderLine, error)
}
