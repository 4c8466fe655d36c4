package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/server/models"
	"github.com/apetrenko/storefront/internal/server/repositories/products"
)

// CatalogService exposes product lookup and the administrative add flow.
type CatalogService struct {
	catalog products.Repository
}

func NewCatalogService(catalog products.Repository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	p, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrProductNotFound
		}
		return nil, fmt.Errorf("looking up product: %w", err)
	}
	return p, nil
}

func (s *CatalogService) Add(ctx context.Context, name, description string, priceCents int64) (*models.Product, error) {
	p := &models.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
	}
	if _, err := s.catalog.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return p, nil
}
