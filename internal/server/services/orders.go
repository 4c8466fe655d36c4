package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/dbx"
	"github.com/apetrenko/storefront/internal/server/models"
	"github.com/apetrenko/storefront/internal/server/repositories/products"
	"github.com/apetrenko/storefront/internal/server/repositories/repomanager"
)

// ProductQuantity references a catalog product with a requested quantity.
type ProductQuantity struct {
	ProductID string
	Quantity  int
}

// CreateOrderInput carries everything needed to place an order. Money fields
// are passed through unvalidated; range checks belong to the request layer.
type CreateOrderInput struct {
	BuyerEmail         string
	Address            string
	TotalCostCents     int64
	TotalDiscountCents int64
	Products           []ProductQuantity
}

// OrderService places orders: it resolves the buyer, resolves every
// referenced product concurrently, and writes the order header plus all line
// items in a single transaction. Catalog reads go through the (possibly
// cached) catalog repository; writes go through transaction-bound
// repositories from the manager.
type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	catalog     products.Repository
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager, catalog products.Repository) *OrderService {
	return &OrderService{db: db, repomanager: m, catalog: catalog}
}

// Create places an order. Any unknown product aborts the whole operation
// before a single row is written; the header and all lines commit together
// or not at all.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, in.BuyerEmail)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up buyer: %w", err)
	}

	resolved, err := s.resolveProducts(ctx, in.Products)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		OrderDate:          time.Now(),
		Address:            in.Address,
		TotalCostCents:     in.TotalCostCents,
		TotalDiscountCents: in.TotalDiscountCents,
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Orders(tx)

		if _, err := repo.CreateOrder(ctx, order); err != nil {
			return err
		}

		// Quantities pair with resolved products positionally.
		for i, p := range resolved {
			line := &models.OrderLine{
				ID:        uuid.NewString(),
				OrderID:   order.ID,
				ProductID: p.ID,
				Quantity:  in.Products[i].Quantity,
			}
			if _, err := repo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("writing order: %w", err)
	}

	return order, nil
}

// resolveProducts looks up every referenced product concurrently and
// fails fast on the first error. All lookups must succeed.
func (s *OrderService) resolveProducts(ctx context.Context, refs []ProductQuantity) ([]*models.Product, error) {
	resolved := make([]*models.Product, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			p, err := s.catalog.GetByID(gctx, ref.ProductID)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return fmt.Errorf("%w: %s", common.ErrProductNotFound, ref.ProductID)
				}
				return fmt.Errorf("resolving product %s: %w", ref.ProductID, err)
			}
			resolved[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// Get returns an order header and its lines.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, []models.OrderLine, error) {
	repo := s.repomanager.Orders(s.db)

	order, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	lines, err := repo.GetLines(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("loading order lines: %w", err)
	}

	return order, lines, nil
}
