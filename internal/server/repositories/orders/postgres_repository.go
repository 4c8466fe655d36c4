package orders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/dbx"
	"github.com/apetrenko/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	query :=
		`INSERT INTO orders (id, user_id, order_date, address, total_cost_cents, total_discount_cents)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 `

	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.UserID, o.OrderDate, o.Address, o.TotalCostCents, o.TotalDiscountCents)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return o, nil
}

func (r *PostgresRepository) CreateLine(ctx context.Context, l *models.OrderLine) (*models.OrderLine, error) {
	query :=
		`INSERT INTO order_lines (id, order_id, product_id, quantity)
		 VALUES ($1, $2, $3, $4)
		 `

	if _, err := r.db.ExecContext(ctx, query, l.ID, l.OrderID, l.ProductID, l.Quantity); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return l, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query :=
		`SELECT id, user_id, order_date, address, total_cost_cents, total_discount_cents FROM orders
		 WHERE id = $1
		 `

	o := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.OrderDate, &o.Address, &o.TotalCostCents, &o.TotalDiscountCents)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return o, nil
}

func (r *PostgresRepository) GetLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	query :=
		`SELECT id, order_id, product_id, quantity FROM order_lines
		 WHERE order_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return lines, nil
}
