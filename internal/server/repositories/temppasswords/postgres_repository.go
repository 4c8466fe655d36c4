package temppasswords

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

// GetActiveByUserID picks the newest row: the issue flow keeps at most one
// override per user, but if older rows survive, the latest one wins.
func (r *PostgresRepository) GetActiveByUserID(ctx context.Context, userID string) (*models.TemporaryPassword, error) {
	query :=
		`SELECT id, user_id, password_hash, created_at FROM temporary_passwords
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1
		 `

	tp := &models.TemporaryPassword{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&tp.ID, &tp.UserID, &tp.PasswordHash, &tp.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tp, nil
}

func (r *PostgresRepository) Create(ctx context.Context, tp *models.TemporaryPassword) (*models.TemporaryPassword, error) {
	query :=
		`INSERT INTO temporary_passwords (id, user_id, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, tp.ID, tp.UserID, tp.PasswordHash).Scan(&tp.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tp, nil
}

func (r *PostgresRepository) DeleteByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM temporary_passwords WHERE user_id = $1`

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
