package repomanager

import (
	"context"
	"database/sql"

	"github.com/apetrenko/storefront/internal/dbx"
	"github.com/apetrenko/storefront/internal/server/repositories/orders"
	"github.com/apetrenko/storefront/internal/server/repositories/products"
	"github.com/apetrenko/storefront/internal/server/repositories/temppasswords"
	"github.com/apetrenko/storefront/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX. Passing a *sql.Tx
// instead of the pool handle runs several repositories inside one
// transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	TemporaryPasswords(db dbx.DBTX) temppasswords.Repository
	Products(db dbx.DBTX) products.Repository
	Orders(db dbx.DBTX) orders.Repository
}
