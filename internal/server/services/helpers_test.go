package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/dbx"
	"github.com/apetrenko/storefront/internal/server/config"
	"github.com/apetrenko/storefront/internal/server/models"
	"github.com/apetrenko/storefront/internal/server/repositories/orders"
	"github.com/apetrenko/storefront/internal/server/repositories/products"
	"github.com/apetrenko/storefront/internal/server/repositories/temppasswords"
	"github.com/apetrenko/storefront/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
	}
}

// --- fakes ---

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	created   []*models.User
	createErr error
}

func newFakeUsersRepo(us ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	for _, u := range us {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeTempPasswordsRepo struct {
	byUserID map[string]*models.TemporaryPassword
	created  []*models.TemporaryPassword
	deleted  []string
}

func newFakeTempPasswordsRepo(tps ...*models.TemporaryPassword) *fakeTempPasswordsRepo {
	f := &fakeTempPasswordsRepo{byUserID: map[string]*models.TemporaryPassword{}}
	for _, tp := range tps {
		f.byUserID[tp.UserID] = tp
	}
	return f
}

func (f *fakeTempPasswordsRepo) GetActiveByUserID(ctx context.Context, userID string) (*models.TemporaryPassword, error) {
	if tp, ok := f.byUserID[userID]; ok {
		return tp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeTempPasswordsRepo) Create(ctx context.Context, tp *models.TemporaryPassword) (*models.TemporaryPassword, error) {
	f.created = append(f.created, tp)
	f.byUserID[tp.UserID] = tp
	return tp, nil
}

func (f *fakeTempPasswordsRepo) DeleteByUserID(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	delete(f.byUserID, userID)
	return nil
}

type fakeProductsRepo struct {
	byID map[string]*models.Product
}

func newFakeProductsRepo(ps ...*models.Product) *fakeProductsRepo {
	f := &fakeProductsRepo{byID: map[string]*models.Product{}}
	for _, p := range ps {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	f.byID[p.ID] = p
	return p, nil
}

type fakeOrdersRepo struct {
	orders []*models.Order
	lines  []*models.OrderLine

	lineErrAt int // 1-based call index that fails; 0 disables
	lineCalls int

	getOrder *models.Order
	getLines []models.OrderLine
	getErr   error
}

func (f *fakeOrdersRepo) CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error) {
	f.orders = append(f.orders, o)
	return o, nil
}

func (f *fakeOrdersRepo) CreateLine(ctx context.Context, l *models.OrderLine) (*models.OrderLine, error) {
	f.lineCalls++
	if f.lineErrAt != 0 && f.lineCalls == f.lineErrAt {
		return nil, common.ErrNotFound
	}
	f.lines = append(f.lines, l)
	return l, nil
}

func (f *fakeOrdersRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOrder, nil
}

func (f *fakeOrdersRepo) GetLines(ctx context.Context, orderID string) ([]models.OrderLine, error) {
	return f.getLines, nil
}

// fakeManager vends the fakes regardless of the DBTX it is handed.
type fakeManager struct {
	users    *fakeUsersRepo
	tpasses  *fakeTempPasswordsRepo
	products *fakeProductsRepo
	orders   *fakeOrdersRepo
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeManager) Users(db dbx.DBTX) users.Repository { return m.users }

func (m *fakeManager) TemporaryPasswords(db dbx.DBTX) temppasswords.Repository { return m.tpasses }

func (m *fakeManager) Products(db dbx.DBTX) products.Repository { return m.products }

func (m *fakeManager) Orders(db dbx.DBTX) orders.Repository { return m.orders }
