package products

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/apetrenko/storefront/internal/common"
	"github.com/apetrenko/storefront/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestGetByID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*name,\s*description,\s*price_cents,\s*created_at\s+FROM\s+products\s+WHERE\s+id\s*=\s*\$1\s*$`

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price_cents", "created_at"}).
		AddRow("p-1", "Mug", "ceramic mug", int64(799), time.Now())
	mock.ExpectQuery(q).WithArgs("p-1").WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Name != "Mug" || got.PriceCents != 799 {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,.+FROM\s+products`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now())
	mock.ExpectQuery(`INSERT\s+INTO\s+products`).
		WithArgs("p-1", "Mug", "ceramic mug", int64(799)).
		WillReturnRows(rows)

	p := &models.Product{ID: "p-1", Name: "Mug", Description: "ceramic mug", PriceCents: 799}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be populated")
	}
}
