package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"vastra-api/models"
	"vastra-api/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestCreate_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	product := &models.Product{
		Name:       "Banarasi Silk Saree",
		PricePaise: 1299900,
		Category:   models.CategorySaree,
		ImageURL:   "/images/banarasi-silk-saree.jpg",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), product)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, product.ID)
}

func TestFindByID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	p, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, p)
}

func TestFindByID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "price_paise", "category", "image_url", "created_at"}).
		AddRow(id, "Chikankari Kurta", "Hand-embroidered", int64(249900), models.CategoryKurta, "/images/kurta.jpg", time.Now())

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(rows)

	p, err := repo.FindByID(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "Chikankari Kurta", p.Name)
	assert.Equal(t, int64(249900), p.PricePaise)
}

func TestFindAll_WithCategoryFilter(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormProductRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	rows := sqlmock.NewRows([]string{"id", "name", "description", "price_paise", "category", "image_url", "created_at"}).
		AddRow(uuid.New(), "Bridal Lehenga", "", int64(4599900), models.CategoryLehenga, "/images/lehenga.jpg", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "products"`)).
		WillReturnRows(rows)

	products, total, err := repo.FindAll(context.Background(), 1, 10, models.CategoryLehenga)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, products, 1)
	assert.Equal(t, models.CategoryLehenga, products[0].Category)
}
