// Package testdb opens a migrated in-memory SQLite database for tests.
package testdb

import (
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns a private database. A single connection is used, so code under
// test must not reach for the root handle while a transaction is open.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func Category(t testing.TB, db *gorm.DB, categoryType, name string, parentID *string) *models.Category {
	t.Helper()
	category := &models.Category{
		Name:     name,
		Slug:     helpers.GenerateSlug(name),
		Type:     categoryType,
		ParentID: parentID,
		IsActive: true,
	}
	require.NoError(t, db.Omit("Subcategories").Create(category).Error)
	return category
}

// Product creates an active product. A salePrice of 0 means no sale price.
func Product(t testing.TB, db *gorm.DB, name string, price, salePrice int64, inStock bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Slug:     helpers.GenerateSlug(name) + "-" + uuid.New().String()[:6],
		Price:    decimal.NewFromInt(price),
		InStock:  inStock,
		IsActive: true,
		ProductImages: []models.ProductImage{
			{URL: "/uploads/products/" + helpers.GenerateSlug(name) + ".jpg", Position: 0},
		},
	}
	if salePrice > 0 {
		product.SalePrice = decimal.NewNullDecimal(decimal.NewFromInt(salePrice))
	}
	require.NoError(t, db.Omit("Category").Create(product).Error)
	return product
}
