package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-motoshop/app/db/testdb"
	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	categoryRepo := repositories.NewCategoryRepository(db)
	return NewCatalogService(
		repositories.NewProductRepository(db),
		repositories.NewServiceRepository(db),
		repositories.NewNewsRepository(db),
		categoryRepo,
		newCategoryService(db, CategoryDeleteBlock),
		helpers.NewValidator(),
	)
}

func TestProductCRUD(t *testing.T) {
	db := testdb.New(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	category := testdb.Category(t, db, models.CategoryTypeProduct, "Nhớt máy", nil)
	newsCategory := testdb.Category(t, db, models.CategoryTypeNews, "Khuyến mãi", nil)

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:       "Nhớt Motul 7100",
		Price:      decimal.NewFromInt(250000),
		SalePrice:  decimal.NewNullDecimal(decimal.NewFromInt(220000)),
		CategoryID: &category.ID,
		Images:     []ProductImageInput{{URL: "/a.jpg"}, {URL: "/b.jpg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "nhot-motul-7100", product.Slug)
	assert.True(t, product.InStock)
	assert.True(t, product.IsActive)

	fetched, err := svc.GetProduct(ctx, "nhot-motul-7100")
	require.NoError(t, err)
	require.Len(t, fetched.ProductImages, 2)
	assert.Equal(t, "/a.jpg", fetched.PrimaryImage())
	assert.True(t, fetched.EffectivePrice().Equal(decimal.NewFromInt(220000)))

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Nhớt Motul 7100", Price: decimal.NewFromInt(1)})
	assert.True(t, apperror.Is(err, apperror.Conflict))

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Free", Price: decimal.Zero})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Wrong type", Price: decimal.NewFromInt(1), CategoryID: &newsCategory.ID})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))

	inactive := false
	updated, err := svc.UpdateProduct(ctx, product.ID, ProductInput{
		Name:     "Nhớt Motul 7100 4T",
		Slug:     "motul-7100",
		Price:    decimal.NewFromInt(260000),
		IsActive: &inactive,
		Images:   []ProductImageInput{{URL: "/c.jpg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "motul-7100", updated.Slug)
	assert.Nil(t, updated.CategoryID)

	_, err = svc.GetProduct(ctx, "motul-7100")
	assert.True(t, apperror.Is(err, apperror.NotFound), "inactive products are hidden")

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	assert.True(t, apperror.Is(svc.DeleteProduct(ctx, product.ID), apperror.NotFound))

	again, err := svc.CreateProduct(ctx, ProductInput{Name: "Motul 7100", Price: decimal.NewFromInt(1)})
	require.NoError(t, err, "slug of a deleted product can be reused")
	assert.Equal(t, "motul-7100", again.Slug)
}

func TestListProductsByCategorySubtree(t *testing.T) {
	db := testdb.New(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	root := testdb.Category(t, db, models.CategoryTypeProduct, "Phụ tùng xe", nil)
	child := testdb.Category(t, db, models.CategoryTypeProduct, "Phanh", &root.ID)
	other := testdb.Category(t, db, models.CategoryTypeProduct, "Đồ chơi", nil)

	inRoot := testdb.Product(t, db, "Gác chân", 100, 0, true)
	inChild := testdb.Product(t, db, "Đĩa phanh", 200, 0, true)
	inOther := testdb.Product(t, db, "Tem xe", 50, 0, true)
	require.NoError(t, db.Model(inRoot).Update("category_id", root.ID).Error)
	require.NoError(t, db.Model(inChild).Update("category_id", child.ID).Error)
	require.NoError(t, db.Model(inOther).Update("category_id", other.ID).Error)

	products, total, err := svc.ListProducts(ctx, ListParams{CategorySlug: root.Slug})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	ids := []string{}
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{inRoot.ID, inChild.ID}, ids)

	_, total, err = svc.ListProducts(ctx, ListParams{Search: "tem"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, _, err = svc.ListProducts(ctx, ListParams{CategorySlug: "khong-ton-tai"})
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestServiceAndNewsContent(t *testing.T) {
	db := testdb.New(t)
	svc := newCatalogService(db)
	ctx := context.Background()
	serviceCategory := testdb.Category(t, db, models.CategoryTypeService, "Bảo dưỡng", nil)
	newsCategory := testdb.Category(t, db, models.CategoryTypeNews, "Tin xe", nil)

	service, err := svc.CreateService(ctx, ServiceInput{
		Name:       "Thay nhớt",
		PriceFrom:  decimal.NewNullDecimal(decimal.NewFromInt(50000)),
		CategoryID: &serviceCategory.ID,
	})
	require.NoError(t, err)
	assert.True(t, service.IsActive)

	_, err = svc.CreateService(ctx, ServiceInput{Name: "Rửa xe", CategoryID: &newsCategory.ID})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))

	services, total, err := svc.ListServices(ctx, ListParams{CategorySlug: serviceCategory.Slug}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, service.ID, services[0].ID)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	published, err := svc.CreateNews(ctx, NewsInput{Title: "Ra mắt Vario 2026", PublishedAt: &past, CategoryID: &newsCategory.ID})
	require.NoError(t, err)
	_, err = svc.CreateNews(ctx, NewsInput{Title: "Bài sắp đăng", PublishedAt: &future})
	require.NoError(t, err)
	draft, err := svc.CreateNews(ctx, NewsInput{Title: "Bản nháp"})
	require.NoError(t, err)

	posts, total, err := svc.ListNews(ctx, ListParams{}, true)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, published.ID, posts[0].ID)

	_, total, err = svc.ListNews(ctx, ListParams{}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	_, err = svc.GetNews(ctx, draft.Slug)
	assert.True(t, apperror.Is(err, apperror.NotFound))

	got, err := svc.GetNews(ctx, "ra-mat-vario-2026")
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)

	require.NoError(t, svc.DeleteNews(ctx, draft.ID))
	require.NoError(t, svc.DeleteService(ctx, service.ID))
	_, err = svc.GetService(ctx, service.Slug)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}
