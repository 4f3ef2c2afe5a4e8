package services

import (
	"context"
	"testing"

	"github.com/Rakhulsr/go-motoshop/app/db/testdb"
	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCategoryService(db *gorm.DB, policy string) *CategoryService {
	return NewCategoryService(db, repositories.NewCategoryRepository(db), helpers.NewValidator(), policy)
}

func strPtr(s string) *string { return &s }

func TestCategorySlugUniquePerType(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	ctx := context.Background()

	created, err := svc.Create(ctx, CategoryInput{Name: "Phụ tùng", Type: models.CategoryTypeProduct})
	require.NoError(t, err)
	assert.Equal(t, "phu-tung", created.Slug)
	assert.True(t, created.IsActive)

	_, err = svc.Create(ctx, CategoryInput{Name: "Phụ tùng khác", Slug: "phu-tung", Type: models.CategoryTypeProduct})
	assert.True(t, apperror.Is(err, apperror.Conflict))

	other, err := svc.Create(ctx, CategoryInput{Name: "Phụ tùng", Type: models.CategoryTypeNews})
	require.NoError(t, err)
	assert.Equal(t, "phu-tung", other.Slug)
}

func TestCategoryCreateValidation(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	ctx := context.Background()
	news := testdb.Category(t, db, models.CategoryTypeNews, "Tin tức", nil)

	_, err := svc.Create(ctx, CategoryInput{Name: "", Type: models.CategoryTypeProduct})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))

	_, err = svc.Create(ctx, CategoryInput{Name: "Bảo dưỡng", Type: "SHOES"})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))

	_, err = svc.Create(ctx, CategoryInput{Name: "Nhớt", Type: models.CategoryTypeProduct, ParentID: strPtr("missing")})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))

	_, err = svc.Create(ctx, CategoryInput{Name: "Nhớt", Type: models.CategoryTypeProduct, ParentID: &news.ID})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument), "parent must share the type")

	lower, err := svc.Create(ctx, CategoryInput{Name: "Sự kiện", Type: "news", ParentID: strPtr(news.ID)})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTypeNews, lower.Type)
}

func TestCategoryCycleRejected(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	ctx := context.Background()

	root := testdb.Category(t, db, models.CategoryTypeProduct, "Xe số", nil)
	child := testdb.Category(t, db, models.CategoryTypeProduct, "Honda", &root.ID)
	grandchild := testdb.Category(t, db, models.CategoryTypeProduct, "Wave", &child.ID)

	for _, parent := range []string{root.ID, child.ID, grandchild.ID} {
		_, err := svc.Update(ctx, root.ID, CategoryInput{Name: "Xe số", Type: models.CategoryTypeProduct, ParentID: strPtr(parent)})
		assert.True(t, apperror.Is(err, apperror.InvalidArgument), "parent %s", parent)
	}

	stored, err := repositories.NewCategoryRepository(db).GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ParentID, "rejected update must not persist")

	moved, err := svc.Update(ctx, grandchild.ID, CategoryInput{Name: "Wave", Type: models.CategoryTypeProduct, ParentID: strPtr(root.ID)})
	require.NoError(t, err)
	assert.Equal(t, root.ID, *moved.ParentID)
}

func TestCategoryTypeChangeBlockedWithChildren(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	ctx := context.Background()
	root := testdb.Category(t, db, models.CategoryTypeService, "Sửa chữa", nil)
	testdb.Category(t, db, models.CategoryTypeService, "Sơn xe", &root.ID)

	_, err := svc.Update(ctx, root.ID, CategoryInput{Name: "Sửa chữa", Type: models.CategoryTypeNews})
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
}

func TestListByTypeTree(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	ctx := context.Background()

	root := testdb.Category(t, db, models.CategoryTypeProduct, "Phụ kiện", nil)
	child := testdb.Category(t, db, models.CategoryTypeProduct, "Đèn", &root.ID)
	testdb.Category(t, db, models.CategoryTypeProduct, "Đèn pha", &child.ID)
	hidden := testdb.Category(t, db, models.CategoryTypeProduct, "Ẩn", &root.ID)
	require.NoError(t, db.Model(hidden).Update("is_active", false).Error)
	testdb.Category(t, db, models.CategoryTypeProduct, "Con của ẩn", &hidden.ID)
	testdb.Category(t, db, models.CategoryTypeNews, "Tin", nil)

	flat, err := svc.ListByType(ctx, models.CategoryTypeProduct, false, false)
	require.NoError(t, err)
	assert.Len(t, flat, 5)

	tree, err := svc.ListByType(ctx, models.CategoryTypeProduct, true, true)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, root.ID, tree[0].ID)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, child.ID, tree[0].Subcategories[0].ID)
	require.Len(t, tree[0].Subcategories[0].Subcategories, 1)
	assert.Equal(t, "Đèn pha", tree[0].Subcategories[0].Subcategories[0].Name)

	_, err = svc.ListByType(ctx, "SHOES", false, false)
	assert.True(t, apperror.Is(err, apperror.InvalidArgument))
}

func TestDescendantIDs(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	root := testdb.Category(t, db, models.CategoryTypeProduct, "Động cơ", nil)
	child := testdb.Category(t, db, models.CategoryTypeProduct, "Piston", &root.ID)
	grandchild := testdb.Category(t, db, models.CategoryTypeProduct, "Xéc măng", &child.ID)
	testdb.Category(t, db, models.CategoryTypeProduct, "Khác", nil)

	ids, err := svc.DescendantIDs(context.Background(), root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{root.ID, child.ID, grandchild.ID}, ids)
}

func TestCategoryDeleteBlockPolicy(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteBlock)
	ctx := context.Background()
	root := testdb.Category(t, db, models.CategoryTypeProduct, "Nhớt", nil)
	child := testdb.Category(t, db, models.CategoryTypeProduct, "Nhớt tay ga", &root.ID)
	p := testdb.Product(t, db, "Castrol Power1", 150000, 0, true)
	require.NoError(t, db.Model(p).Update("category_id", root.ID).Error)

	err := svc.Delete(ctx, root.ID)
	assert.True(t, apperror.Is(err, apperror.Conflict))

	require.NoError(t, db.Model(p).Update("category_id", nil).Error)
	require.NoError(t, svc.Delete(ctx, root.ID))

	repo := repositories.NewCategoryRepository(db)
	gone, err := repo.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	orphan, err := repo.GetByID(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, orphan)
	assert.Nil(t, orphan.ParentID, "children are detached, not deleted")

	err = svc.Delete(ctx, root.ID)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestCategoryDeleteDetachPolicy(t *testing.T) {
	db := testdb.New(t)
	svc := newCategoryService(db, CategoryDeleteDetach)
	ctx := context.Background()
	root := testdb.Category(t, db, models.CategoryTypeProduct, "Lốp", nil)
	p := testdb.Product(t, db, "Dunlop", 700000, 0, true)
	require.NoError(t, db.Model(p).Update("category_id", root.ID).Error)

	require.NoError(t, svc.Delete(ctx, root.ID))

	reloaded, err := repositories.NewProductRepository(db).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.CategoryID)
}

func TestBuildCategoryTreeKeepsOrder(t *testing.T) {
	a, b := "a", "b"
	flat := []models.Category{
		{ID: a, Name: "A"},
		{ID: "a1", Name: "A1", ParentID: &a},
		{ID: b, Name: "B"},
		{ID: "a2", Name: "A2", ParentID: &a},
		{ID: "x", Name: "orphan", ParentID: strPtr("filtered")},
	}

	tree := BuildCategoryTree(flat)
	require.Len(t, tree, 2)
	assert.Equal(t, "A", tree[0].Name)
	assert.Equal(t, "B", tree[1].Name)
	require.Len(t, tree[0].Subcategories, 2)
	assert.Equal(t, "A1", tree[0].Subcategories[0].Name)
	assert.Equal(t, "A2", tree[0].Subcategories[1].Name)
}
