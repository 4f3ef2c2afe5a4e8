package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
)

type CategoryRepositoryImpl interface {
	WithTx(tx *gorm.DB) CategoryRepositoryImpl
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, categoryType, slug string) (*models.Category, error)
	ListByType(ctx context.Context, categoryType string, activeOnly bool) ([]models.Category, error)
	CountChildren(ctx context.Context, id string) (int64, error)
	Update(ctx context.Context, category *models.Category) error
	DetachChildren(ctx context.Context, id string) error
	CountAttachedItems(ctx context.Context, id, categoryType string) (int64, error)
	DetachItems(ctx context.Context, id, categoryType string) error
	Delete(ctx context.Context, id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepositoryImpl {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("Subcategories").Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, categoryType, slug string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "type = ? AND slug = ?", categoryType, slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByType(ctx context.Context, categoryType string, activeOnly bool) ([]models.Category, error) {
	var categories []models.Category
	query := r.db.WithContext(ctx).Where("type = ?", categoryType)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("sort_order ASC").Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) CountChildren(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("Subcategories").Save(category).Error
}

func (r *categoryRepository) DetachChildren(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("parent_id = ?", id).
		Update("parent_id", nil).Error
}

func (r *categoryRepository) CountAttachedItems(ctx context.Context, id, categoryType string) (int64, error) {
	model, err := itemModelFor(categoryType)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(model).Where("category_id = ?", id).Count(&count).Error
	return count, err
}

// DetachItems also clears soft-deleted products so the foreign key does not
// block the delete.
func (r *categoryRepository) DetachItems(ctx context.Context, id, categoryType string) error {
	model, err := itemModelFor(categoryType)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Unscoped().
		Model(model).
		Where("category_id = ?", id).
		Update("category_id", nil).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error
}

func itemModelFor(categoryType string) (interface{}, error) {
	switch categoryType {
	case models.CategoryTypeProduct:
		return &models.Product{}, nil
	case models.CategoryTypeService:
		return &models.Service{}, nil
	case models.CategoryTypeNews:
		return &models.NewsPost{}, nil
	default:
		return nil, fmt.Errorf("unknown category type %q", categoryType)
	}
}
