package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
)

type NewsRepositoryImpl interface {
	GetByID(ctx context.Context, id string) (*models.NewsPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.NewsPost, error)
	GetPaginated(ctx context.Context, filter ContentFilter) ([]models.NewsPost, int64, error)
	Create(ctx context.Context, post *models.NewsPost) error
	Update(ctx context.Context, post *models.NewsPost) error
	Delete(ctx context.Context, id string) error
}

type newsRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNewsRepository(db *gorm.DB) NewsRepositoryImpl {
	return &newsRepository{db: db, now: time.Now}
}

func (r *newsRepository) GetByID(ctx context.Context, id string) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := r.db.WithContext(ctx).Preload("Category").First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := r.db.WithContext(ctx).Preload("Category").First(&post, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// GetPaginated treats ActiveOnly as "published": drafts and scheduled posts
// are hidden.
func (r *newsRepository) GetPaginated(ctx context.Context, filter ContentFilter) ([]models.NewsPost, int64, error) {
	var posts []models.NewsPost
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if len(filter.CategoryIDs) > 0 {
			db = db.Where("category_id IN ?", filter.CategoryIDs)
		}
		if filter.ActiveOnly {
			db = db.Where("published_at IS NOT NULL AND published_at <= ?", r.now())
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.NewsPost{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Scopes(scope).Preload("Category").Order("published_at DESC").Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := query.Find(&posts).Error
	return posts, total, err
}

func (r *newsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	return r.db.WithContext(ctx).Omit("Category").Create(post).Error
}

func (r *newsRepository) Update(ctx context.Context, post *models.NewsPost) error {
	return r.db.WithContext(ctx).Omit("Category").Save(post).Error
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.NewsPost{}, "id = ?", id).Error
}
