package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
)

type ContentFilter struct {
	CategoryIDs []string
	ActiveOnly  bool
	Limit       int
	Offset      int
}

type ServiceRepositoryImpl interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetBySlug(ctx context.Context, slug string) (*models.Service, error)
	GetPaginated(ctx context.Context, filter ContentFilter) ([]models.Service, int64, error)
	Create(ctx context.Context, service *models.Service) error
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
}

type serviceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) ServiceRepositoryImpl {
	return &serviceRepository{db}
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).Preload("Category").First(&service, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) GetBySlug(ctx context.Context, slug string) (*models.Service, error) {
	var service models.Service
	if err := r.db.WithContext(ctx).Preload("Category").First(&service, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) GetPaginated(ctx context.Context, filter ContentFilter) ([]models.Service, int64, error) {
	var services []models.Service
	var total int64

	scope := func(db *gorm.DB) *gorm.DB {
		if len(filter.CategoryIDs) > 0 {
			db = db.Where("category_id IN ?", filter.CategoryIDs)
		}
		if filter.ActiveOnly {
			db = db.Where("is_active = ?", true)
		}
		return db
	}

	if err := r.db.WithContext(ctx).Model(&models.Service{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).Scopes(scope).Preload("Category").Order("name ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}
	err := query.Find(&services).Error
	return services, total, err
}

func (r *serviceRepository) Create(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Omit("Category").Create(service).Error
}

func (r *serviceRepository) Update(ctx context.Context, service *models.Service) error {
	return r.db.WithContext(ctx).Omit("Category").Save(service).Error
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id).Error
}
