package repositories

import (
	"context"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	WithTx(tx *gorm.DB) OrderItemRepository
	BulkCreate(ctx context.Context, items []models.OrderItem) error
}

type gormOrderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: db}
}

func (r *gormOrderItemRepository) WithTx(tx *gorm.DB) OrderItemRepository {
	return &gormOrderItemRepository{db: tx}
}

func (r *gormOrderItemRepository) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}
