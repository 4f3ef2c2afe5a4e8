package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemRepositoryImpl interface {
	WithTx(tx *gorm.DB) CartItemRepositoryImpl
	Upsert(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, itemID string, qty int) error
	Delete(ctx context.Context, cartID string, productID string) error
	GetByCartID(ctx context.Context, cartID string) ([]models.CartItem, error)
	GetCartAndProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error)
	ClearCartItems(ctx context.Context, cartID string) error
}

type CartItemRepository struct {
	DB *gorm.DB
}

func NewCartItemRepository(db *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{db}
}

func (r *CartItemRepository) WithTx(tx *gorm.DB) CartItemRepositoryImpl {
	return &CartItemRepository{tx}
}

// Upsert inserts item or, when (cart_id, product_id) already exists, adds
// item.Quantity to the stored quantity in the same statement, capped at
// models.MaxCartItemQuantity. The stored price snapshot is kept on conflict;
// options are replaced only when given.
func (r *CartItemRepository) Upsert(ctx context.Context, item *models.CartItem) error {
	if item.Quantity > models.MaxCartItemQuantity {
		item.Quantity = models.MaxCartItemQuantity
	}
	assignments := map[string]interface{}{
		"quantity": gorm.Expr("CASE WHEN quantity + ? > ? THEN ? ELSE quantity + ? END",
			item.Quantity, models.MaxCartItemQuantity, models.MaxCartItemQuantity, item.Quantity),
		"updated_at": time.Now(),
	}
	if len(item.Options) > 0 {
		encoded, err := json.Marshal(item.Options)
		if err != nil {
			return fmt.Errorf("failed to encode cart item options: %w", err)
		}
		assignments["options"] = string(encoded)
	}

	return r.DB.WithContext(ctx).
		Omit("Product").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(item).Error
}

func (r *CartItemRepository) UpdateQuantity(ctx context.Context, itemID string, qty int) error {
	return r.DB.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{"quantity": qty, "updated_at": time.Now()}).Error
}

func (r *CartItemRepository) Delete(ctx context.Context, cartID string, productID string) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

func (r *CartItemRepository) GetByCartID(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartItemRepository) GetCartAndProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem

	err := r.DB.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

func (r *CartItemRepository) ClearCartItems(ctx context.Context, cartID string) error {
	return r.DB.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}
