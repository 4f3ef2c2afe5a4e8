package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxCartItemQuantity bounds a single cart line.
const MaxCartItemQuantity = 999

// CartItemOptions holds free-form line options such as colour or size.
// Values are limited to JSON primitives.
type CartItemOptions map[string]interface{}

type CartItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID    string          `gorm:"size:36;not null;uniqueIndex:idx_cart_items_cart_product,priority:1" json:"cartId"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductID string          `gorm:"size:36;not null;uniqueIndex:idx_cart_items_cart_product,priority:2;index" json:"productId"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Options   CartItemOptions `gorm:"type:text;serializer:json" json:"options,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
