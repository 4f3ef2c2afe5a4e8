package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	OrderCode    string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"orderCode"`
	UserID       *string         `gorm:"size:36;index" json:"userId,omitempty"`
	SessionID    *string         `gorm:"size:64;index" json:"-"`
	CustomerName string          `gorm:"size:150;not null" json:"customerName"`
	Phone        string          `gorm:"size:20;not null" json:"phone"`
	Email        string          `gorm:"size:100" json:"email,omitempty"`
	Address      string          `gorm:"type:text;not null" json:"address"`
	Note         string          `gorm:"type:text" json:"note,omitempty"`
	Status       string          `gorm:"size:20;not null;index" json:"status"`
	Total        decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total"`
	OrderItems   []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
