package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart is owned by exactly one of UserID or SessionID.
type Cart struct {
	ID        string     `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    *string    `gorm:"size:36;uniqueIndex"`
	SessionID *string    `gorm:"size:64;uniqueIndex"`
	CartItems []CartItem `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// CartOwner is the identity a request acts as. UserID takes precedence.
type CartOwner struct {
	UserID    string
	SessionID string
}

func (o CartOwner) IsZero() bool {
	return o.UserID == "" && o.SessionID == ""
}

func (o CartOwner) IsUser() bool {
	return o.UserID != ""
}

// HasGuestSession reports a logged-in owner still carrying a guest cookie.
func (o CartOwner) HasGuestSession() bool {
	return o.UserID != "" && o.SessionID != ""
}

func (o CartOwner) NewCart() *Cart {
	if o.UserID != "" {
		userID := o.UserID
		return &Cart{UserID: &userID}
	}
	sessionID := o.SessionID
	return &Cart{SessionID: &sessionID}
}
