package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a workshop offering (maintenance, repair, detailing...).
type Service struct {
	ID              string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name            string              `gorm:"size:255;not null" json:"name"`
	Slug            string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Summary         string              `gorm:"size:500" json:"summary"`
	Body            string              `gorm:"type:text" json:"body"`
	ImageURL        string              `gorm:"size:255" json:"imageUrl"`
	PriceFrom       decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"priceFrom"`
	CategoryID      *string             `gorm:"size:36;index" json:"categoryId"`
	Category        *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	IsActive        bool                `gorm:"not null" json:"isActive"`
	MetaTitle       string              `gorm:"size:255" json:"metaTitle"`
	MetaDescription string              `gorm:"size:500" json:"metaDescription"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}
