package models

import (
	"time"

	"github.com/Rakhulsr/go-motoshop/app/utils/calc"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID              string              `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name            string              `gorm:"size:255;not null" json:"name"`
	Slug            string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description     string              `gorm:"type:text" json:"description"`
	Price           decimal.Decimal     `gorm:"type:decimal(16,2);not null" json:"price"`
	SalePrice       decimal.NullDecimal `gorm:"type:decimal(16,2)" json:"salePrice"`
	InStock         bool                `gorm:"not null" json:"inStock"`
	IsActive        bool                `gorm:"not null" json:"isActive"`
	CategoryID      *string             `gorm:"size:36;index" json:"categoryId"`
	Category        *Category           `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ProductImages   []ProductImage      `gorm:"foreignKey:ProductID" json:"images"`
	MetaTitle       string              `gorm:"size:255" json:"metaTitle"`
	MetaDescription string              `gorm:"size:500" json:"metaDescription"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt      `gorm:"index" json:"-"`
}

type ProductImage struct {
	ID        string    `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	ProductID string    `gorm:"size:36;not null;index" json:"productId"`
	URL       string    `gorm:"size:255;not null" json:"url"`
	AltText   string    `gorm:"size:255" json:"altText"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}

// EffectivePrice is the unit price actually charged right now.
func (p *Product) EffectivePrice() decimal.Decimal {
	return calc.EffectiveUnitPrice(p.Price, p.SalePrice)
}

// PrimaryImage returns the URL of the lowest-positioned image, or "".
func (p *Product) PrimaryImage() string {
	if len(p.ProductImages) == 0 {
		return ""
	}
	primary := p.ProductImages[0]
	for _, img := range p.ProductImages[1:] {
		if img.Position < primary.Position {
			primary = img
		}
	}
	return primary.URL
}
