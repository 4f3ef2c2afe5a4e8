package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryTypeProduct = "PRODUCT"
	CategoryTypeService = "SERVICE"
	CategoryTypeNews    = "NEWS"
)

func IsValidCategoryType(t string) bool {
	switch t {
	case CategoryTypeProduct, CategoryTypeService, CategoryTypeNews:
		return true
	}
	return false
}

type Category struct {
	ID            string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Name          string     `gorm:"size:150;not null" json:"name"`
	Slug          string     `gorm:"size:150;not null;uniqueIndex:idx_categories_type_slug,priority:2" json:"slug"`
	Description   string     `gorm:"type:text" json:"description"`
	Type          string     `gorm:"size:20;not null;uniqueIndex:idx_categories_type_slug,priority:1" json:"type"`
	ParentID      *string    `gorm:"size:36;index" json:"parentId"`
	Subcategories []Category `gorm:"foreignKey:ParentID" json:"subcategories,omitempty"`
	ImageURL      string     `gorm:"size:255" json:"imageUrl"`
	Icon          string     `gorm:"size:100" json:"icon"`
	IsActive      bool       `gorm:"not null" json:"isActive"`
	SortOrder     int        `gorm:"not null" json:"sortOrder"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
