package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsPost struct {
	ID              string     `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Slug            string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Excerpt         string     `gorm:"size:500" json:"excerpt"`
	Body            string     `gorm:"type:text" json:"body"`
	CoverImageURL   string     `gorm:"size:255" json:"coverImageUrl"`
	CategoryID      *string    `gorm:"size:36;index" json:"categoryId"`
	Category        *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	PublishedAt     *time.Time `gorm:"index" json:"publishedAt"`
	MetaTitle       string     `gorm:"size:255" json:"metaTitle"`
	MetaDescription string     `gorm:"size:500" json:"metaDescription"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (n *NewsPost) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

func (n *NewsPost) IsPublished(now time.Time) bool {
	return n.PublishedAt != nil && !n.PublishedAt.After(now)
}
