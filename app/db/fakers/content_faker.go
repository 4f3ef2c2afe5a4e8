package fakers

import (
	"math/rand"
	"time"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

func ServiceFaker(category *models.Category) *models.Service {
	name := category.Name + " " + faker.Word()
	return &models.Service{
		Name:       name,
		Slug:       slug.Make(name + "-" + uuid.NewString()[:6]),
		Summary:    faker.Sentence(),
		Body:       faker.Paragraph(),
		ImageURL:   "/images/services/service.jpg",
		PriceFrom:  decimal.NewNullDecimal(decimal.NewFromInt(int64(rand.Intn(50)+1) * 10000)),
		CategoryID: &category.ID,
		IsActive:   true,
		MetaTitle:  name,
	}
}

// NewsFaker leaves about one post in four as an unpublished draft.
func NewsFaker(category *models.Category) *models.NewsPost {
	title := faker.Sentence()
	post := &models.NewsPost{
		Title:         title,
		Slug:          slug.Make(title + "-" + uuid.NewString()[:6]),
		Excerpt:       faker.Sentence(),
		Body:          faker.Paragraph(),
		CoverImageURL: "/images/news/cover.jpg",
		CategoryID:    &category.ID,
		MetaTitle:     title,
	}
	if rand.Intn(4) > 0 {
		published := time.Now().Add(-time.Duration(rand.Intn(30*24)) * time.Hour)
		post.PublishedAt = &published
	}
	return post
}
