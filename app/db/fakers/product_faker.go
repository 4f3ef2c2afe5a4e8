package fakers

import (
	"math/rand"

	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var productImagePaths = []string{
	"/images/products/ss.jpg",
	"/images/products/ss1.jpg",
	"/images/products/ss2.jpg",
}

func ProductFaker(category *models.Category) *models.Product {
	name := category.Name + " " + faker.Word()

	numImages := rand.Intn(3) + 1
	productImages := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		productImages[i] = models.ProductImage{
			URL:      productImagePaths[rand.Intn(len(productImagePaths))],
			AltText:  name,
			Position: i,
		}
	}

	price := fakePrice()
	product := &models.Product{
		Name:          name,
		Slug:          slug.Make(name + "-" + uuid.NewString()[:6]),
		Description:   faker.Paragraph(),
		Price:         price,
		InStock:       rand.Intn(5) > 0,
		IsActive:      true,
		CategoryID:    &category.ID,
		ProductImages: productImages,
		MetaTitle:     name,
	}

	// roughly a third of the catalogue is on sale
	if rand.Intn(3) == 0 {
		discount := decimal.NewFromInt(int64(rand.Intn(30) + 5))
		sale := price.Mul(decimal.NewFromInt(100).Sub(discount)).Div(decimal.NewFromInt(100)).Round(-3)
		product.SalePrice = decimal.NewNullDecimal(sale)
	}

	return product
}

// fakePrice returns a VND amount between 50.000 and 5.000.000, rounded to thousands.
func fakePrice() decimal.Decimal {
	return decimal.NewFromInt(int64(rand.Intn(4950)+50) * 1000)
}
