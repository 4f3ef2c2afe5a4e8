package fakers

import (
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
)

var categoryNames = map[string][]string{
	models.CategoryTypeProduct: {"Phụ tùng", "Dầu nhớt", "Lốp xe", "Phụ kiện", "Đồ bảo hộ"},
	models.CategoryTypeService: {"Bảo dưỡng", "Sửa chữa", "Làm đẹp xe"},
	models.CategoryTypeNews:    {"Tin tức", "Kinh nghiệm", "Khuyến mãi"},
}

// CategoryFaker builds the root categories of one type plus one child under
// each root. Children come after their parent so they can be inserted in order.
func CategoryFaker(categoryType string) []*models.Category {
	var categories []*models.Category
	for i, name := range categoryNames[categoryType] {
		root := &models.Category{
			Name:        name,
			Slug:        slug.Make(name),
			Description: faker.Sentence(),
			Type:        categoryType,
			IsActive:    true,
			SortOrder:   i,
		}
		categories = append(categories, root)

		childName := name + " " + faker.Word()
		categories = append(categories, &models.Category{
			Name:        childName,
			Slug:        slug.Make(childName),
			Description: faker.Sentence(),
			Type:        categoryType,
			ParentID:    &root.ID,
			IsActive:    true,
		})
	}
	return categories
}
