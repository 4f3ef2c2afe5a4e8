package seeders

import (
	"fmt"
	"log"

	"github.com/Rakhulsr/go-motoshop/app/db/fakers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"gorm.io/gorm"
)

type Options struct {
	AdminEmail       string
	AdminPassword    string
	ProductsPerLeaf  int
	ServicesPerLeaf  int
	NewsPerLeaf      int
	CustomerAccounts int
}

func DefaultOptions() Options {
	return Options{
		AdminEmail:       "admin@motoshop.local",
		AdminPassword:    "admin12345",
		ProductsPerLeaf:  4,
		ServicesPerLeaf:  2,
		NewsPerLeaf:      3,
		CustomerAccounts: 3,
	}
}

type Seeder struct {
	Name string
	Run  func(tx *gorm.DB) error
}

func SeedersRegister(opts Options) []Seeder {
	return []Seeder{
		{Name: "users", Run: func(tx *gorm.DB) error { return seedUsers(tx, opts) }},
		{Name: "products", Run: func(tx *gorm.DB) error {
			return seedCategorised(tx, models.CategoryTypeProduct, opts.ProductsPerLeaf, func(c *models.Category) interface{} {
				return fakers.ProductFaker(c)
			})
		}},
		{Name: "services", Run: func(tx *gorm.DB) error {
			return seedCategorised(tx, models.CategoryTypeService, opts.ServicesPerLeaf, func(c *models.Category) interface{} {
				return fakers.ServiceFaker(c)
			})
		}},
		{Name: "news", Run: func(tx *gorm.DB) error {
			return seedCategorised(tx, models.CategoryTypeNews, opts.NewsPerLeaf, func(c *models.Category) interface{} {
				return fakers.NewsFaker(c)
			})
		}},
	}
}

// DBSeed fills an empty database with demo data. A database that already has
// categories is left untouched.
func DBSeed(db *gorm.DB, opts Options) error {
	var existing int64
	if err := db.Model(&models.Category{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if existing > 0 {
		log.Println("Seeder: database already seeded, skipping")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, seeder := range SeedersRegister(opts) {
			if err := seeder.Run(tx); err != nil {
				return fmt.Errorf("seeder %s: %w", seeder.Name, err)
			}
			log.Printf("Seeder: %s done", seeder.Name)
		}
		return nil
	})
}

func seedUsers(tx *gorm.DB, opts Options) error {
	admin, err := fakers.AdminFaker(opts.AdminEmail, opts.AdminPassword)
	if err != nil {
		return err
	}
	if err := tx.Where("email = ?", admin.Email).FirstOrCreate(admin).Error; err != nil {
		return err
	}

	for i := 0; i < opts.CustomerAccounts; i++ {
		user, err := fakers.UserFaker("password123")
		if err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedCategorised creates the category tree of one type, then perLeaf items
// under every category without children.
func seedCategorised(tx *gorm.DB, categoryType string, perLeaf int, build func(*models.Category) interface{}) error {
	categories := fakers.CategoryFaker(categoryType)
	hasChildren := make(map[string]bool)
	for _, category := range categories {
		if err := tx.Omit("Subcategories").Create(category).Error; err != nil {
			return err
		}
		if category.ParentID != nil {
			hasChildren[*category.ParentID] = true
		}
	}

	for _, category := range categories {
		if hasChildren[category.ID] {
			continue
		}
		for i := 0; i < perLeaf; i++ {
			if err := tx.Omit("Category").Create(build(category)).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
