package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	CategoryDeleteBlock  = "block"
	CategoryDeleteDetach = "detach"
)

type CategoryInput struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Slug        string  `json:"slug" validate:"max=150"`
	Description string  `json:"description"`
	Type        string  `json:"type" validate:"required,oneof=PRODUCT SERVICE NEWS"`
	ParentID    *string `json:"parentId"`
	ImageURL    string  `json:"imageUrl" validate:"max=255"`
	Icon        string  `json:"icon" validate:"max=100"`
	IsActive    *bool   `json:"isActive"`
	SortOrder   int     `json:"sortOrder"`
}

type CategoryService struct {
	db           *gorm.DB
	categoryRepo repositories.CategoryRepositoryImpl
	validator    *validator.Validate
	deletePolicy string
}

func NewCategoryService(db *gorm.DB, categoryRepo repositories.CategoryRepositoryImpl, validator *validator.Validate, deletePolicy string) *CategoryService {
	if deletePolicy != CategoryDeleteDetach {
		deletePolicy = CategoryDeleteBlock
	}
	return &CategoryService{
		db:           db,
		categoryRepo: categoryRepo,
		validator:    validator,
		deletePolicy: deletePolicy,
	}
}

// ListByType returns the categories of one type, flat or nested under their
// parents. In the nested shape, children of a filtered-out parent are dropped.
func (s *CategoryService) ListByType(ctx context.Context, categoryType string, activeOnly, nested bool) ([]models.Category, error) {
	if !models.IsValidCategoryType(categoryType) {
		return nil, apperror.NewInvalid("Loại danh mục không hợp lệ.")
	}

	categories, err := s.categoryRepo.ListByType(ctx, categoryType, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if !nested {
		return categories, nil
	}
	return BuildCategoryTree(categories), nil
}

// BuildCategoryTree nests a flat, already ordered list. Sibling order is kept.
func BuildCategoryTree(categories []models.Category) []models.Category {
	children := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		children[*c.ParentID] = append(children[*c.ParentID], c)
	}

	visited := make(map[string]bool)
	var attach func(nodes []models.Category) []models.Category
	attach = func(nodes []models.Category) []models.Category {
		out := make([]models.Category, 0, len(nodes))
		for _, n := range nodes {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			n.Subcategories = attach(children[n.ID])
			out = append(out, n)
		}
		return out
	}

	return attach(roots)
}

func (s *CategoryService) GetBySlug(ctx context.Context, categoryType, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categoryType, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}
	if category == nil {
		return nil, apperror.NewNotFound("Không tìm thấy danh mục.")
	}
	return category, nil
}

// DescendantIDs returns id followed by the ids of every category below it.
func (s *CategoryService) DescendantIDs(ctx context.Context, category *models.Category) ([]string, error) {
	all, err := s.categoryRepo.ListByType(ctx, category.Type, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	children := make(map[string][]string)
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	ids := []string{category.ID}
	seen := map[string]bool{category.ID: true}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids, nil
}

func (s *CategoryService) normalize(in *CategoryInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Type = strings.ToUpper(strings.TrimSpace(in.Type))
	if in.ParentID != nil && strings.TrimSpace(*in.ParentID) == "" {
		in.ParentID = nil
	}

	if err := s.validator.Struct(in); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return apperror.NewInvalidFields("Dữ liệu danh mục không hợp lệ.", helpers.FormatValidationErrors(validationErrors))
		}
		return err
	}

	if strings.TrimSpace(in.Slug) == "" {
		in.Slug = helpers.GenerateSlug(in.Name)
	} else {
		in.Slug = helpers.GenerateSlug(in.Slug)
	}
	if in.Slug == "" {
		return apperror.NewInvalidFields("Dữ liệu danh mục không hợp lệ.", map[string]string{"slug": "Không thể tạo slug từ tên danh mục."})
	}
	return nil
}

func (s *CategoryService) ensureSlugAvailable(ctx context.Context, repo repositories.CategoryRepositoryImpl, categoryType, slug, selfID string) error {
	existing, err := repo.GetBySlug(ctx, categoryType, slug)
	if err != nil {
		return fmt.Errorf("failed to check category slug: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewConflict(fmt.Sprintf("Slug \"%s\" đã được sử dụng cho danh mục khác cùng loại.", slug))
	}
	return nil
}

// validateParent checks the parent exists, has the same type and is neither
// selfID nor one of its descendants. The ancestor walk stops on a loop
// already present in stored data.
func (s *CategoryService) validateParent(ctx context.Context, repo repositories.CategoryRepositoryImpl, parentID *string, categoryType, selfID string) error {
	if parentID == nil {
		return nil
	}
	if selfID != "" && *parentID == selfID {
		return apperror.NewInvalid("Danh mục không thể là danh mục cha của chính nó.")
	}

	parent, err := repo.GetByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("failed to get parent category: %w", err)
	}
	if parent == nil {
		return apperror.NewInvalid("Danh mục cha không tồn tại.")
	}
	if parent.Type != categoryType {
		return apperror.NewInvalid("Danh mục cha phải cùng loại với danh mục con.")
	}

	visited := map[string]bool{}
	current := parent
	for current != nil {
		if selfID != "" && current.ID == selfID {
			return apperror.NewInvalid("Không thể chọn danh mục con làm danh mục cha (tạo vòng lặp).")
		}
		if visited[current.ID] {
			log.Printf("CategoryService.validateParent: existing cycle detected at category %s", current.ID)
			return apperror.NewInvalid("Cây danh mục hiện tại đang có vòng lặp, vui lòng kiểm tra lại.")
		}
		visited[current.ID] = true
		if current.ParentID == nil {
			break
		}
		current, err = repo.GetByID(ctx, *current.ParentID)
		if err != nil {
			return fmt.Errorf("failed to walk category ancestors: %w", err)
		}
	}
	return nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := s.normalize(&in); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Type:        in.Type,
		ParentID:    in.ParentID,
		ImageURL:    in.ImageURL,
		Icon:        in.Icon,
		IsActive:    in.IsActive == nil || *in.IsActive,
		SortOrder:   in.SortOrder,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)
		if err := s.ensureSlugAvailable(ctx, repo, in.Type, in.Slug, ""); err != nil {
			return err
		}
		if err := s.validateParent(ctx, repo, in.ParentID, in.Type, ""); err != nil {
			return err
		}
		if err := repo.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	if err := s.normalize(&in); err != nil {
		return nil, err
	}

	var category *models.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)

		existing, err := repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}
		if existing == nil {
			return apperror.NewNotFound("Không tìm thấy danh mục.")
		}

		if existing.Type != in.Type {
			children, err := repo.CountChildren(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to count child categories: %w", err)
			}
			if children > 0 {
				return apperror.NewInvalid("Không thể đổi loại danh mục khi còn danh mục con.")
			}
			attached, err := repo.CountAttachedItems(ctx, id, existing.Type)
			if err != nil {
				return fmt.Errorf("failed to count attached items: %w", err)
			}
			if attached > 0 {
				return apperror.NewInvalid("Không thể đổi loại danh mục khi vẫn còn nội dung thuộc danh mục.")
			}
		}

		if err := s.ensureSlugAvailable(ctx, repo, in.Type, in.Slug, id); err != nil {
			return err
		}
		if err := s.validateParent(ctx, repo, in.ParentID, in.Type, id); err != nil {
			return err
		}

		existing.Name = in.Name
		existing.Slug = in.Slug
		existing.Description = in.Description
		existing.Type = in.Type
		existing.ParentID = in.ParentID
		existing.ImageURL = in.ImageURL
		existing.Icon = in.Icon
		if in.IsActive != nil {
			existing.IsActive = *in.IsActive
		}
		existing.SortOrder = in.SortOrder

		if err := repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		category = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Delete detaches child categories, then removes the row. Content still
// filed under the category blocks the delete unless the detach policy is set.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)

		category, err := repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get category: %w", err)
		}
		if category == nil {
			return apperror.NewNotFound("Không tìm thấy danh mục.")
		}

		attached, err := repo.CountAttachedItems(ctx, id, category.Type)
		if err != nil {
			return fmt.Errorf("failed to count attached items: %w", err)
		}
		if attached > 0 && s.deletePolicy == CategoryDeleteBlock {
			return apperror.NewConflict(fmt.Sprintf("Danh mục vẫn còn %d nội dung đang sử dụng, không thể xóa.", attached))
		}

		if err := repo.DetachChildren(ctx, id); err != nil {
			return fmt.Errorf("failed to detach child categories: %w", err)
		}
		if err := repo.DetachItems(ctx, id, category.Type); err != nil {
			return fmt.Errorf("failed to detach category items: %w", err)
		}
		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}

		log.Printf("CategoryService.Delete: category %s (%s) deleted, %d items detached", category.ID, category.Type, attached)
		return nil
	})
}
