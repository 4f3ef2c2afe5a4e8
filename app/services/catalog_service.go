package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-motoshop/app/helpers"
	"github.com/Rakhulsr/go-motoshop/app/models"
	"github.com/Rakhulsr/go-motoshop/app/repositories"
	"github.com/Rakhulsr/go-motoshop/app/utils/apperror"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ListParams struct {
	CategorySlug string
	Search       string
	Page         int
	PerPage      int
}

type ProductImageInput struct {
	URL     string `json:"url" validate:"required,max=255"`
	AltText string `json:"altText" validate:"max=255"`
}

type ProductInput struct {
	Name            string              `json:"name" validate:"required,max=255"`
	Slug            string              `json:"slug" validate:"max=255"`
	Description     string              `json:"description"`
	Price           decimal.Decimal     `json:"price"`
	SalePrice       decimal.NullDecimal `json:"salePrice"`
	InStock         *bool               `json:"inStock"`
	IsActive        *bool               `json:"isActive"`
	CategoryID      *string             `json:"categoryId"`
	Images          []ProductImageInput `json:"images" validate:"dive"`
	MetaTitle       string              `json:"metaTitle" validate:"max=255"`
	MetaDescription string              `json:"metaDescription" validate:"max=500"`
}

type ServiceInput struct {
	Name            string              `json:"name" validate:"required,max=255"`
	Slug            string              `json:"slug" validate:"max=255"`
	Summary         string              `json:"summary" validate:"max=500"`
	Body            string              `json:"body"`
	ImageURL        string              `json:"imageUrl" validate:"max=255"`
	PriceFrom       decimal.NullDecimal `json:"priceFrom"`
	CategoryID      *string             `json:"categoryId"`
	IsActive        *bool               `json:"isActive"`
	MetaTitle       string              `json:"metaTitle" validate:"max=255"`
	MetaDescription string              `json:"metaDescription" validate:"max=500"`
}

type NewsInput struct {
	Title           string     `json:"title" validate:"required,max=255"`
	Slug            string     `json:"slug" validate:"max=255"`
	Excerpt         string     `json:"excerpt" validate:"max=500"`
	Body            string     `json:"body"`
	CoverImageURL   string     `json:"coverImageUrl" validate:"max=255"`
	CategoryID      *string    `json:"categoryId"`
	PublishedAt     *time.Time `json:"publishedAt"`
	MetaTitle       string     `json:"metaTitle" validate:"max=255"`
	MetaDescription string     `json:"metaDescription" validate:"max=500"`
}

// CatalogService serves products, workshop services and news posts. Every
// item may be filed under a category of the matching type.
type CatalogService struct {
	productRepo  repositories.ProductRepositoryImpl
	serviceRepo  repositories.ServiceRepositoryImpl
	newsRepo     repositories.NewsRepositoryImpl
	categoryRepo repositories.CategoryRepositoryImpl
	categories   *CategoryService
	validator    *validator.Validate
}

func NewCatalogService(
	productRepo repositories.ProductRepositoryImpl,
	serviceRepo repositories.ServiceRepositoryImpl,
	newsRepo repositories.NewsRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	categories *CategoryService,
	validator *validator.Validate,
) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		serviceRepo:  serviceRepo,
		newsRepo:     newsRepo,
		categoryRepo: categoryRepo,
		categories:   categories,
		validator:    validator,
	}
}

func (s *CatalogService) validate(v interface{}, message string) error {
	if err := s.validator.Struct(v); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return apperror.NewInvalidFields(message, helpers.FormatValidationErrors(validationErrors))
		}
		return err
	}
	return nil
}

// categoryScope resolves a public category slug into the ids of the category
// and all its descendants. An empty slug means no filter.
func (s *CatalogService) categoryScope(ctx context.Context, categoryType, slug string) ([]string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	category, err := s.categories.GetBySlug(ctx, categoryType, slug)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, apperror.NewNotFound("Không tìm thấy danh mục.")
	}
	return s.categories.DescendantIDs(ctx, category)
}

func (s *CatalogService) checkCategory(ctx context.Context, categoryID *string, categoryType string) (*string, error) {
	if categoryID == nil || strings.TrimSpace(*categoryID) == "" {
		return nil, nil
	}
	id := strings.TrimSpace(*categoryID)
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, apperror.NewInvalidFields("Danh mục không tồn tại.", map[string]string{"categoryId": "Danh mục không tồn tại."})
	}
	if category.Type != categoryType {
		return nil, apperror.NewInvalidFields("Danh mục không đúng loại.", map[string]string{
			"categoryId": fmt.Sprintf("Danh mục phải thuộc loại %s.", categoryType),
		})
	}
	return &id, nil
}

func resolveSlug(raw, fallback string) (string, error) {
	slug := helpers.GenerateSlug(raw)
	if strings.TrimSpace(raw) == "" {
		slug = helpers.GenerateSlug(fallback)
	}
	if slug == "" {
		return "", apperror.NewInvalidFields("Slug không hợp lệ.", map[string]string{"slug": "Không thể tạo slug từ tên."})
	}
	return slug, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	categoryIDs, err := s.categoryScope(ctx, models.CategoryTypeProduct, params.CategorySlug)
	if err != nil {
		return nil, 0, err
	}
	page, perPage := normalizePage(params.Page, params.PerPage)

	products, total, err := s.productRepo.GetPaginated(ctx, repositories.ProductFilter{
		CategoryIDs: categoryIDs,
		Search:      params.Search,
		ActiveOnly:  true,
		Limit:       perPage,
		Offset:      (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

// ListAllProducts is the admin listing and includes inactive products.
func (s *CatalogService) ListAllProducts(ctx context.Context, params ListParams) ([]models.Product, int64, error) {
	page, perPage := normalizePage(params.Page, params.PerPage)
	products, total, err := s.productRepo.GetPaginated(ctx, repositories.ProductFilter{
		Search: params.Search,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, apperror.NewNotFound("Không tìm thấy sản phẩm.")
	}
	return product, nil
}

func (s *CatalogService) applyProductInput(ctx context.Context, product *models.Product, in ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate(&in, "Dữ liệu sản phẩm không hợp lệ."); err != nil {
		return err
	}
	if !in.Price.IsPositive() {
		return apperror.NewInvalidFields("Dữ liệu sản phẩm không hợp lệ.", map[string]string{"price": "Giá phải lớn hơn 0."})
	}
	if in.SalePrice.Valid && in.SalePrice.Decimal.IsNegative() {
		return apperror.NewInvalidFields("Dữ liệu sản phẩm không hợp lệ.", map[string]string{"salePrice": "Giá khuyến mãi không được âm."})
	}

	slug, err := resolveSlug(in.Slug, in.Name)
	if err != nil {
		return err
	}
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to check product slug: %w", err)
	}
	if existing != nil && existing.ID != product.ID {
		return apperror.NewConflict(fmt.Sprintf("Slug \"%s\" đã được sử dụng.", slug))
	}

	categoryID, err := s.checkCategory(ctx, in.CategoryID, models.CategoryTypeProduct)
	if err != nil {
		return err
	}

	product.Name = in.Name
	product.Slug = slug
	product.Description = in.Description
	product.Price = in.Price
	product.SalePrice = in.SalePrice
	product.CategoryID = categoryID
	product.Category = nil
	product.MetaTitle = in.MetaTitle
	product.MetaDescription = in.MetaDescription
	if in.InStock != nil {
		product.InStock = *in.InStock
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	product.ProductImages = make([]models.ProductImage, 0, len(in.Images))
	for i, img := range in.Images {
		product.ProductImages = append(product.ProductImages, models.ProductImage{
			URL:      strings.TrimSpace(img.URL),
			AltText:  img.AltText,
			Position: i,
		})
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{InStock: true, IsActive: true}
	if err := s.applyProductInput(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, apperror.NewNotFound("Không tìm thấy sản phẩm.")
	}
	if err := s.applyProductInput(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return apperror.NewNotFound("Không tìm thấy sản phẩm.")
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

func (s *CatalogService) ListServices(ctx context.Context, params ListParams, activeOnly bool) ([]models.Service, int64, error) {
	var categoryIDs []string
	if activeOnly {
		ids, err := s.categoryScope(ctx, models.CategoryTypeService, params.CategorySlug)
		if err != nil {
			return nil, 0, err
		}
		categoryIDs = ids
	}
	page, perPage := normalizePage(params.Page, params.PerPage)

	services, total, err := s.serviceRepo.GetPaginated(ctx, repositories.ContentFilter{
		CategoryIDs: categoryIDs,
		ActiveOnly:  activeOnly,
		Limit:       perPage,
		Offset:      (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list services: %w", err)
	}
	return services, total, nil
}

func (s *CatalogService) GetService(ctx context.Context, slug string) (*models.Service, error) {
	service, err := s.serviceRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil || !service.IsActive {
		return nil, apperror.NewNotFound("Không tìm thấy dịch vụ.")
	}
	return service, nil
}

func (s *CatalogService) applyServiceInput(ctx context.Context, service *models.Service, in ServiceInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate(&in, "Dữ liệu dịch vụ không hợp lệ."); err != nil {
		return err
	}
	if in.PriceFrom.Valid && in.PriceFrom.Decimal.IsNegative() {
		return apperror.NewInvalidFields("Dữ liệu dịch vụ không hợp lệ.", map[string]string{"priceFrom": "Giá không được âm."})
	}

	slug, err := resolveSlug(in.Slug, in.Name)
	if err != nil {
		return err
	}
	existing, err := s.serviceRepo.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to check service slug: %w", err)
	}
	if existing != nil && existing.ID != service.ID {
		return apperror.NewConflict(fmt.Sprintf("Slug \"%s\" đã được sử dụng.", slug))
	}

	categoryID, err := s.checkCategory(ctx, in.CategoryID, models.CategoryTypeService)
	if err != nil {
		return err
	}

	service.Name = in.Name
	service.Slug = slug
	service.Summary = in.Summary
	service.Body = in.Body
	service.ImageURL = in.ImageURL
	service.PriceFrom = in.PriceFrom
	service.CategoryID = categoryID
	service.Category = nil
	service.MetaTitle = in.MetaTitle
	service.MetaDescription = in.MetaDescription
	if in.IsActive != nil {
		service.IsActive = *in.IsActive
	}
	return nil
}

func (s *CatalogService) CreateService(ctx context.Context, in ServiceInput) (*models.Service, error) {
	service := &models.Service{IsActive: true}
	if err := s.applyServiceInput(ctx, service, in); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Create(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, id string, in ServiceInput) (*models.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return nil, apperror.NewNotFound("Không tìm thấy dịch vụ.")
	}
	if err := s.applyServiceInput(ctx, service, in); err != nil {
		return nil, err
	}
	if err := s.serviceRepo.Update(ctx, service); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get service: %w", err)
	}
	if service == nil {
		return apperror.NewNotFound("Không tìm thấy dịch vụ.")
	}
	return s.serviceRepo.Delete(ctx, id)
}

func (s *CatalogService) ListNews(ctx context.Context, params ListParams, publishedOnly bool) ([]models.NewsPost, int64, error) {
	var categoryIDs []string
	if publishedOnly {
		ids, err := s.categoryScope(ctx, models.CategoryTypeNews, params.CategorySlug)
		if err != nil {
			return nil, 0, err
		}
		categoryIDs = ids
	}
	page, perPage := normalizePage(params.Page, params.PerPage)

	posts, total, err := s.newsRepo.GetPaginated(ctx, repositories.ContentFilter{
		CategoryIDs: categoryIDs,
		ActiveOnly:  publishedOnly,
		Limit:       perPage,
		Offset:      (page - 1) * perPage,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list news: %w", err)
	}
	return posts, total, nil
}

func (s *CatalogService) GetNews(ctx context.Context, slug string) (*models.NewsPost, error) {
	post, err := s.newsRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get news post: %w", err)
	}
	if post == nil || !post.IsPublished(time.Now()) {
		return nil, apperror.NewNotFound("Không tìm thấy bài viết.")
	}
	return post, nil
}

func (s *CatalogService) applyNewsInput(ctx context.Context, post *models.NewsPost, in NewsInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if err := s.validate(&in, "Dữ liệu bài viết không hợp lệ."); err != nil {
		return err
	}

	slug, err := resolveSlug(in.Slug, in.Title)
	if err != nil {
		return err
	}
	existing, err := s.newsRepo.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to check news slug: %w", err)
	}
	if existing != nil && existing.ID != post.ID {
		return apperror.NewConflict(fmt.Sprintf("Slug \"%s\" đã được sử dụng.", slug))
	}

	categoryID, err := s.checkCategory(ctx, in.CategoryID, models.CategoryTypeNews)
	if err != nil {
		return err
	}

	post.Title = in.Title
	post.Slug = slug
	post.Excerpt = in.Excerpt
	post.Body = in.Body
	post.CoverImageURL = in.CoverImageURL
	post.CategoryID = categoryID
	post.Category = nil
	post.PublishedAt = in.PublishedAt
	post.MetaTitle = in.MetaTitle
	post.MetaDescription = in.MetaDescription
	return nil
}

func (s *CatalogService) CreateNews(ctx context.Context, in NewsInput) (*models.NewsPost, error) {
	post := &models.NewsPost{}
	if err := s.applyNewsInput(ctx, post, in); err != nil {
		return nil, err
	}
	if err := s.newsRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create news post: %w", err)
	}
	return post, nil
}

func (s *CatalogService) UpdateNews(ctx context.Context, id string, in NewsInput) (*models.NewsPost, error) {
	post, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get news post: %w", err)
	}
	if post == nil {
		return nil, apperror.NewNotFound("Không tìm thấy bài viết.")
	}
	if err := s.applyNewsInput(ctx, post, in); err != nil {
		return nil, err
	}
	if err := s.newsRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update news post: %w", err)
	}
	return post, nil
}

func (s *CatalogService) DeleteNews(ctx context.Context, id string) error {
	post, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get news post: %w", err)
	}
	if post == nil {
		return apperror.NewNotFound("Không tìm thấy bài viết.")
	}
	return s.newsRepo.Delete(ctx, id)
}

func (s *CatalogService) CountProducts(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx)
}
