package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/pkg/db"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
)

const relatedProductsLimit = 3

// Service exposes catalog reads plus the admin-only mutations. Admin
// enforcement happens at the HTTP boundary; the service never exposes hard
// deletion.
type Service interface {
	ListCategories(ctx context.Context) ([]CategoryDTO, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error)
	GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error)
	ListRelatedProducts(ctx context.Context, slug string) ([]ProductDTO, error)

	CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*CategoryDTO, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*CategoryDTO, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, dto CreateProductDTO) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, dto UpdateProductDTO) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type categoryRepository interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
}

type productRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListRelated(ctx context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SoftDelete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ServiceParams bundles the dependencies for the catalog service.
type ServiceParams struct {
	CategoryRepo categoryRepository
	ProductRepo  productRepository
}

type service struct {
	categories categoryRepository
	products   productRepository
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CategoryRepo == nil {
		return nil, fmt.Errorf("category repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		categories: params.CategoryRepo,
		products:   params.ProductRepo,
	}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryDTO, error) {
	list, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list categories")
	}
	out := make([]CategoryDTO, 0, len(list))
	for i := range list {
		out = append(out, *CategoryFromModel(&list[i]))
	}
	return out, nil
}

func (s *service) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	list, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	out := make([]ProductDTO, 0, len(list))
	for i := range list {
		out = append(out, *ProductFromModel(&list[i]))
	}
	return out, nil
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*ProductDTO, error) {
	product, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return ProductFromModel(product), nil
}

func (s *service) ListRelatedProducts(ctx context.Context, slug string) ([]ProductDTO, error) {
	product, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	related, err := s.products.ListRelated(ctx, product.CategoryID, product.ID, relatedProductsLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list related products")
	}
	out := make([]ProductDTO, 0, len(related))
	for i := range related {
		out = append(out, *ProductFromModel(&related[i]))
	}
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, dto CreateCategoryDTO) (*CategoryDTO, error) {
	name := strings.TrimSpace(dto.Name)
	slug := strings.TrimSpace(dto.Slug)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}

	category := &models.Category{
		Name:        name,
		Slug:        slug,
		Description: dto.Description,
		ImageURL:    dto.ImageURL,
		IsActive:    true,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		if db.IsUniqueViolation(err, "categories_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "category slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create category")
	}
	return CategoryFromModel(category), nil
}

func (s *service) UpdateCategory(ctx context.Context, id uuid.UUID, dto UpdateCategoryDTO) (*CategoryDTO, error) {
	if _, err := s.loadCategory(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if err := s.categories.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update category")
	}

	category, err := s.loadCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	return CategoryFromModel(category), nil
}

func (s *service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	rows, err := s.categories.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete category")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, dto CreateProductDTO) (*ProductDTO, error) {
	name := strings.TrimSpace(dto.Name)
	slug := strings.TrimSpace(dto.Slug)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if err := validatePricing(dto.Price, dto.SalePrice); err != nil {
		return nil, err
	}
	if dto.Stock < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be zero or greater")
	}
	for _, size := range dto.AvailableSizes {
		if !size.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid size %q", size))
		}
	}
	if _, err := s.loadCategory(ctx, dto.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:                 name,
		Slug:                 slug,
		ShortDescription:     dto.ShortDescription,
		Description:          dto.Description,
		Price:                dto.Price,
		SalePrice:            dto.SalePrice,
		CategoryID:           dto.CategoryID,
		ImageURL:             dto.ImageURL,
		Images:               dto.Images,
		IsActive:             true,
		IsFeatured:           dto.IsFeatured,
		Stock:                dto.Stock,
		Tags:                 dto.Tags,
		AvailableSizes:       dto.AvailableSizes,
		AvailableColors:      dto.AvailableColors,
		CustomizationOptions: dto.CustomizationOptions,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "products_slug_key") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product slug already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return ProductFromModel(product), nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, dto UpdateProductDTO) (*ProductDTO, error) {
	current, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	price := current.Price
	if dto.Price != nil {
		price = *dto.Price
	}
	salePrice := current.SalePrice
	if dto.ClearSalePrice {
		salePrice = nil
	} else if dto.SalePrice != nil {
		salePrice = dto.SalePrice
	}
	if err := validatePricing(price, salePrice); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if dto.Name != nil {
		updates["name"] = strings.TrimSpace(*dto.Name)
	}
	if dto.ShortDescription != nil {
		updates["short_description"] = *dto.ShortDescription
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Price != nil {
		updates["price"] = *dto.Price
	}
	if dto.ClearSalePrice {
		updates["sale_price"] = nil
	} else if dto.SalePrice != nil {
		updates["sale_price"] = *dto.SalePrice
	}
	if dto.CategoryID != nil {
		if _, err := s.loadCategory(ctx, *dto.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *dto.CategoryID
	}
	if dto.ImageURL != nil {
		updates["image_url"] = *dto.ImageURL
	}
	if dto.Images != nil {
		updates["images"] = dto.Images
	}
	if dto.IsActive != nil {
		updates["is_active"] = *dto.IsActive
	}
	if dto.IsFeatured != nil {
		updates["is_featured"] = *dto.IsFeatured
	}
	if dto.Stock != nil {
		if *dto.Stock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock must be zero or greater")
		}
		updates["stock"] = *dto.Stock
	}
	if dto.Tags != nil {
		updates["tags"] = dto.Tags
	}
	if dto.AvailableSizes != nil {
		for _, size := range dto.AvailableSizes {
			if !size.IsValid() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid size %q", size))
			}
		}
		updates["available_sizes"] = dto.AvailableSizes
	}
	if dto.AvailableColors != nil {
		updates["available_colors"] = dto.AvailableColors
	}
	if dto.CustomizationOptions != nil {
		updates["customization_options"] = dto.CustomizationOptions
	}

	if err := s.products.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}

	updated, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return ProductFromModel(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	rows, err := s.products.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) findBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.products.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return product, nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup product")
	}
	return product, nil
}

func (s *service) loadCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id is required")
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup category")
	}
	return category, nil
}

func validatePricing(price decimal.Decimal, salePrice *decimal.Decimal) error {
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be zero or greater")
	}
	if salePrice != nil {
		if salePrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "sale price must be zero or greater")
		}
		if salePrice.GreaterThanOrEqual(price) {
			return pkgerrors.New(pkgerrors.CodeValidation, "sale price must be less than price")
		}
	}
	return nil
}
