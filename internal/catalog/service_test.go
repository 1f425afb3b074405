package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	createErr  error
	deleted    []uuid.UUID
}

func newStubCategoryRepo(categories ...*models.Category) *stubCategoryRepo {
	repo := &stubCategoryRepo{categories: map[uuid.UUID]*models.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (s *stubCategoryRepo) ListActive(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range s.categories {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if s.createErr != nil {
		return s.createErr
	}
	category.ID = uuid.New()
	s.categories[category.ID] = category
	return nil
}

func (s *stubCategoryRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	c, ok := s.categories[id]
	if !ok {
		return nil
	}
	if name, ok := updates["name"].(string); ok {
		c.Name = name
	}
	if active, ok := updates["is_active"].(bool); ok {
		c.IsActive = active
	}
	return nil
}

func (s *stubCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) (int64, error) {
	c, ok := s.categories[id]
	if !ok || !c.IsActive {
		return 0, nil
	}
	c.IsActive = false
	s.deleted = append(s.deleted, id)
	return 1, nil
}

type stubCatalogProductRepo struct {
	products     map[uuid.UUID]*models.Product
	createErr    error
	lastFilter   *ProductFilter
	relatedLimit int
}

func newStubCatalogProductRepo(products ...*models.Product) *stubCatalogProductRepo {
	repo := &stubCatalogProductRepo{products: map[uuid.UUID]*models.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (s *stubCatalogProductRepo) List(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	s.lastFilter = &filter
	var out []models.Product
	for _, p := range s.products {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubCatalogProductRepo) FindBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range s.products {
		if p.Slug == slug && p.IsActive {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogProductRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCatalogProductRepo) ListRelated(_ context.Context, categoryID, excludeID uuid.UUID, limit int) ([]models.Product, error) {
	s.relatedLimit = limit
	var out []models.Product
	for _, p := range s.products {
		if len(out) == limit {
			break
		}
		if p.CategoryID == categoryID && p.ID != excludeID && p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubCatalogProductRepo) Create(_ context.Context, product *models.Product) error {
	if s.createErr != nil {
		return s.createErr
	}
	product.ID = uuid.New()
	s.products[product.ID] = product
	return nil
}

func (s *stubCatalogProductRepo) Update(_ context.Context, id uuid.UUID, updates map[string]any) error {
	p, ok := s.products[id]
	if !ok {
		return nil
	}
	if price, ok := updates["price"].(decimal.Decimal); ok {
		p.Price = price
	}
	if _, ok := updates["sale_price"]; ok {
		if sale, ok := updates["sale_price"].(decimal.Decimal); ok {
			p.SalePrice = &sale
		} else {
			p.SalePrice = nil
		}
	}
	return nil
}

func (s *stubCatalogProductRepo) SoftDelete(_ context.Context, id uuid.UUID) (int64, error) {
	p, ok := s.products[id]
	if !ok || !p.IsActive {
		return 0, nil
	}
	p.IsActive = false
	return 1, nil
}

func buildCatalogService(t *testing.T, categories *stubCategoryRepo, products *stubCatalogProductRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{CategoryRepo: categories, ProductRepo: products})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func activeCategory(name string) *models.Category {
	return &models.Category{ID: uuid.New(), Name: name, Slug: name, IsActive: true}
}

func catalogProduct(category *models.Category, slug string) *models.Product {
	return &models.Product{
		ID:         uuid.New(),
		Name:       slug,
		Slug:       slug,
		Price:      decimal.NewFromInt(110),
		CategoryID: category.ID,
		IsActive:   true,
	}
}

func TestListProductsTrimsSearchTerm(t *testing.T) {
	products := newStubCatalogProductRepo()
	svc := buildCatalogService(t, newStubCategoryRepo(), products)

	if _, err := svc.ListProducts(context.Background(), ProductFilter{Search: "  retro kit  "}); err != nil {
		t.Fatalf("list products: %v", err)
	}
	if products.lastFilter == nil || products.lastFilter.Search != "retro kit" {
		t.Fatalf("expected trimmed search term, got %+v", products.lastFilter)
	}
}

func TestGetProductBySlugNotFound(t *testing.T) {
	svc := buildCatalogService(t, newStubCategoryRepo(), newStubCatalogProductRepo())

	_, err := svc.GetProductBySlug(context.Background(), "missing-slug")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRelatedProductsCapsAtThree(t *testing.T) {
	category := activeCategory("retro")
	target := catalogProduct(category, "home-1994")
	products := newStubCatalogProductRepo(
		target,
		catalogProduct(category, "away-1994"),
		catalogProduct(category, "third-1994"),
		catalogProduct(category, "home-1998"),
		catalogProduct(category, "away-1998"),
	)
	svc := buildCatalogService(t, newStubCategoryRepo(category), products)

	related, err := svc.ListRelatedProducts(context.Background(), target.Slug)
	if err != nil {
		t.Fatalf("related: %v", err)
	}
	if products.relatedLimit != 3 {
		t.Fatalf("expected limit 3, got %d", products.relatedLimit)
	}
	if len(related) > 3 {
		t.Fatalf("expected at most three products, got %d", len(related))
	}
	for _, p := range related {
		if p.ID == target.ID {
			t.Fatalf("related list must exclude the product itself")
		}
	}
}

func TestCreateProductRejectsSaleAtOrAbovePrice(t *testing.T) {
	category := activeCategory("retro")
	svc := buildCatalogService(t, newStubCategoryRepo(category), newStubCatalogProductRepo())

	sale := decimal.NewFromInt(110)
	_, err := svc.CreateProduct(context.Background(), CreateProductDTO{
		Name:       "Home Jersey",
		Slug:       "home-jersey",
		Price:      decimal.NewFromInt(110),
		SalePrice:  &sale,
		CategoryID: category.ID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for sale price >= price, got %v", err)
	}

	sale = decimal.NewFromInt(90)
	created, err := svc.CreateProduct(context.Background(), CreateProductDTO{
		Name:       "Home Jersey",
		Slug:       "home-jersey",
		Price:      decimal.NewFromInt(110),
		SalePrice:  &sale,
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("create with valid sale price: %v", err)
	}
	if created.SalePrice == nil || !created.SalePrice.Equal(sale) {
		t.Fatalf("expected sale price on created product")
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	category := activeCategory("retro")
	svc := buildCatalogService(t, newStubCategoryRepo(category), newStubCatalogProductRepo())

	_, err := svc.CreateProduct(context.Background(), CreateProductDTO{
		Name:       "Home Jersey",
		Slug:       "home-jersey",
		Price:      decimal.NewFromInt(-5),
		CategoryID: category.ID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateProductUnknownCategoryNotFound(t *testing.T) {
	svc := buildCatalogService(t, newStubCategoryRepo(), newStubCatalogProductRepo())

	_, err := svc.CreateProduct(context.Background(), CreateProductDTO{
		Name:       "Home Jersey",
		Slug:       "home-jersey",
		Price:      decimal.NewFromInt(110),
		CategoryID: uuid.New(),
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProductDuplicateSlugConflict(t *testing.T) {
	category := activeCategory("retro")
	products := newStubCatalogProductRepo()
	products.createErr = errors.New(`duplicate key value violates unique constraint "products_slug_key"`)
	svc := buildCatalogService(t, newStubCategoryRepo(category), products)

	_, err := svc.CreateProduct(context.Background(), CreateProductDTO{
		Name:       "Home Jersey",
		Slug:       "home-jersey",
		Price:      decimal.NewFromInt(110),
		CategoryID: category.ID,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateProductValidatesMergedPricing(t *testing.T) {
	category := activeCategory("retro")
	product := catalogProduct(category, "home-jersey")
	svc := buildCatalogService(t, newStubCategoryRepo(category), newStubCatalogProductRepo(product))

	// sale price alone must be checked against the stored price
	sale := decimal.NewFromInt(200)
	_, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductDTO{SalePrice: &sale})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error against stored price, got %v", err)
	}

	sale = decimal.NewFromInt(80)
	updated, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductDTO{SalePrice: &sale})
	if err != nil {
		t.Fatalf("update sale price: %v", err)
	}
	if updated.SalePrice == nil || !updated.SalePrice.Equal(sale) {
		t.Fatalf("expected sale price applied")
	}

	cleared, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductDTO{ClearSalePrice: true})
	if err != nil {
		t.Fatalf("clear sale price: %v", err)
	}
	if cleared.SalePrice != nil {
		t.Fatalf("expected sale price cleared")
	}
}

func TestDeleteProductIsSoftAndNotFoundWhenGone(t *testing.T) {
	category := activeCategory("retro")
	product := catalogProduct(category, "home-jersey")
	products := newStubCatalogProductRepo(product)
	svc := buildCatalogService(t, newStubCategoryRepo(category), products)

	if err := svc.DeleteProduct(context.Background(), product.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if product.IsActive {
		t.Fatalf("expected product deactivated, not removed")
	}
	if _, ok := products.products[product.ID]; !ok {
		t.Fatalf("soft delete must keep the row")
	}

	err := svc.DeleteProduct(context.Background(), product.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	svc := buildCatalogService(t, newStubCategoryRepo(), newStubCatalogProductRepo())

	err := svc.DeleteCategory(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateCategoryDuplicateSlugConflict(t *testing.T) {
	categories := newStubCategoryRepo()
	categories.createErr = errors.New(`duplicate key value violates unique constraint "categories_slug_key"`)
	svc := buildCatalogService(t, categories, newStubCatalogProductRepo())

	_, err := svc.CreateCategory(context.Background(), CreateCategoryDTO{Name: "Retro", Slug: "retro"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}
