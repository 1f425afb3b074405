package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/internal/catalog"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
)

// Service exposes business rules for cart management.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]CartLineDTO, error)
	Add(ctx context.Context, userID uuid.UUID, dto AddLineDTO) (*CartLineDTO, error)
	UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*CartLineDTO, error)
	Remove(ctx context.Context, userID, lineID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type cartRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) error
	IncrementQuantity(ctx context.Context, userID, productID uuid.UUID, delta int) (int64, error)
	ReplaceQuantity(ctx context.Context, id uuid.UUID, quantity int) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

type productRepository interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	CartRepo    cartRepository
	ProductRepo productRepository
}

type service struct {
	cart     cartRepository
	products productRepository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		cart:     params.CartRepo,
		products: params.ProductRepo,
	}, nil
}

// List returns the user's cart with a live product snapshot on every line.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]CartLineDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var items []models.CartItem
	err := db.WithRetry(ctx, func(ctx context.Context) error {
		var listErr error
		items, listErr = s.cart.ListByUser(ctx, userID)
		return listErr
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}

	productsByID, err := s.loadProducts(ctx, items)
	if err != nil {
		return nil, err
	}

	lines := make([]CartLineDTO, 0, len(items))
	for i := range items {
		lines = append(lines, lineFromModel(&items[i], productsByID[items[i].ProductID]))
	}
	return lines, nil
}

// Add merges quantity into an existing line or inserts a new one. Two
// concurrent adds for the same product race on the unique index; the loser
// retries as a merge instead of producing a second row.
func (s *service) Add(ctx context.Context, userID uuid.UUID, dto AddLineDTO) (*CartLineDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if dto.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if dto.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	if _, err := s.products.FindActiveByID(ctx, dto.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	err := db.WithRetry(ctx, func(ctx context.Context) error {
		return s.upsertLine(ctx, userID, dto)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add to cart")
	}

	line, err := s.cart.FindLine(ctx, userID, dto.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart line")
	}
	return s.enrichLine(ctx, line)
}

// upsertLine merges first; when no line exists it inserts, and when the insert
// loses the race on the unique index it merges once more.
func (s *service) upsertLine(ctx context.Context, userID uuid.UUID, dto AddLineDTO) error {
	rows, err := s.cart.IncrementQuantity(ctx, userID, dto.ProductID, dto.Quantity)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	item := &models.CartItem{
		UserID:        userID,
		ProductID:     dto.ProductID,
		Quantity:      dto.Quantity,
		SelectedSize:  dto.SelectedSize,
		SelectedColor: dto.SelectedColor,
		Customization: dto.Customization,
	}
	err = s.cart.Insert(ctx, item)
	if err == nil {
		return nil
	}
	if !db.IsUniqueViolation(err, "cart_items_user_product_key") {
		return err
	}

	// lost the insert race, the other request's row takes the merge
	rows, err = s.cart.IncrementQuantity(ctx, userID, dto.ProductID, dto.Quantity)
	if err != nil {
		return err
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "cart line changed concurrently")
	}
	return nil
}

// UpdateQuantity replaces the quantity on a line the caller owns.
func (s *service) UpdateQuantity(ctx context.Context, userID, lineID uuid.UUID, quantity int) (*CartLineDTO, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		return nil, err
	}

	rows, err := s.cart.ReplaceQuantity(ctx, line.ID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	line.Quantity = quantity
	return s.enrichLine(ctx, line)
}

// Remove deletes a line; removing an absent line succeeds.
func (s *service) Remove(ctx context.Context, userID, lineID uuid.UUID) error {
	line, err := s.ownedLine(ctx, userID, lineID)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
			return nil
		}
		return err
	}
	if err := s.cart.Delete(ctx, line.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart line")
	}
	return nil
}

// Clear removes every line for the user.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.cart.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) ownedLine(ctx context.Context, userID, lineID uuid.UUID) (*models.CartItem, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if lineID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "line id is required")
	}
	line, err := s.cart.FindByID(ctx, lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart line not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}
	if line.UserID != userID {
		// never confirm another user's line exists
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	return line, nil
}

func (s *service) enrichLine(ctx context.Context, line *models.CartItem) (*CartLineDTO, error) {
	productsByID, err := s.loadProducts(ctx, []models.CartItem{*line})
	if err != nil {
		return nil, err
	}
	dto := lineFromModel(line, productsByID[line.ProductID])
	return &dto, nil
}

func (s *service) loadProducts(ctx context.Context, items []models.CartItem) (map[uuid.UUID]*catalog.ProductDTO, error) {
	if len(items) == 0 {
		return map[uuid.UUID]*catalog.ProductDTO{}, nil
	}
	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ProductID)
	}
	products, err := s.products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	byID := make(map[uuid.UUID]*catalog.ProductDTO, len(products))
	for i := range products {
		byID[products[i].ID] = catalog.ProductFromModel(&products[i])
	}
	return byID, nil
}
