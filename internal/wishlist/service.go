package wishlist

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

// Service exposes business rules for wishlist management. A duplicate add is
// an idempotent no-op success; the same policy applies everywhere.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]EntryDTO, error)
	Add(ctx context.Context, userID, productID uuid.UUID) (*EntryDTO, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type wishlistRepository interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	FindEntry(ctx context.Context, userID, productID uuid.UUID) (*models.WishlistItem, error)
}

type productRepository interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo wishlistRepository
	ProductRepo  productRepository
}

type service struct {
	wishlist wishlistRepository
	products productRepository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository is required")
	}
	return &service{
		wishlist: params.WishlistRepo,
		products: params.ProductRepo,
	}, nil
}

// List returns the user's saved products with live snapshots.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]EntryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	var items []models.WishlistItem
	err := db.WithRetry(ctx, func(ctx context.Context) error {
		var listErr error
		items, listErr = s.wishlist.ListByUser(ctx, userID)
		return listErr
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
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

	entries := make([]EntryDTO, 0, len(items))
	for i := range items {
		entries = append(entries, EntryDTO{
			ID:        items[i].ID,
			ProductID: items[i].ProductID,
			CreatedAt: items[i].CreatedAt,
			Product:   byID[items[i].ProductID],
		})
	}
	return entries, nil
}

// Add ensures the product exists and saves it. Duplicates collapse into the
// existing entry, which is returned.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) (*EntryDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.FindActiveByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	err = db.WithRetry(ctx, func(ctx context.Context) error {
		return s.wishlist.AddItem(ctx, userID, productID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add to wishlist")
	}

	entry, err := s.wishlist.FindEntry(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload wishlist entry")
	}
	return &EntryDTO{
		ID:        entry.ID,
		ProductID: entry.ProductID,
		CreatedAt: entry.CreatedAt,
		Product:   catalog.ProductFromModel(product),
	}, nil
}

// Remove drops the entry regardless of prior state.
func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if err := s.wishlist.RemoveItem(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist entry")
	}
	return nil
}
