package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jerseyforge/jerseyforge-backend/api/responses"
	"github.com/jerseyforge/jerseyforge-backend/api/validators"
	catalogsvc "github.com/jerseyforge/jerseyforge-backend/internal/catalog"
	dbtypes "github.com/jerseyforge/jerseyforge-backend/pkg/db/types"
	"github.com/jerseyforge/jerseyforge-backend/pkg/enums"
	pkgerrors "github.com/jerseyforge/jerseyforge-backend/pkg/errors"
	"github.com/jerseyforge/jerseyforge-backend/pkg/logger"
)

// ListCategories returns the active categories, name ascending.
func ListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

// ListProducts returns active products filtered by the query parameters.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := productFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

func productFilterFromQuery(r *http.Request) (catalogsvc.ProductFilter, error) {
	filter := catalogsvc.ProductFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("categoryId")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id")
		}
		filter.CategoryID = &id
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("featured")); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "featured must be a boolean")
		}
		filter.IsFeatured = &featured
	}

	return filter, nil
}

// GetProductBySlug looks up one active product by exact slug.
func GetProductBySlug(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		product, err := svc.GetProductBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}

// ListRelatedProducts returns up to three active products sharing the
// product's category.
func ListRelatedProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		related, err := svc.ListRelatedProducts(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": related})
	}
}

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Slug        string  `json:"slug" validate:"required,max=160"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// CreateCategory adds a category to the catalog.
func CreateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.CreateCategory(r.Context(), catalogsvc.CreateCategoryDTO{
			Name:        payload.Name,
			Slug:        payload.Slug,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"category": category})
	}
}

type updateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=120"`
	Description *string `json:"description,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// UpdateCategory applies partial changes to a category.
func UpdateCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCategoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		category, err := svc.UpdateCategory(r.Context(), id, catalogsvc.UpdateCategoryDTO{
			Name:        payload.Name,
			Description: payload.Description,
			ImageURL:    payload.ImageURL,
			IsActive:    payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"category": category})
	}
}

// DeleteCategory soft-deletes a category.
func DeleteCategory(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

type createProductRequest struct {
	Name                 string                        `json:"name" validate:"required,max=200"`
	Slug                 string                        `json:"slug" validate:"required,max=240"`
	ShortDescription     *string                       `json:"shortDescription,omitempty"`
	Description          *string                       `json:"description,omitempty"`
	Price                decimal.Decimal               `json:"price" validate:"required"`
	SalePrice            *decimal.Decimal              `json:"salePrice,omitempty"`
	CategoryID           uuid.UUID                     `json:"categoryId" validate:"required"`
	ImageURL             *string                       `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Images               []string                      `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsFeatured           bool                          `json:"isFeatured"`
	Stock                int                           `json:"stock" validate:"min=0"`
	Tags                 []string                      `json:"tags,omitempty"`
	AvailableSizes       []string                      `json:"availableSizes,omitempty"`
	AvailableColors      []dbtypes.Color               `json:"availableColors,omitempty" validate:"omitempty,dive"`
	CustomizationOptions *dbtypes.CustomizationOptions `json:"customizationOptions,omitempty"`
}

// CreateProduct adds a jersey listing to the catalog.
func CreateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sizes, err := parseSizes(payload.AvailableSizes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalogsvc.CreateProductDTO{
			Name:                 payload.Name,
			Slug:                 payload.Slug,
			ShortDescription:     payload.ShortDescription,
			Description:          payload.Description,
			Price:                payload.Price,
			SalePrice:            payload.SalePrice,
			CategoryID:           payload.CategoryID,
			ImageURL:             payload.ImageURL,
			Images:               payload.Images,
			IsFeatured:           payload.IsFeatured,
			Stock:                payload.Stock,
			Tags:                 payload.Tags,
			AvailableSizes:       sizes,
			AvailableColors:      payload.AvailableColors,
			CustomizationOptions: payload.CustomizationOptions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"product": product})
	}
}

type updateProductRequest struct {
	Name                 *string                       `json:"name,omitempty" validate:"omitempty,max=200"`
	ShortDescription     *string                       `json:"shortDescription,omitempty"`
	Description          *string                       `json:"description,omitempty"`
	Price                *decimal.Decimal              `json:"price,omitempty"`
	SalePrice            *decimal.Decimal              `json:"salePrice,omitempty"`
	ClearSalePrice       bool                          `json:"clearSalePrice,omitempty"`
	CategoryID           *uuid.UUID                    `json:"categoryId,omitempty"`
	ImageURL             *string                       `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Images               []string                      `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsActive             *bool                         `json:"isActive,omitempty"`
	IsFeatured           *bool                         `json:"isFeatured,omitempty"`
	Stock                *int                          `json:"stock,omitempty" validate:"omitempty,min=0"`
	Tags                 []string                      `json:"tags,omitempty"`
	AvailableSizes       []string                      `json:"availableSizes,omitempty"`
	AvailableColors      []dbtypes.Color               `json:"availableColors,omitempty" validate:"omitempty,dive"`
	CustomizationOptions *dbtypes.CustomizationOptions `json:"customizationOptions,omitempty"`
}

// UpdateProduct applies partial changes to a product.
func UpdateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sizes, err := parseSizes(payload.AvailableSizes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, catalogsvc.UpdateProductDTO{
			Name:                 payload.Name,
			ShortDescription:     payload.ShortDescription,
			Description:          payload.Description,
			Price:                payload.Price,
			SalePrice:            payload.SalePrice,
			ClearSalePrice:       payload.ClearSalePrice,
			CategoryID:           payload.CategoryID,
			ImageURL:             payload.ImageURL,
			Images:               payload.Images,
			IsActive:             payload.IsActive,
			IsFeatured:           payload.IsFeatured,
			Stock:                payload.Stock,
			Tags:                 payload.Tags,
			AvailableSizes:       sizes,
			AvailableColors:      payload.AvailableColors,
			CustomizationOptions: payload.CustomizationOptions,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}

// DeleteProduct soft-deletes a product. Cart and wishlist rows survive; the
// product just stops being visible.
func DeleteProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuidURLParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func parseSizes(raw []string) ([]enums.Size, error) {
	if raw == nil {
		return nil, nil
	}
	sizes := make([]enums.Size, 0, len(raw))
	for _, value := range raw {
		size, err := enums.ParseSize(value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size")
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func uuidURLParam(r *http.Request, key string) (uuid.UUID, error) {
	raw := chi.URLParam(r, key)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid identifier")
	}
	return id, nil
}
