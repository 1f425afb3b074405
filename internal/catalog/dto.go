package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	dbtypes "github.com/jerseyforge/jerseyforge-backend/pkg/db/types"
	"github.com/jerseyforge/jerseyforge-backend/pkg/enums"
)

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"imageUrl,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductDTO is the transport shape for a jersey listing.
type ProductDTO struct {
	ID                   uuid.UUID                     `json:"id"`
	Name                 string                        `json:"name"`
	Slug                 string                        `json:"slug"`
	ShortDescription     *string                       `json:"shortDescription,omitempty"`
	Description          *string                       `json:"description,omitempty"`
	Price                decimal.Decimal               `json:"price"`
	SalePrice            *decimal.Decimal              `json:"salePrice,omitempty"`
	CategoryID           uuid.UUID                     `json:"categoryId"`
	ImageURL             *string                       `json:"imageUrl,omitempty"`
	Images               []string                      `json:"images"`
	IsActive             bool                          `json:"isActive"`
	IsFeatured           bool                          `json:"isFeatured"`
	Stock                int                           `json:"stock"`
	Tags                 []string                      `json:"tags"`
	AvailableSizes       dbtypes.SizeList              `json:"availableSizes"`
	AvailableColors      []dbtypes.Color               `json:"availableColors"`
	CustomizationOptions *dbtypes.CustomizationOptions `json:"customizationOptions,omitempty"`
	CreatedAt            time.Time                     `json:"createdAt"`
	UpdatedAt            time.Time                     `json:"updatedAt"`
}

// ProductFilter narrows a product listing. IsActive defaults to "active only"
// when unset.
type ProductFilter struct {
	CategoryID *uuid.UUID
	Search     string
	IsActive   *bool
	IsFeatured *bool
}

// CreateCategoryDTO carries the fields accepted on category creation.
type CreateCategoryDTO struct {
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
}

// UpdateCategoryDTO carries the mutable category fields; nil means unchanged.
type UpdateCategoryDTO struct {
	Name        *string
	Description *string
	ImageURL    *string
	IsActive    *bool
}

// CreateProductDTO carries the fields accepted on product creation.
type CreateProductDTO struct {
	Name                 string
	Slug                 string
	ShortDescription     *string
	Description          *string
	Price                decimal.Decimal
	SalePrice            *decimal.Decimal
	CategoryID           uuid.UUID
	ImageURL             *string
	Images               []string
	IsFeatured           bool
	Stock                int
	Tags                 []string
	AvailableSizes       []enums.Size
	AvailableColors      []dbtypes.Color
	CustomizationOptions *dbtypes.CustomizationOptions
}

// UpdateProductDTO carries the mutable product fields; nil means unchanged.
type UpdateProductDTO struct {
	Name                 *string
	ShortDescription     *string
	Description          *string
	Price                *decimal.Decimal
	SalePrice            *decimal.Decimal
	ClearSalePrice       bool
	CategoryID           *uuid.UUID
	ImageURL             *string
	Images               []string
	IsActive             *bool
	IsFeatured           *bool
	Stock                *int
	Tags                 []string
	AvailableSizes       []enums.Size
	AvailableColors      []dbtypes.Color
	CustomizationOptions *dbtypes.CustomizationOptions
}

func CategoryFromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		ImageURL:    c.ImageURL,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

func ProductFromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	sizes := p.AvailableSizes
	if sizes == nil {
		sizes = dbtypes.SizeList{}
	}
	colors := p.AvailableColors
	if colors == nil {
		colors = []dbtypes.Color{}
	}
	return &ProductDTO{
		ID:                   p.ID,
		Name:                 p.Name,
		Slug:                 p.Slug,
		ShortDescription:     p.ShortDescription,
		Description:          p.Description,
		Price:                p.Price,
		SalePrice:            p.SalePrice,
		CategoryID:           p.CategoryID,
		ImageURL:             p.ImageURL,
		Images:               images,
		IsActive:             p.IsActive,
		IsFeatured:           p.IsFeatured,
		Stock:                p.Stock,
		Tags:                 tags,
		AvailableSizes:       sizes,
		AvailableColors:      colors,
		CustomizationOptions: p.CustomizationOptions,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
