package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/jerseyforge/jerseyforge-backend/pkg/db/types"
)

// Product represents a jersey listing in the catalog.
type Product struct {
	ID                   uuid.UUID                     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string                        `gorm:"column:name;not null"`
	Slug                 string                        `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	ShortDescription     *string                       `gorm:"column:short_description"`
	Description          *string                       `gorm:"column:description"`
	Price                decimal.Decimal               `gorm:"column:price;type:numeric(10,2);not null"`
	SalePrice            *decimal.Decimal              `gorm:"column:sale_price;type:numeric(10,2)"`
	CategoryID           uuid.UUID                     `gorm:"column:category_id;type:uuid;not null;index:products_category_id_idx"`
	ImageURL             *string                       `gorm:"column:image_url"`
	Images               []string                      `gorm:"column:images;type:jsonb;serializer:json"`
	IsActive             bool                          `gorm:"column:is_active;not null;default:true"`
	IsFeatured           bool                          `gorm:"column:is_featured;not null;default:false"`
	Stock                int                           `gorm:"column:stock;not null;default:0"`
	Tags                 []string                      `gorm:"column:tags;type:jsonb;serializer:json"`
	AvailableSizes       dbtypes.SizeList              `gorm:"column:available_sizes;type:jsonb;serializer:json"`
	AvailableColors      []dbtypes.Color               `gorm:"column:available_colors;type:jsonb;serializer:json"`
	CustomizationOptions *dbtypes.CustomizationOptions `gorm:"column:customization_options;type:jsonb;serializer:json"`
	CreatedAt            time.Time                     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time                     `gorm:"column:updated_at;autoUpdateTime"`
}
