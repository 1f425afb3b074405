package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/jerseyforge/jerseyforge-backend/pkg/db/types"
)

// CartItem is a single cart line. The (user_id, product_id) pair is unique so
// concurrent adds collapse into one row.
type CartItem struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index:cart_items_user_id_idx;uniqueIndex:cart_items_user_product_key"`
	ProductID     uuid.UUID              `gorm:"column:product_id;type:uuid;not null;uniqueIndex:cart_items_user_product_key"`
	Quantity      int                    `gorm:"column:quantity;not null"`
	SelectedSize  *string                `gorm:"column:selected_size"`
	SelectedColor *dbtypes.Color         `gorm:"column:selected_color;type:jsonb;serializer:json"`
	Customization *dbtypes.Customization `gorm:"column:customization;type:jsonb;serializer:json"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
