package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/jerseyforge/jerseyforge-backend/internal/catalog"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	dbtypes "github.com/jerseyforge/jerseyforge-backend/pkg/db/types"
)

// CartLineDTO is one cart row enriched with the live product snapshot.
// Price always reflects the product's current price, not price-at-add-time.
type CartLineDTO struct {
	ID            uuid.UUID              `json:"id"`
	ProductID     uuid.UUID              `json:"productId"`
	Quantity      int                    `json:"quantity"`
	SelectedSize  *string                `json:"selectedSize,omitempty"`
	SelectedColor *dbtypes.Color         `json:"selectedColor,omitempty"`
	Customization *dbtypes.Customization `json:"customization,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	Product       *catalog.ProductDTO    `json:"product,omitempty"`
}

// AddLineDTO carries the payload for adding a product to the cart.
type AddLineDTO struct {
	ProductID     uuid.UUID
	Quantity      int
	SelectedSize  *string
	SelectedColor *dbtypes.Color
	Customization *dbtypes.Customization
}

func lineFromModel(item *models.CartItem, product *catalog.ProductDTO) CartLineDTO {
	return CartLineDTO{
		ID:            item.ID,
		ProductID:     item.ProductID,
		Quantity:      item.Quantity,
		SelectedSize:  item.SelectedSize,
		SelectedColor: item.SelectedColor,
		Customization: item.Customization,
		CreatedAt:     item.CreatedAt,
		Product:       product,
	}
}
