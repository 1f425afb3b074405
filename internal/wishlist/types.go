package wishlist

import (
	"time"

	"github.com/google/uuid"

	"github.com/jerseyforge/jerseyforge-backend/internal/catalog"
)

// EntryDTO is one saved product with its live snapshot.
type EntryDTO struct {
	ID        uuid.UUID           `json:"id"`
	ProductID uuid.UUID           `json:"productId"`
	CreatedAt time.Time           `json:"createdAt"`
	Product   *catalog.ProductDTO `json:"product,omitempty"`
}
