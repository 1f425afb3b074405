package cart

import (
	"context"

	"github.com/google/uuid"
	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates cart persistence. The (user_id, product_id) unique
// index is the authority on the one-line-per-product invariant; callers
// handle the unique violation an insert race produces.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUser returns the user's cart lines, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var list []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// FindByID loads a single cart line.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindLine loads the line for a (user, product) pair.
func (r *Repository) FindLine(ctx context.Context, userID, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert creates a new cart line.
func (r *Repository) Insert(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// IncrementQuantity merges a quantity delta into an existing line and reports
// how many rows matched. Zero rows means the line does not exist yet.
func (r *Repository) IncrementQuantity(ctx context.Context, userID, productID uuid.UUID, delta int) (int64, error) {
	res := r.db.WithContext(ctx).
		Exec(`UPDATE cart_items SET quantity = quantity + ?, updated_at = now() WHERE user_id = ? AND product_id = ?`,
			delta, userID, productID)
	return res.RowsAffected, res.Error
}

// ReplaceQuantity overwrites the quantity on a line.
func (r *Repository) ReplaceQuantity(ctx context.Context, id uuid.UUID, quantity int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		UpdateColumn("quantity", quantity)
	return res.RowsAffected, res.Error
}

// Delete removes a line; deleting an absent line affects zero rows.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.CartItem{}).Error
}

// Clear removes every line belonging to the user.
func (r *Repository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
