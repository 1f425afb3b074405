package admin

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	"github.com/jerseyforge/jerseyforge-backend/pkg/enums"
)

// Repository encapsulates admin grant persistence. The user_id unique index
// makes promotion an upsert: promoting twice leaves a single active grant.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admin repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveGrantByUser loads the active grant for a user, if any.
func (r *Repository) FindActiveGrantByUser(ctx context.Context, userID uuid.UUID) (*models.AdminGrant, error) {
	var grant models.AdminGrant
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = true", userID).
		First(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// FindGrantByUser loads the grant row for a user regardless of state.
func (r *Repository) FindGrantByUser(ctx context.Context, userID uuid.UUID) (*models.AdminGrant, error) {
	var grant models.AdminGrant
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&grant).Error; err != nil {
		return nil, err
	}
	return &grant, nil
}

// Promote upserts the grant for a user and reactivates a revoked one. The
// operation is idempotent; concurrent promotions converge on one row.
func (r *Repository) Promote(ctx context.Context, userID uuid.UUID) error {
	permissions, err := json.Marshal(enums.DefaultAdminPermissions())
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Exec(`INSERT INTO admin_grants (user_id, role, permissions, is_active)
			VALUES (?, ?, ?::jsonb, true)
			ON CONFLICT (user_id) DO UPDATE SET is_active = true`,
			userID, enums.AdminRoleAdmin, string(permissions)).
		Error
}

// Revoke deactivates the grant, keeping the row for audit. Revoking an
// absent or already-revoked grant affects zero rows.
func (r *Repository) Revoke(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.AdminGrant{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_active", false).
		Error
}

// CountActive returns the number of active admin grants.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AdminGrant{}).
		Where("is_active = true").
		Count(&count).Error
	return count, err
}

// Stats aggregates the dashboard counts in a single pass over the store.
// Soft-deleted products and categories are excluded everywhere.
func (r *Repository) Stats(ctx context.Context) (*StatsDTO, error) {
	stats := &StatsDTO{ProductsByCategory: []CategoryCountDTO{}}

	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = true").
		Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("is_active = true").
		Count(&stats.TotalCategories).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = true AND is_featured = true").
		Count(&stats.FeaturedProducts).Error; err != nil {
		return nil, err
	}

	rows := []struct {
		CategoryID   uuid.UUID
		CategoryName string
		ProductCount int64
	}{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT c.id AS category_id, c.name AS category_name, COUNT(p.id) AS product_count
			FROM categories c
			LEFT JOIN products p ON p.category_id = c.id AND p.is_active = true
			WHERE c.is_active = true
			GROUP BY c.id, c.name
			ORDER BY c.name ASC`).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ProductsByCategory = append(stats.ProductsByCategory, CategoryCountDTO{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			ProductCount: row.ProductCount,
		})
	}
	return stats, nil
}
