package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/jerseyforge/jerseyforge-backend/pkg/db/models"
	"github.com/jerseyforge/jerseyforge-backend/pkg/enums"
)

// GrantDTO is the transport shape of an admin grant.
type GrantDTO struct {
	ID          uuid.UUID               `json:"id"`
	UserID      uuid.UUID               `json:"userId"`
	Role        enums.AdminRole         `json:"role"`
	Permissions []enums.AdminPermission `json:"permissions"`
	IsActive    bool                    `json:"isActive"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// CreateAdminDTO carries the payload for provisioning a new admin account.
type CreateAdminDTO struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	SetupCode string
}

// CategoryCountDTO is one row of the per-category product breakdown.
type CategoryCountDTO struct {
	CategoryID   uuid.UUID `json:"categoryId"`
	CategoryName string    `json:"categoryName"`
	ProductCount int64     `json:"productCount"`
}

// StatsDTO is the dashboard summary. The shape is fixed; every field is
// present even when its count is zero.
type StatsDTO struct {
	TotalUsers         int64              `json:"totalUsers"`
	TotalProducts      int64              `json:"totalProducts"`
	TotalCategories    int64              `json:"totalCategories"`
	FeaturedProducts   int64              `json:"featuredProducts"`
	ProductsByCategory []CategoryCountDTO `json:"productsByCategory"`
}

func grantFromModel(g *models.AdminGrant) *GrantDTO {
	if g == nil {
		return nil
	}
	permissions := g.Permissions
	if permissions == nil {
		permissions = []enums.AdminPermission{}
	}
	return &GrantDTO{
		ID:          g.ID,
		UserID:      g.UserID,
		Role:        g.Role,
		Permissions: permissions,
		IsActive:    g.IsActive,
		CreatedAt:   g.CreatedAt,
	}
}
