package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jerseyforge/jerseyforge-backend/pkg/enums"
)

// AdminGrant confers elevated privilege on a user. At most one grant exists
// per user; revocation flips is_active and keeps the row for audit.
type AdminGrant struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID               `gorm:"column:user_id;type:uuid;not null;uniqueIndex:admin_grants_user_id_key"`
	Role        enums.AdminRole         `gorm:"column:role;not null;default:'admin'"`
	Permissions []enums.AdminPermission `gorm:"column:permissions;type:jsonb;serializer:json"`
	IsActive    bool                    `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
}
