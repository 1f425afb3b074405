package enums

import "fmt"

// AdminPermission is a capability tag attached to an admin grant.
type AdminPermission string

const (
	AdminPermissionManageProducts   AdminPermission = "manage_products"
	AdminPermissionManageCategories AdminPermission = "manage_categories"
	AdminPermissionManageOrders     AdminPermission = "manage_orders"
	AdminPermissionViewAnalytics    AdminPermission = "view_analytics"
)

var validAdminPermissions = []AdminPermission{
	AdminPermissionManageProducts,
	AdminPermissionManageCategories,
	AdminPermissionManageOrders,
	AdminPermissionViewAnalytics,
}

// DefaultAdminPermissions returns the capability set granted on promotion.
func DefaultAdminPermissions() []AdminPermission {
	return append([]AdminPermission(nil), validAdminPermissions...)
}

// String implements fmt.Stringer.
func (p AdminPermission) String() string {
	return string(p)
}

// IsValid reports whether the value is a known AdminPermission.
func (p AdminPermission) IsValid() bool {
	for _, candidate := range validAdminPermissions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseAdminPermission converts raw input into an AdminPermission.
func ParseAdminPermission(value string) (AdminPermission, error) {
	for _, candidate := range validAdminPermissions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid admin permission %q", value)
}

// AdminRole is the role label stored on an admin grant.
type AdminRole string

const AdminRoleAdmin AdminRole = "admin"

// String implements fmt.Stringer.
func (r AdminRole) String() string {
	return string(r)
}
