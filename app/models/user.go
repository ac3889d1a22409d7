package models

import (
	"strings"

	"gorm.io/gorm"
)

// Roles understood by the access checks. Anything else is normalised to
// RoleCustomer when a user is created or updated.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
	RoleCustomer = "customer"
)

// User is the primary user model.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	Role     string `gorm:"size:50;default:customer" json:"role"`
}

// NormalizeRole maps free-form role input onto one of the known roles.
// Unknown values become RoleCustomer, the least-privileged role.
func NormalizeRole(role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin:
		return RoleAdmin
	case RoleEmployee:
		return RoleEmployee
	default:
		return RoleCustomer
	}
}

// IsStaff reports whether the role may manage products and order statuses.
func IsStaff(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}
