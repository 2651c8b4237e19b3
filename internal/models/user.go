package models

import (
	"time"

	"gorm.io/datatypes"
)

// Role names are referenced by string in access checks.
const (
	RoleAdmin     = "admin"
	RoleAPIAdmin  = "api_admin"
	RoleDeveloper = "developer"
	RoleOperator  = "operator"
)

type Role struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string `json:"description" gorm:"type:varchar(255)"`
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	FullName     string    `json:"full_name" gorm:"type:varchar(120);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"`
	Active       bool      `json:"active" gorm:"not null;default:true"`
	RoleID       *uint     `json:"role_id" gorm:"index"`
	Role         *Role     `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RoleName returns the user's role name, or "" when no role is assigned
// or the association was not loaded.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// HasRole reports whether the user's role is one of names.
func (u *User) HasRole(names ...string) bool {
	current := u.RoleName()
	if current == "" {
		return false
	}
	for _, n := range names {
		if n == current {
			return true
		}
	}
	return false
}

type Session struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Token     string    `json:"-" gorm:"type:varchar(500);uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

type AuditLog struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	UserID     uint              `json:"user_id" gorm:"index"`
	Action     string            `json:"action" gorm:"type:varchar(50);not null"` // login, logout, register, create, update, delete, toggle, test, set_role, set_active, setting
	Resource   string            `json:"resource" gorm:"type:varchar(100)"`       // integration, user, setting
	ResourceID string            `json:"resource_id" gorm:"type:varchar(255)"`
	Details    datatypes.JSONMap `json:"details"`
	IPAddress  string            `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent  string            `json:"user_agent" gorm:"type:varchar(500)"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index"`
	User       User              `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
