package models

import (
	"time"
)

// Role is the access level assigned to a user account.
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleManager:
		return true
	}
	return false
}

// User represents a registered account. The password column only ever
// holds a bcrypt hash, never the plaintext.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	Email     *string   `gorm:"uniqueIndex;size:100" json:"email"`
	Phone     *string   `gorm:"size:20" json:"phone"`
	Role      Role      `gorm:"not null;size:20;default:'USER'" json:"role"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
