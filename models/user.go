// Package models contains domain entities and business models for the platform
package models

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	UserRoleUser  = "user"
	UserRoleAdmin = "admin"
)

// Authentication providers
const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

type User struct {
	ID   uint      `gorm:"primaryKey" json:"id"`
	UUID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uk_users_uuid;index:idx_users_uuid" json:"uuid"`

	FirstName string `gorm:"size:255;not null" json:"first_name"`
	LastName  string `gorm:"size:255;not null" json:"last_name"`
	Email     string `gorm:"size:255;not null;uniqueIndex:uk_users_email" json:"email"`

	// PasswordHash is nullable: Google-provisioned accounts carry no password
	PasswordHash *string `gorm:"size:255" json:"-"`

	Role         string  `gorm:"size:16;not null;default:'user';index:idx_users_role" json:"role"`
	AuthProvider string  `gorm:"size:16;not null;default:'email'" json:"auth_provider"`
	GoogleID     *string `gorm:"size:255;index:idx_users_google_id" json:"-"`

	IsActive *bool `gorm:"default:true;index:idx_users_is_active" json:"is_active"`

	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_users_created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC')" json:"updated_at"`
	LastLoginAt *time.Time `gorm:"index:idx_users_last_login_at" json:"last_login_at,omitempty"`

	// Relations
	Interactions []OfferInteraction `gorm:"foreignKey:UserID" json:"-"`
	Sessions     []UserSession      `gorm:"foreignKey:UserID" json:"-"`
	AuditLogs    []AuditLog         `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// FullName returns the display name for user-facing views
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// UserFilter represents filter criteria for user queries
type UserFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Email         *string
	Role          *string
	AuthProvider  *string
	GoogleID      *string
	IsActive      *bool
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
