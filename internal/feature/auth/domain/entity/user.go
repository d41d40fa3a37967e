// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStatus represents the membership tier of a user.
type UserStatus string

const (
	// UserStatusFree is the default tier assigned at signup.
	UserStatusFree UserStatus = "FREE"

	// UserStatusPremium is the paid membership tier.
	UserStatusPremium UserStatus = "PREMIUM"
)

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user (UUID).
	ID string `gorm:"type:uuid;primaryKey"`

	// Username is the login name used for authentication.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// Status is the membership tier (FREE or PREMIUM).
	Status UserStatus `gorm:"size:32;not null;default:FREE"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID when the user has no ID yet.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
