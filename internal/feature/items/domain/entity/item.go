// Package entity defines the domain models for the items feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	authentity "fleamarket_backend/internal/feature/auth/domain/entity"
)

// ItemStatus represents the lifecycle state of a listing.
// States advance monotonically: ON_SALE → TRADING → SOLD_OUT.
type ItemStatus string

const (
	// ItemStatusOnSale is the initial state of every new listing.
	ItemStatusOnSale ItemStatus = "ON_SALE"

	// ItemStatusTrading means a buyer has reserved the item.
	ItemStatusTrading ItemStatus = "TRADING"

	// ItemStatusSoldOut is the terminal state. No further transitions.
	ItemStatusSoldOut ItemStatus = "SOLD_OUT"
)

// Next returns the state that follows s in the purchase flow.
// The second return value is false when s is terminal.
func (s ItemStatus) Next() (ItemStatus, bool) {
	switch s {
	case ItemStatusOnSale:
		return ItemStatusTrading, true
	case ItemStatusTrading:
		return ItemStatusSoldOut, true
	default:
		return s, false
	}
}

// Item represents a marketplace listing owned by exactly one user.
type Item struct {
	// ID is the unique identifier for the item (UUID).
	ID string `gorm:"type:uuid;primaryKey"`

	// Name is the display name of the listing.
	Name string `gorm:"size:255;not null"`

	// Price is the asking price in the smallest currency unit.
	Price int `gorm:"not null"`

	// Description is free-form seller text. May be empty.
	Description string `gorm:"type:text"`

	// Status is the lifecycle state of the listing.
	Status ItemStatus `gorm:"size:32;not null"`

	// CreatedAt is the timestamp when the item was listed.
	CreatedAt time.Time

	// UpdatedAt is the timestamp of the last status change.
	UpdatedAt time.Time

	// UserID is the ID of the owning user. Ownership never transfers.
	UserID string `gorm:"type:uuid;not null;index"`

	// User is the owning user, preloaded on single-item reads.
	User authentity.User `gorm:"foreignKey:UserID"`
}

// BeforeCreate assigns a UUID when the item has no ID yet.
func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
