package dto

import (
	"time"

	"fleamarket_backend/internal/feature/items/domain/entity"
)

// OwnerRes is the owner embedded in item responses.
// It never includes the password hash.
type OwnerRes struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

// ItemRes is the response body for a single item.
type ItemRes struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      string    `json:"userId"`
	User        *OwnerRes `json:"user,omitempty"`
}

// ErrorRes is the common error response body.
type ErrorRes struct {
	Error string `json:"error"`
}

// FromEntity converts an item entity into its response representation.
// The owner is included only when it was preloaded.
func FromEntity(item *entity.Item) ItemRes {
	res := ItemRes{
		ID:          item.ID,
		Name:        item.Name,
		Price:       item.Price,
		Description: item.Description,
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		UserID:      item.UserID,
	}
	if item.User.ID != "" {
		res.User = &OwnerRes{
			ID:       item.User.ID,
			Username: item.User.Username,
			Status:   string(item.User.Status),
		}
	}
	return res
}
