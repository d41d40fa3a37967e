// Package dto defines data transfer objects for the items feature's HTTP transport layer.
package dto

// CreateItemReq represents the request body for POST /items.
// Price must be a positive integer; description may be empty.
type CreateItemReq struct {
	Name        string `json:"name" binding:"required"`
	Price       int    `json:"price" binding:"required,gt=0"`
	Description string `json:"description"`
}
