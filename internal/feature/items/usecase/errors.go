// Package usecase implements the business logic for the items feature.
package usecase

import "errors"

var (
	// ErrItemNotFound is returned when no item exists with the given ID.
	ErrItemNotFound = errors.New("item not found")

	// ErrOwnItemPurchase is returned when a user attempts to purchase their own item.
	ErrOwnItemPurchase = errors.New("cannot purchase own item")

	// ErrItemSoldOut is returned when attempting to advance an item that is already sold.
	ErrItemSoldOut = errors.New("item is already sold out")

	// ErrNotItemOwner is returned when a user other than the owner attempts to delete an item.
	ErrNotItemOwner = errors.New("only the owner can delete this item")

	// ErrItemStateChanged is returned when the item's status moved between read and write,
	// i.e. another buyer advanced it first.
	ErrItemStateChanged = errors.New("item status changed concurrently")
)
