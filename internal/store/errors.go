package store

import "errors"

var (
	// ErrNotFound is returned by mutations that target a missing row.
	ErrNotFound = errors.New("not found")

	// ErrInsufficientQuantity is returned when more is taken from an item
	// than it holds.
	ErrInsufficientQuantity = errors.New("insufficient quantity")

	// ErrInvalidWaste is returned for a waste entry with a bad quantity or reason.
	ErrInvalidWaste = errors.New("invalid waste entry")

	// ErrInvalidCatalogEntry is returned for a malformed challenge or deal.
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
)
