package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidItem is wrapped by every inventory item validation failure.
var ErrInvalidItem = errors.New("invalid inventory item")

// InventoryItem is a perishable (or non-perishable) product in the household.
// A stored item always has Quantity >= 1; an item used up or thrown away
// entirely is deleted.
type InventoryItem struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`
	Unit       string     `json:"unit"`
	Category   string     `json:"category"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Barcode    string     `json:"barcode,omitempty"`
	ImageMime  string     `json:"image_mime,omitempty"`
	AddedDate  time.Time  `json:"added_date"`
}

// Units of measure.
const (
	UnitPieces   = "pieces"
	UnitKg       = "kg"
	UnitLiters   = "liters"
	UnitPackages = "packages"
	UnitBottles  = "bottles"
)

// Food categories.
const (
	CategoryFruits     = "fruits"
	CategoryVegetables = "vegetables"
	CategoryDairy      = "dairy"
	CategoryMeat       = "meat"
	CategoryBakery     = "bakery"
	CategoryPantry     = "pantry"
	CategoryFrozen     = "frozen"
	CategoryOther      = "other"
)

var units = map[string]bool{
	UnitPieces:   true,
	UnitKg:       true,
	UnitLiters:   true,
	UnitPackages: true,
	UnitBottles:  true,
}

var categories = map[string]bool{
	CategoryFruits:     true,
	CategoryVegetables: true,
	CategoryDairy:      true,
	CategoryMeat:       true,
	CategoryBakery:     true,
	CategoryPantry:     true,
	CategoryFrozen:     true,
	CategoryOther:      true,
}

// ValidUnit reports whether u is a known unit of measure.
func ValidUnit(u string) bool { return units[u] }

// ValidCategory reports whether c is a known food category.
func ValidCategory(c string) bool { return categories[c] }

// Validate checks the required fields of an item. It never coerces values.
func (it *InventoryItem) Validate() error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidItem)
	}
	if it.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1, got %d", ErrInvalidItem, it.Quantity)
	}
	if it.Unit == "" {
		return fmt.Errorf("%w: unit required", ErrInvalidItem)
	}
	if !ValidUnit(it.Unit) {
		return fmt.Errorf("%w: unknown unit %q", ErrInvalidItem, it.Unit)
	}
	if it.Category == "" {
		return fmt.Errorf("%w: category required", ErrInvalidItem)
	}
	if !ValidCategory(it.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, it.Category)
	}
	return nil
}
