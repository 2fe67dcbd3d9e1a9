// Package barcode resolves product barcodes to metadata used to prefill new
// inventory items.
package barcode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// ErrInvalidCode is returned for codes that are empty or not all digits.
var ErrInvalidCode = errors.New("invalid barcode")

// catalog is the built-in product table consulted on a cache miss.
var catalog = map[string]model.Product{
	"123456789": {Barcode: "123456789", Name: "Milk", Brand: "Fresh Farm", Category: model.CategoryDairy},
	"987654321": {Barcode: "987654321", Name: "Bread", Brand: "Bakery Fresh", Category: model.CategoryBakery},
	"456789123": {Barcode: "456789123", Name: "Bananas", Brand: "Tropical", Category: model.CategoryFruits},
}

// Lookup returns the product for code, or nil if it is unknown. The local
// cache is checked first; catalog hits are written back to it.
func Lookup(ctx context.Context, db *sql.DB, code string) (*model.Product, error) {
	if !valid(code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	cached, err := store.GetProduct(ctx, db, code)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	p, ok := catalog[code]
	if !ok {
		return nil, nil
	}
	if err := store.SaveProduct(ctx, db, p); err != nil {
		return nil, fmt.Errorf("caching product %s: %w", code, err)
	}
	return &p, nil
}

func valid(code string) bool {
	if code == "" || len(code) > 32 {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
