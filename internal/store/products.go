package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/shramba/internal/model"
)

// GetProduct returns cached barcode metadata, or nil if the code was never
// resolved.
func GetProduct(ctx context.Context, db *sql.DB, barcode string) (*model.Product, error) {
	p := &model.Product{}
	var brand, category sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT barcode, name, brand, category FROM products WHERE barcode = ?`, barcode,
	).Scan(&p.Barcode, &p.Name, &brand, &category)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	p.Brand = brand.String
	p.Category = category.String
	return p, nil
}

// SaveProduct caches barcode metadata, replacing an earlier entry for the
// same code.
func SaveProduct(ctx context.Context, db *sql.DB, p model.Product) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO products (barcode, name, brand, category) VALUES (?, ?, ?, ?)
		 ON CONFLICT(barcode) DO UPDATE SET name = excluded.name, brand = excluded.brand, category = excluded.category`,
		p.Barcode, p.Name, nullString(p.Brand), nullString(p.Category),
	)
	if err != nil {
		return fmt.Errorf("saving product: %w", err)
	}
	return nil
}
