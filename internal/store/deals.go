package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// CreateDeal stores a store offer.
func CreateDeal(ctx context.Context, db *sql.DB, d model.Deal) (*model.Deal, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidCatalogEntry)
	}
	if strings.TrimSpace(d.StoreName) == "" {
		return nil, fmt.Errorf("%w: store_name required", ErrInvalidCatalogEntry)
	}

	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO deals (id, title, description, discount, store_name, expiry_date, sponsored, image_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Title, d.Description, d.Discount, d.StoreName,
		nullTime(d.ExpiryDate), d.Sponsored, nullString(d.ImageURL), d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}
	return &d, nil
}

// ListDeals returns the deals that have not expired at now. Sponsored deals
// are listed first.
func ListDeals(ctx context.Context, db *sql.DB, now time.Time) ([]model.Deal, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, discount, store_name, expiry_date, sponsored, image_url, created_at
		 FROM deals WHERE expiry_date IS NULL OR expiry_date > ?
		 ORDER BY sponsored DESC, created_at DESC, id`,
		now.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		var d model.Deal
		var imageURL sql.NullString
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Discount, &d.StoreName,
			&d.ExpiryDate, &d.Sponsored, &imageURL, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning deal: %w", err)
		}
		d.ImageURL = imageURL.String
		deals = append(deals, d)
	}
	return deals, rows.Err()
}
