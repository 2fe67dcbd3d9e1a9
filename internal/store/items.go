package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

const itemColumns = `id, name, quantity, unit, category, expiry_date, barcode, image_mime, added_date`

// CreateItem validates and stores a new inventory item. The id and added date
// are assigned here and never change afterwards.
func CreateItem(ctx context.Context, db *sql.DB, item model.InventoryItem) (*model.InventoryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	item.AddedDate = time.Now().UTC()
	item.ImageMime = ""

	_, err := db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, name, quantity, unit, category, expiry_date, barcode, added_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Quantity, item.Unit, item.Category,
		nullTime(item.ExpiryDate), nullString(item.Barcode), item.AddedDate,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return GetItem(ctx, db, item.ID)
}

// GetItem returns an item by ID, or nil if it does not exist.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.InventoryItem, error) {
	item, err := scanItem(db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItems returns the current inventory snapshot ordered by name.
func ListItems(ctx context.Context, db *sql.DB) ([]model.InventoryItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY name COLLATE NOCASE, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpdateItem replaces the editable fields of an item. The id, added date and
// image are left untouched.
func UpdateItem(ctx context.Context, db *sql.DB, id string, item model.InventoryItem) (*model.InventoryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}

	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items
		 SET name = ?, quantity = ?, unit = ?, category = ?, expiry_date = ?, barcode = ?
		 WHERE id = ?`,
		item.Name, item.Quantity, item.Unit, item.Category,
		nullTime(item.ExpiryDate), nullString(item.Barcode), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating item: %w", err)
	}
	if err := requireAffected(result); err != nil {
		return nil, err
	}

	return GetItem(ctx, db, id)
}

// DeleteItem removes an item.
func DeleteItem(ctx context.Context, db *sql.DB, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return requireAffected(result)
}

// SetItemImage attaches a photo to an item.
func SetItemImage(ctx context.Context, db *sql.DB, id string, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE inventory_items SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return requireAffected(result)
}

// GetItemImage returns an item's photo and MIME type. Data is nil when the
// item or photo does not exist.
func GetItemImage(ctx context.Context, db *sql.DB, id string) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM inventory_items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*model.InventoryItem, error) {
	item := &model.InventoryItem{}
	var barcode, imageMime sql.NullString
	err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.Unit, &item.Category,
		&item.ExpiryDate, &barcode, &imageMime, &item.AddedDate)
	if err != nil {
		return nil, err
	}
	item.Barcode = barcode.String
	item.ImageMime = imageMime.String
	return item, nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
