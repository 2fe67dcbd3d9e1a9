package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// LogWaste records a discarded quantity of an item and takes it out of the
// inventory in the same transaction. An item whose quantity reaches zero is
// deleted.
func LogWaste(ctx context.Context, db *sql.DB, itemID string, quantity int, reason string) (*model.WasteRecord, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidWaste)
	}
	if !model.ValidWasteReason(reason) {
		return nil, fmt.Errorf("%w: unknown reason %q", ErrInvalidWaste, reason)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	var current int
	err = tx.QueryRowContext(ctx,
		`SELECT name, quantity FROM inventory_items WHERE id = ?`, itemID,
	).Scan(&name, &current)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking item quantity: %w", err)
	}

	if quantity > current {
		return nil, fmt.Errorf("%w: have %d, discarding %d", ErrInsufficientQuantity, current, quantity)
	}

	rec := &model.WasteRecord{
		ID:            uuid.NewString(),
		ItemID:        itemID,
		ItemName:      name,
		Quantity:      quantity,
		Reason:        reason,
		DateDiscarded: time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO waste_records (id, item_id, item_name, quantity, reason, date_discarded)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.ItemID, rec.ItemName, rec.Quantity, rec.Reason, rec.DateDiscarded,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting waste record: %w", err)
	}

	if quantity == current {
		_, err = tx.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, itemID)
	} else {
		_, err = tx.ExecContext(ctx,
			`UPDATE inventory_items SET quantity = quantity - ? WHERE id = ?`,
			quantity, itemID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("reducing item quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing waste record: %w", err)
	}
	return rec, nil
}

// ListWaste returns all waste records, newest first.
func ListWaste(ctx context.Context, db *sql.DB) ([]model.WasteRecord, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, item_name, quantity, reason, date_discarded
		 FROM waste_records ORDER BY date_discarded DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing waste records: %w", err)
	}
	defer rows.Close()

	var records []model.WasteRecord
	for rows.Next() {
		var r model.WasteRecord
		if err := rows.Scan(&r.ID, &r.ItemID, &r.ItemName, &r.Quantity, &r.Reason, &r.DateDiscarded); err != nil {
			return nil, fmt.Errorf("scanning waste record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// SummarizeWaste totals the waste log per reason.
func SummarizeWaste(ctx context.Context, db *sql.DB) ([]model.WasteSummary, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT reason, COUNT(*), SUM(quantity)
		 FROM waste_records GROUP BY reason ORDER BY reason`,
	)
	if err != nil {
		return nil, fmt.Errorf("summarizing waste: %w", err)
	}
	defer rows.Close()

	var out []model.WasteSummary
	for rows.Next() {
		var s model.WasteSummary
		if err := rows.Scan(&s.Reason, &s.Records, &s.Quantity); err != nil {
			return nil, fmt.Errorf("scanning waste summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
