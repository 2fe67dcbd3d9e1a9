package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/model"
)

func TestLogWastePartial(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Bananas", 6, nil))

	rec, err := LogWaste(ctx, database, item.ID, 2, model.WasteSpoiled)
	if err != nil {
		t.Fatalf("LogWaste: %v", err)
	}
	if rec.ItemName != "Bananas" || rec.Quantity != 2 || rec.Reason != model.WasteSpoiled {
		t.Errorf("unexpected record: %+v", rec)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got == nil {
		t.Fatal("expected item to remain")
	}
	if got.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", got.Quantity)
	}
}

func TestLogWasteAllDeletesItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Yogurt", 2, nil))

	if _, err := LogWaste(ctx, database, item.ID, 2, model.WasteExpired); err != nil {
		t.Fatalf("LogWaste: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got != nil {
		t.Errorf("expected item deleted at zero quantity, got %+v", got)
	}

	records, _ := ListWaste(ctx, database)
	if len(records) != 1 {
		t.Fatalf("expected 1 waste record, got %d", len(records))
	}
	if records[0].ItemName != "Yogurt" {
		t.Errorf("expected record to keep item name, got %q", records[0].ItemName)
	}
}

func TestLogWasteInsufficient(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Eggs", 3, nil))

	_, err := LogWaste(ctx, database, item.ID, 5, model.WasteDamaged)
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("expected ErrInsufficientQuantity, got %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Quantity != 3 {
		t.Errorf("expected quantity to stay 3, got %d", got.Quantity)
	}
	records, _ := ListWaste(ctx, database)
	if len(records) != 0 {
		t.Errorf("expected no waste records, got %d", len(records))
	}
}

func TestLogWasteInvalid(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, newItem("Eggs", 3, nil))

	if _, err := LogWaste(ctx, database, item.ID, 0, model.WasteOther); !errors.Is(err, ErrInvalidWaste) {
		t.Errorf("expected ErrInvalidWaste for zero quantity, got %v", err)
	}
	if _, err := LogWaste(ctx, database, item.ID, 1, "forgot"); !errors.Is(err, ErrInvalidWaste) {
		t.Errorf("expected ErrInvalidWaste for unknown reason, got %v", err)
	}
	if _, err := LogWaste(ctx, database, "nope", 1, model.WasteOther); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSummarizeWaste(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateItem(ctx, database, newItem("Apples", 10, nil))
	b, _ := CreateItem(ctx, database, newItem("Bread", 2, nil))

	LogWaste(ctx, database, a.ID, 3, model.WasteSpoiled)
	LogWaste(ctx, database, a.ID, 1, model.WasteSpoiled)
	LogWaste(ctx, database, b.ID, 2, model.WasteExpired)

	summary, err := SummarizeWaste(ctx, database)
	if err != nil {
		t.Fatalf("SummarizeWaste: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("expected 2 reasons, got %d", len(summary))
	}
	// Ordered by reason.
	if summary[0].Reason != model.WasteExpired || summary[0].Records != 1 || summary[0].Quantity != 2 {
		t.Errorf("unexpected expired summary: %+v", summary[0])
	}
	if summary[1].Reason != model.WasteSpoiled || summary[1].Records != 2 || summary[1].Quantity != 4 {
		t.Errorf("unexpected spoiled summary: %+v", summary[1])
	}
}
