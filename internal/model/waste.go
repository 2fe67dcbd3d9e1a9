package model

import "time"

// WasteRecord logs a discarded quantity of an inventory item. Records are
// append-only.
type WasteRecord struct {
	ID            string    `json:"id"`
	ItemID        string    `json:"item_id"`
	ItemName      string    `json:"item_name"`
	Quantity      int       `json:"quantity"`
	Reason        string    `json:"reason"`
	DateDiscarded time.Time `json:"date_discarded"`
}

// Waste reasons.
const (
	WasteExpired = "expired"
	WasteSpoiled = "spoiled"
	WasteDamaged = "damaged"
	WasteOther   = "other"
)

// ValidWasteReason reports whether reason is a known waste reason.
func ValidWasteReason(reason string) bool {
	switch reason {
	case WasteExpired, WasteSpoiled, WasteDamaged, WasteOther:
		return true
	}
	return false
}

// WasteSummary is the total wasted quantity and record count for one reason.
type WasteSummary struct {
	Reason   string `json:"reason"`
	Records  int    `json:"records"`
	Quantity int    `json:"quantity"`
}
