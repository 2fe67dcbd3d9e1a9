// Package notify turns an inventory snapshot into the expiry alert feed.
package notify

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/expiry"
	"github.com/erazemk/shramba/internal/model"
)

// Generate builds the alert list for a snapshot. Only expired and expiring
// items produce alerts, at most one per item id, ordered by days left and then
// item id. Alert ids are fresh on every call; all other fields are
// deterministic for a given snapshot and now.
func Generate(items []model.InventoryItem, now time.Time) ([]model.Alert, error) {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, fmt.Errorf("item %q: %w", items[i].ID, err)
		}
	}

	seen := make(map[string]bool, len(items))
	alerts := []model.Alert{}
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true

		status, days := expiry.Evaluate(it.ExpiryDate, now)
		if !status.AtRisk() {
			continue
		}

		alerts = append(alerts, model.Alert{
			ID:         uuid.NewString(),
			ItemID:     it.ID,
			ItemName:   it.Name,
			Message:    Message(it.Name, status, days),
			Urgency:    Urgency(status, days),
			Status:     string(status),
			DaysLeft:   days,
			ExpiryDate: it.ExpiryDate,
		})
	}

	slices.SortStableFunc(alerts, func(a, b model.Alert) int {
		if c := cmp.Compare(a.DaysLeft, b.DaysLeft); c != 0 {
			return c
		}
		return cmp.Compare(a.ItemID, b.ItemID)
	})
	return alerts, nil
}

// Urgency maps an at-risk status to an alert urgency.
func Urgency(status expiry.Status, days int) string {
	if status == expiry.StatusExpired || days <= 1 {
		return model.UrgencyHigh
	}
	return model.UrgencyMedium
}

// Message returns the alert text for an item.
func Message(name string, status expiry.Status, days int) string {
	switch {
	case status == expiry.StatusExpired:
		return fmt.Sprintf("%s has expired!", name)
	case days == 1:
		return fmt.Sprintf("%s expires tomorrow!", name)
	default:
		return fmt.Sprintf("%s expires in %d days", name, days)
	}
}

// Summary counts alerts per urgency.
type Summary struct {
	Total  int `json:"total"`
	High   int `json:"high"`
	Medium int `json:"medium"`
}

// Summarize counts the alerts of a feed.
func Summarize(alerts []model.Alert) Summary {
	s := Summary{Total: len(alerts)}
	for _, a := range alerts {
		switch a.Urgency {
		case model.UrgencyHigh:
			s.High++
		case model.UrgencyMedium:
			s.Medium++
		}
	}
	return s
}
