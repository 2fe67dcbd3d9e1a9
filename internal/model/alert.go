package model

import "time"

// Alert is one entry of the expiry notification feed. Alerts are rebuilt from
// scratch on every run and never updated in place.
type Alert struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	ItemName   string     `json:"item_name"`
	Message    string     `json:"message"`
	Urgency    string     `json:"urgency"`
	Status     string     `json:"status"`
	DaysLeft   int        `json:"days_left"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
}

// Alert urgencies.
const (
	UrgencyHigh   = "high"
	UrgencyMedium = "medium"
)
