package model

import "time"

// Product is barcode metadata used to prefill new inventory items.
type Product struct {
	Barcode  string `json:"barcode"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
}

// Challenge is a waste-reduction goal shown to the household.
type Challenge struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Points      int        `json:"points"`
	Type        string     `json:"type"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Challenge types.
const (
	ChallengeDaily   = "daily"
	ChallengeWeekly  = "weekly"
	ChallengeMonthly = "monthly"
)

// Challenge statuses.
const (
	ChallengeActive    = "active"
	ChallengeCompleted = "completed"
	ChallengeExpired   = "expired"
)

// Deal is a store offer listing.
type Deal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Discount    string     `json:"discount"`
	StoreName   string     `json:"store_name"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	Sponsored   bool       `json:"sponsored"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
