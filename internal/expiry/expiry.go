// Package expiry classifies inventory expiry dates into urgency categories.
package expiry

import (
	"math"
	"time"
)

// ExpiringWindowDays is the largest number of remaining days still considered
// "expiring".
const ExpiringWindowDays = 3

// Status is the expiry category of an item.
type Status string

// Expiry statuses.
const (
	StatusNone     Status = "none"
	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring"
	StatusFresh    Status = "fresh"
)

// AtRisk reports whether the status calls for using the item soon.
func (s Status) AtRisk() bool {
	return s == StatusExpired || s == StatusExpiring
}

// DaysRemaining returns the ceiling of (expiry - now) in whole 24h days.
// Partial days round toward the future: two hours left is one day.
// The second result is false when expiry is nil.
func DaysRemaining(expiry *time.Time, now time.Time) (int, bool) {
	if expiry == nil {
		return 0, false
	}
	days := math.Ceil(expiry.Sub(now).Hours() / 24)
	return int(days), true
}

// Classify returns the expiry status of a date relative to now.
func Classify(expiry *time.Time, now time.Time) Status {
	s, _ := Evaluate(expiry, now)
	return s
}

// Evaluate returns both the status and the days remaining. Days is zero for
// StatusNone.
func Evaluate(expiry *time.Time, now time.Time) (Status, int) {
	days, ok := DaysRemaining(expiry, now)
	switch {
	case !ok:
		return StatusNone, 0
	case days <= 0:
		return StatusExpired, days
	case days <= ExpiringWindowDays:
		return StatusExpiring, days
	default:
		return StatusFresh, days
	}
}
