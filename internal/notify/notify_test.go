package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shramba/internal/expiry"
	"github.com/erazemk/shramba/internal/model"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func item(id, name string, expiresIn *time.Duration) model.InventoryItem {
	it := model.InventoryItem{
		ID:       id,
		Name:     name,
		Quantity: 1,
		Unit:     model.UnitPieces,
		Category: model.CategoryOther,
	}
	if expiresIn != nil {
		t := now.Add(*expiresIn)
		it.ExpiryDate = &t
	}
	return it
}

func in(d time.Duration) *time.Duration { return &d }

const day = 24 * time.Hour

func withoutIDs(alerts []model.Alert) []model.Alert {
	out := make([]model.Alert, len(alerts))
	for i, a := range alerts {
		a.ID = ""
		out[i] = a
	}
	return out
}

func TestGenerateSkipsFreshAndUndated(t *testing.T) {
	items := []model.InventoryItem{
		item("a", "Rice", nil),
		item("b", "Cheese", in(10*day)),
		item("c", "Yogurt", in(4*day)),
	}

	alerts, err := Generate(items, now)
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.NotNil(t, alerts)
}

func TestGenerateExpiredNow(t *testing.T) {
	alerts, err := Generate([]model.InventoryItem{item("a", "Milk", in(0))}, now)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	assert.Equal(t, model.UrgencyHigh, alerts[0].Urgency)
	assert.Equal(t, string(expiry.StatusExpired), alerts[0].Status)
	assert.Equal(t, 0, alerts[0].DaysLeft)
	assert.Equal(t, "Milk has expired!", alerts[0].Message)
	assert.Equal(t, "a", alerts[0].ItemID)
	assert.NotEmpty(t, alerts[0].ID)
}

func TestGenerateUrgencyAndMessages(t *testing.T) {
	items := []model.InventoryItem{
		item("3", "Eggs", in(3*day)),
		item("2", "Bread", in(2*time.Hour)),
		item("1", "Ham", in(-2*day)),
		item("4", "Lettuce", in(2*day)),
	}

	alerts, err := Generate(items, now)
	require.NoError(t, err)
	require.Len(t, alerts, 4)

	assert.Equal(t, "1", alerts[0].ItemID)
	assert.Equal(t, model.UrgencyHigh, alerts[0].Urgency)
	assert.Equal(t, "Ham has expired!", alerts[0].Message)

	assert.Equal(t, "2", alerts[1].ItemID)
	assert.Equal(t, model.UrgencyHigh, alerts[1].Urgency)
	assert.Equal(t, "Bread expires tomorrow!", alerts[1].Message)

	assert.Equal(t, "4", alerts[2].ItemID)
	assert.Equal(t, model.UrgencyMedium, alerts[2].Urgency)
	assert.Equal(t, "Lettuce expires in 2 days", alerts[2].Message)

	assert.Equal(t, "3", alerts[3].ItemID)
	assert.Equal(t, model.UrgencyMedium, alerts[3].Urgency)
	assert.Equal(t, 3, alerts[3].DaysLeft)
}

func TestGenerateTiesOrderedByID(t *testing.T) {
	items := []model.InventoryItem{
		item("b", "Spinach", in(20*time.Hour)),
		item("a", "Cream", in(day)),
	}

	alerts, err := Generate(items, now)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "a", alerts[0].ItemID)
	assert.Equal(t, "b", alerts[1].ItemID)
	assert.Equal(t, model.UrgencyHigh, alerts[0].Urgency)
	assert.Equal(t, model.UrgencyHigh, alerts[1].Urgency)
}

func TestGenerateOneAlertPerItem(t *testing.T) {
	it := item("a", "Milk", in(-day))
	alerts, err := Generate([]model.InventoryItem{it, it}, now)
	require.NoError(t, err)
	assert.Len(t, alerts, 1)

	// The first occurrence of an id decides.
	fresh := item("b", "Rice", in(30*day))
	stale := item("b", "Rice", in(-day))
	alerts, err = Generate([]model.InventoryItem{fresh, stale}, now)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestGenerateIdempotent(t *testing.T) {
	items := []model.InventoryItem{
		item("x", "Fish", in(day)),
		item("y", "Tomatoes", in(3*day)),
		item("z", "Butter", in(-4*day)),
		item("w", "Flour", nil),
	}

	first, err := Generate(items, now)
	require.NoError(t, err)
	second, err := Generate(items, now)
	require.NoError(t, err)

	assert.Equal(t, withoutIDs(first), withoutIDs(second))
	assert.NotEqual(t, first[0].ID, second[0].ID)
}

func TestGenerateRejectsInvalidItems(t *testing.T) {
	bad := item("bad", "Milk", in(day))
	bad.Quantity = 0

	_, err := Generate([]model.InventoryItem{item("ok", "Eggs", in(day)), bad}, now)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidItem))
	assert.Contains(t, err.Error(), "bad")

	missing := item("m", "", in(day))
	_, err = Generate([]model.InventoryItem{missing}, now)
	assert.ErrorIs(t, err, model.ErrInvalidItem)
}

func TestGenerateEmpty(t *testing.T) {
	alerts, err := Generate(nil, now)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestSummarize(t *testing.T) {
	items := []model.InventoryItem{
		item("a", "Ham", in(-day)),
		item("b", "Kale", in(2*day)),
		item("c", "Cod", in(time.Hour)),
	}
	alerts, err := Generate(items, now)
	require.NoError(t, err)

	s := Summarize(alerts)
	assert.Equal(t, Summary{Total: 3, High: 2, Medium: 1}, s)
}
