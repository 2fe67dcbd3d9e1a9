package rescue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/shramba/internal/model"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

const day = 24 * time.Hour

func item(id, name string, expiresIn time.Duration) model.InventoryItem {
	t := now.Add(expiresIn)
	return model.InventoryItem{
		ID:         id,
		Name:       name,
		Quantity:   1,
		Unit:       model.UnitPieces,
		Category:   model.CategoryOther,
		ExpiryDate: &t,
	}
}

func recipe(id string, ingredients ...string) model.Recipe {
	return model.Recipe{
		ID:          id,
		Name:        "Recipe " + id,
		Ingredients: ingredients,
		Difficulty:  model.DifficultyEasy,
	}
}

func ids(recipes []model.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func TestMatchMilkScenario(t *testing.T) {
	items := []model.InventoryItem{item("1", "Milk", 2*day)}
	recipes := []model.Recipe{recipe("r1", "milk", "sugar")}

	got, err := Match(items, recipes, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, []string{"milk"}, got[0].ExpiringIngredients)
}

func TestMatchExcludesUnrelatedRecipes(t *testing.T) {
	items := []model.InventoryItem{item("1", "Milk", day)}
	recipes := []model.Recipe{
		recipe("r1", "flour", "eggs"),
		recipe("r2", "Milk", "cocoa"),
	}

	got, err := Match(items, recipes, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"r2"}, ids(got))
}

func TestMatchIgnoresFreshAndUndatedItems(t *testing.T) {
	undated := item("2", "Sugar", 0)
	undated.ExpiryDate = nil
	items := []model.InventoryItem{item("1", "Milk", 10*day), undated}

	got, err := Match(items, []model.Recipe{recipe("r1", "milk", "sugar")}, now)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestMatchTotality(t *testing.T) {
	items := []model.InventoryItem{item("1", "Milk", day)}

	got, err := Match(items, nil, now)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = Match(nil, []model.Recipe{recipe("r1", "milk")}, now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchRanking(t *testing.T) {
	items := []model.InventoryItem{
		item("1", "Milk", 3*day),
		item("2", "Eggs", day),
		item("3", "Spinach", -day),
		item("4", "Cream", 2*day),
	}
	recipes := []model.Recipe{
		recipe("c", "milk", "flour"),         // 1 hit, min 3
		recipe("b", "eggs", "milk"),          // 2 hits, min 1
		recipe("a", "spinach", "flour"),      // 1 hit, min -1
		recipe("d", "cream", "eggs"),         // 2 hits, min 1
		recipe("e", "milk", "eggs", "cream"), // 3 hits
		recipe("f", "milk"),                  // 1 hit, min 3
	}

	got, err := Match(items, recipes, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"e", "b", "d", "a", "c", "f"}, ids(got))
}

func TestMatchPreservesRecipeOrder(t *testing.T) {
	items := []model.InventoryItem{
		item("1", "Tomatoes", day),
		item("2", " basil ", 2*day),
	}
	got, err := Match(items, []model.Recipe{recipe("r", "Basil", "pasta", "TOMATOES")}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"Basil", "TOMATOES"}, got[0].ExpiringIngredients)
}

func TestMatchCountsRepeatedIngredientOnce(t *testing.T) {
	items := []model.InventoryItem{item("1", "Milk", day)}
	got, err := Match(items, []model.Recipe{recipe("r", "milk", "Milk")}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"milk"}, got[0].ExpiringIngredients)
}

func TestMatchUsesSoonestItemPerName(t *testing.T) {
	items := []model.InventoryItem{
		item("1", "Milk", 3*day),
		item("2", "milk", -day),
	}
	risk, err := AtRisk(items, now)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"milk": -1}, risk)
}

func TestMatchDoesNotMutateCatalog(t *testing.T) {
	items := []model.InventoryItem{item("1", "Milk", day)}
	catalog := []model.Recipe{recipe("r1", "milk", "sugar")}
	catalog[0].AffiliateLinks = map[string]string{"sugar": "https://example.com/sugar"}

	got, err := Match(items, catalog, now)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Nil(t, catalog[0].ExpiringIngredients)
	got[0].Ingredients[0] = "changed"
	got[0].AffiliateLinks["milk"] = "x"
	assert.Equal(t, "milk", catalog[0].Ingredients[0])
	assert.NotContains(t, catalog[0].AffiliateLinks, "milk")
}

func TestMatchMonotonic(t *testing.T) {
	items := []model.InventoryItem{item("1", "Milk", day)}
	recipes := []model.Recipe{
		recipe("r1", "milk"),
		recipe("r2", "bananas", "oats"),
		recipe("r3", "flour"),
	}

	before, err := Match(items, recipes, now)
	require.NoError(t, err)

	items = append(items, item("2", "Bananas", 2*day))
	after, err := Match(items, recipes, now)
	require.NoError(t, err)

	for _, id := range ids(before) {
		assert.Contains(t, ids(after), id)
	}
	assert.Contains(t, ids(after), "r2")
	assert.NotContains(t, ids(after), "r3")
}

func TestMatchRejectsInvalidItems(t *testing.T) {
	bad := item("1", "Milk", day)
	bad.Unit = ""
	_, err := Match([]model.InventoryItem{bad}, []model.Recipe{recipe("r", "milk")}, now)
	assert.ErrorIs(t, err, model.ErrInvalidItem)
}
