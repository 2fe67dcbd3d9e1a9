// Package rescue ranks catalog recipes by how much about-to-spoil inventory
// they use up.
package rescue

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/erazemk/shramba/internal/expiry"
	"github.com/erazemk/shramba/internal/model"
)

// AtRisk returns the normalized names of expired or expiring items, each
// mapped to the fewest days remaining among items with that name.
func AtRisk(items []model.InventoryItem, now time.Time) (map[string]int, error) {
	risk := make(map[string]int)
	for i := range items {
		it := &items[i]
		if err := it.Validate(); err != nil {
			return nil, fmt.Errorf("item %q: %w", it.ID, err)
		}
		status, days := expiry.Evaluate(it.ExpiryDate, now)
		if !status.AtRisk() {
			continue
		}
		key := model.NormalizeIngredient(it.Name)
		if prev, ok := risk[key]; !ok || days < prev {
			risk[key] = days
		}
	}
	return risk, nil
}

type candidate struct {
	recipe  model.Recipe
	minDays int
}

// Match returns the recipes that use at least one at-risk ingredient, each a
// copy annotated with ExpiringIngredients in recipe order. Results are ranked
// by number of at-risk ingredients (desc), soonest expiry among them (asc) and
// recipe id (asc). The input catalog is not modified.
func Match(items []model.InventoryItem, recipes []model.Recipe, now time.Time) ([]model.Recipe, error) {
	risk, err := AtRisk(items, now)
	if err != nil {
		return nil, err
	}
	if len(risk) == 0 {
		return []model.Recipe{}, nil
	}

	var candidates []candidate
	for _, r := range recipes {
		var hits []string
		used := make(map[string]bool)
		minDays := 0
		for _, ing := range r.Ingredients {
			key := model.NormalizeIngredient(ing)
			days, ok := risk[key]
			if !ok || used[key] {
				continue
			}
			if len(hits) == 0 || days < minDays {
				minDays = days
			}
			used[key] = true
			hits = append(hits, ing)
		}
		if len(hits) == 0 {
			continue
		}
		candidates = append(candidates, candidate{recipe: annotate(r, hits), minDays: minDays})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		if c := cmp.Compare(len(b.recipe.ExpiringIngredients), len(a.recipe.ExpiringIngredients)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.minDays, b.minDays); c != 0 {
			return c
		}
		return cmp.Compare(a.recipe.ID, b.recipe.ID)
	})

	out := make([]model.Recipe, len(candidates))
	for i, c := range candidates {
		out[i] = c.recipe
	}
	return out, nil
}

// annotate copies r so callers never share slices or maps with the catalog.
func annotate(r model.Recipe, hits []string) model.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Instructions = slices.Clone(r.Instructions)
	r.AffiliateLinks = maps.Clone(r.AffiliateLinks)
	r.ExpiringIngredients = hits
	return r
}
