package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRecipe is wrapped by every recipe validation failure.
var ErrInvalidRecipe = errors.New("invalid recipe")

// Recipe is a catalog entry. ExpiringIngredients is derived: only the rescue
// matcher fills it and it is never persisted.
type Recipe struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Ingredients         []string          `json:"ingredients"`
	Instructions        []string          `json:"instructions"`
	PrepTime            int               `json:"prep_time"`
	Difficulty          string            `json:"difficulty"`
	Category            string            `json:"category"`
	AffiliateLinks      map[string]string `json:"affiliate_links,omitempty"`
	ExpiringIngredients []string          `json:"expiring_ingredients,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
}

// Recipe difficulties.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Validate checks the required fields of a recipe.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name required", ErrInvalidRecipe)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("%w: at least one ingredient required", ErrInvalidRecipe)
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return fmt.Errorf("%w: ingredient %d is empty", ErrInvalidRecipe, i+1)
		}
	}
	if r.PrepTime < 0 {
		return fmt.Errorf("%w: prep_time must not be negative", ErrInvalidRecipe)
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidRecipe, r.Difficulty)
	}
	return nil
}

// NormalizeIngredient returns the matching key for an ingredient or item name.
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
