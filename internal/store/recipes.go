package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

const recipeColumns = `id, name, ingredients, instructions, prep_time, difficulty, category, affiliate_links, created_at`

// CreateRecipe validates and stores a recipe. ExpiringIngredients is never
// persisted.
func CreateRecipe(ctx context.Context, db *sql.DB, r model.Recipe) (*model.Recipe, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Category == "" {
		r.Category = "main"
	}
	if r.Instructions == nil {
		r.Instructions = []string{}
	}
	if r.AffiliateLinks == nil {
		r.AffiliateLinks = map[string]string{}
	}

	ingredients, err := json.Marshal(r.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("encoding ingredients: %w", err)
	}
	instructions, err := json.Marshal(r.Instructions)
	if err != nil {
		return nil, fmt.Errorf("encoding instructions: %w", err)
	}
	links, err := json.Marshal(r.AffiliateLinks)
	if err != nil {
		return nil, fmt.Errorf("encoding affiliate links: %w", err)
	}

	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()

	_, err = db.ExecContext(ctx,
		`INSERT INTO recipes (`+recipeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, string(ingredients), string(instructions), r.PrepTime,
		r.Difficulty, r.Category, string(links), r.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating recipe: %w", err)
	}

	return GetRecipe(ctx, db, r.ID)
}

// GetRecipe returns a recipe by ID, or nil if it does not exist.
func GetRecipe(ctx context.Context, db *sql.DB, id string) (*model.Recipe, error) {
	r, err := scanRecipe(db.QueryRowContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = ?`, id,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting recipe: %w", err)
	}
	return r, nil
}

// ListRecipes returns the full recipe catalog ordered by name.
func ListRecipes(ctx context.Context, db *sql.DB) ([]model.Recipe, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+recipeColumns+` FROM recipes ORDER BY name COLLATE NOCASE, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func scanRecipe(row rowScanner) (*model.Recipe, error) {
	r := &model.Recipe{}
	var ingredients, instructions, links string
	err := row.Scan(&r.ID, &r.Name, &ingredients, &instructions, &r.PrepTime,
		&r.Difficulty, &r.Category, &links, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("decoding ingredients of recipe %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(instructions), &r.Instructions); err != nil {
		return nil, fmt.Errorf("decoding instructions of recipe %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(links), &r.AffiliateLinks); err != nil {
		return nil, fmt.Errorf("decoding affiliate links of recipe %s: %w", r.ID, err)
	}
	return r, nil
}
