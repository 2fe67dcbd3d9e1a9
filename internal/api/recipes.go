package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/rescue"
	"github.com/erazemk/shramba/internal/store"
)

// RecipesHandler handles the recipe catalog and rescue suggestions.
type RecipesHandler struct {
	DB  *sql.DB
	Now func() time.Time

	// ObserveRescue, if set, receives the size of every suggestion list.
	ObserveRescue func(n int)
}

type recipeRequest struct {
	Name           string            `json:"name"`
	Ingredients    []string          `json:"ingredients"`
	Instructions   []string          `json:"instructions"`
	PrepTime       int               `json:"prep_time"`
	Difficulty     string            `json:"difficulty"`
	Category       string            `json:"category"`
	AffiliateLinks map[string]string `json:"affiliate_links"`
}

// List handles GET /api/recipes.
func (h *RecipesHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := store.ListRecipes(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list recipes", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(recipes))
}

// Create handles POST /api/recipes.
func (h *RecipesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	recipe, err := store.CreateRecipe(r.Context(), h.DB, model.Recipe{
		Name:           req.Name,
		Ingredients:    req.Ingredients,
		Instructions:   req.Instructions,
		PrepTime:       req.PrepTime,
		Difficulty:     req.Difficulty,
		Category:       req.Category,
		AffiliateLinks: req.AffiliateLinks,
	})
	if errors.Is(err, model.ErrInvalidRecipe) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create recipe", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	slog.Info("recipe created", "user", GetClaims(r.Context()).Username, "recipe", recipe.Name)
	jsonResponse(w, http.StatusCreated, recipe)
}

// Get handles GET /api/recipes/{id}.
func (h *RecipesHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := store.GetRecipe(r.Context(), h.DB, r.PathValue("id"))
	if err != nil {
		slog.Error("failed to get recipe", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to get recipe")
		return
	}
	if recipe == nil {
		jsonError(w, http.StatusNotFound, "recipe not found")
		return
	}
	jsonResponse(w, http.StatusOK, recipe)
}

// Expiring handles GET /api/recipes/expiring: the catalog ranked by how many
// soon-to-expire items each recipe would use up.
func (h *RecipesHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list inventory", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	recipes, err := store.ListRecipes(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list recipes", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load recipes")
		return
	}

	matched, err := rescue.Match(items, recipes, h.Now())
	if err != nil {
		slog.Error("inventory snapshot rejected", "error", err)
		jsonError(w, http.StatusInternalServerError, "inventory contains an invalid item")
		return
	}
	if h.ObserveRescue != nil {
		h.ObserveRescue(len(matched))
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(matched))
}
