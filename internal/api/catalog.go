package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/store"
)

// CatalogHandler serves the waste-reduction challenges and store deals.
type CatalogHandler struct {
	DB  *sql.DB
	Now func() time.Time
}

type challengeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Type        string `json:"type"`
	Deadline    *date  `json:"deadline"`
}

type dealRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Discount    string `json:"discount"`
	StoreName   string `json:"store_name"`
	ExpiryDate  *date  `json:"expiry_date"`
	Sponsored   bool   `json:"sponsored"`
	ImageURL    string `json:"image_url"`
}

// ListChallenges handles GET /api/challenges.
func (h *CatalogHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := store.ListActiveChallenges(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list challenges", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list challenges")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(challenges))
}

// CreateChallenge handles POST /api/challenges.
func (h *CatalogHandler) CreateChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := store.CreateChallenge(r.Context(), h.DB, model.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Points:      req.Points,
		Type:        req.Type,
		Deadline:    req.Deadline.ptr(),
	})
	if errors.Is(err, store.ErrInvalidCatalogEntry) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create challenge", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create challenge")
		return
	}
	jsonResponse(w, http.StatusCreated, c)
}

// ListDeals handles GET /api/deals.
func (h *CatalogHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	deals, err := store.ListDeals(r.Context(), h.DB, h.Now())
	if err != nil {
		slog.Error("failed to list deals", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list deals")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(deals))
}

// CreateDeal handles POST /api/deals.
func (h *CatalogHandler) CreateDeal(w http.ResponseWriter, r *http.Request) {
	var req dealRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := store.CreateDeal(r.Context(), h.DB, model.Deal{
		Title:       req.Title,
		Description: req.Description,
		Discount:    req.Discount,
		StoreName:   req.StoreName,
		ExpiryDate:  req.ExpiryDate.ptr(),
		Sponsored:   req.Sponsored,
		ImageURL:    req.ImageURL,
	})
	if errors.Is(err, store.ErrInvalidCatalogEntry) {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.Error("failed to create deal", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create deal")
		return
	}
	jsonResponse(w, http.StatusCreated, d)
}
