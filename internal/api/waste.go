package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/store"
)

// WasteHandler handles the waste log.
type WasteHandler struct {
	DB *sql.DB
}

type wasteRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

// Create handles POST /api/waste.
func (h *WasteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req wasteRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == "" {
		jsonError(w, http.StatusBadRequest, "item_id required")
		return
	}

	rec, err := store.LogWaste(r.Context(), h.DB, req.ItemID, req.Quantity, req.Reason)
	switch {
	case errors.Is(err, store.ErrInvalidWaste):
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
		return
	case errors.Is(err, store.ErrInsufficientQuantity):
		jsonError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		slog.Error("failed to log waste", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to log waste")
		return
	}

	slog.Info("waste logged",
		"user", GetClaims(r.Context()).Username,
		"item", rec.ItemName,
		"quantity", rec.Quantity,
		"reason", rec.Reason,
	)
	jsonResponse(w, http.StatusCreated, rec)
}

// List handles GET /api/waste.
func (h *WasteHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := store.ListWaste(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list waste", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list waste")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(records))
}

// Summary handles GET /api/waste/summary.
func (h *WasteHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := store.SummarizeWaste(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to summarize waste", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to summarize waste")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(summary))
}
