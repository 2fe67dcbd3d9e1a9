package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/shramba/internal/barcode"
)

// BarcodeHandler resolves scanned barcodes.
type BarcodeHandler struct {
	DB *sql.DB
}

// Lookup handles GET /api/barcode/{code}.
func (h *BarcodeHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	product, err := barcode.Lookup(r.Context(), h.DB, r.PathValue("code"))
	if errors.Is(err, barcode.ErrInvalidCode) {
		jsonError(w, http.StatusBadRequest, "invalid barcode")
		return
	}
	if err != nil {
		slog.Error("barcode lookup failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "barcode lookup failed")
		return
	}
	if product == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	jsonResponse(w, http.StatusOK, product)
}
