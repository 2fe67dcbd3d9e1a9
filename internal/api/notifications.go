package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/notify"
	"github.com/erazemk/shramba/internal/refresh"
	"github.com/erazemk/shramba/internal/store"
)

// NotificationsHandler serves expiry alerts, both freshly generated and from
// the scheduler's latest feed.
type NotificationsHandler struct {
	DB        *sql.DB
	Now       func() time.Time
	Scheduler *refresh.Scheduler
	Feed      *refresh.Feed
}

// Expiring handles GET /api/notifications/expiring. Alerts are generated from
// the inventory as it is right now.
func (h *NotificationsHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB)
	if err != nil {
		slog.Error("failed to list inventory", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}

	alerts, err := notify.Generate(items, h.Now())
	if err != nil {
		slog.Error("inventory snapshot rejected", "error", err)
		jsonError(w, http.StatusInternalServerError, "inventory contains an invalid item")
		return
	}
	jsonResponse(w, http.StatusOK, emptyIfNil(alerts))
}

// Latest handles GET /api/notifications. Before the first successful run the
// feed is empty.
func (h *NotificationsHandler) Latest(w http.ResponseWriter, r *http.Request) {
	result, ok := h.Feed.Latest()
	if !ok {
		jsonResponse(w, http.StatusOK, refresh.Result{Alerts: []model.Alert{}})
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// Refresh handles POST /api/notifications/refresh.
func (h *NotificationsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	err := h.Scheduler.RunOnce(r.Context())
	switch {
	case errors.Is(err, refresh.ErrRunInProgress):
		jsonError(w, http.StatusConflict, "refresh already in progress")
		return
	case errors.Is(err, refresh.ErrPublish):
		// The feed itself was rebuilt; only some subscribers missed it.
		slog.Warn("refresh published partially", "error", err)
	case err != nil:
		slog.Error("manual refresh failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "refresh failed")
		return
	}

	slog.Info("manual refresh", "user", GetClaims(r.Context()).Username)
	h.Latest(w, r)
}
