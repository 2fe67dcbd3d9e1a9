package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/refresh"
)

// Options holds the collaborators of the API router.
type Options struct {
	DB        *sql.DB
	JWTSecret string
	Scheduler *refresh.Scheduler
	Feed      *refresh.Feed

	// Stream, if set, is served at /api/notifications/ws.
	Stream http.Handler

	// ObserveRescue, if set, receives the size of every rescue suggestion list.
	ObserveRescue func(n int)

	// Now defaults to time.Now.
	Now func() time.Time
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(opts Options) http.Handler {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	mux := http.NewServeMux()

	authHandler := &AuthHandler{DB: opts.DB, JWTSecret: opts.JWTSecret}
	usersHandler := &UsersHandler{DB: opts.DB}
	inventoryHandler := &InventoryHandler{DB: opts.DB}
	wasteHandler := &WasteHandler{DB: opts.DB}
	barcodeHandler := &BarcodeHandler{DB: opts.DB}
	recipesHandler := &RecipesHandler{DB: opts.DB, Now: now, ObserveRescue: opts.ObserveRescue}
	notificationsHandler := &NotificationsHandler{DB: opts.DB, Now: now, Scheduler: opts.Scheduler, Feed: opts.Feed}
	catalogHandler := &CatalogHandler{DB: opts.DB, Now: now}

	authMW := AuthMiddleware(opts.JWTSecret, opts.DB)
	requireAdmin := RequireRole(model.RoleAdmin)
	requireManager := RequireRole(model.RoleManager)

	// Public.
	mux.HandleFunc("GET /api/health", health(now))
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))

	// Users (admin only).
	mux.Handle("GET /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.List))))
	mux.Handle("POST /api/users", authMW(requireAdmin(http.HandlerFunc(usersHandler.Create))))
	mux.Handle("GET /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Get))))
	mux.Handle("PUT /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Update))))
	mux.Handle("PUT /api/users/{id}/password", authMW(requireAdmin(http.HandlerFunc(usersHandler.ResetPassword))))
	mux.Handle("DELETE /api/users/{id}", authMW(requireAdmin(http.HandlerFunc(usersHandler.Delete))))

	// Inventory and waste: every household member.
	mux.Handle("GET /api/inventory", authMW(http.HandlerFunc(inventoryHandler.List)))
	mux.Handle("POST /api/inventory", authMW(http.HandlerFunc(inventoryHandler.Create)))
	mux.Handle("GET /api/inventory/{id}", authMW(http.HandlerFunc(inventoryHandler.Get)))
	mux.Handle("PUT /api/inventory/{id}", authMW(http.HandlerFunc(inventoryHandler.Update)))
	mux.Handle("DELETE /api/inventory/{id}", authMW(http.HandlerFunc(inventoryHandler.Delete)))
	mux.Handle("PUT /api/inventory/{id}/image", authMW(http.HandlerFunc(inventoryHandler.UploadImage)))
	mux.Handle("GET /api/inventory/{id}/image", authMW(http.HandlerFunc(inventoryHandler.GetImage)))

	mux.Handle("GET /api/waste", authMW(http.HandlerFunc(wasteHandler.List)))
	mux.Handle("POST /api/waste", authMW(http.HandlerFunc(wasteHandler.Create)))
	mux.Handle("GET /api/waste/summary", authMW(http.HandlerFunc(wasteHandler.Summary)))

	mux.Handle("GET /api/barcode/{code}", authMW(http.HandlerFunc(barcodeHandler.Lookup)))

	// Recipes: read (all roles), write (manager+).
	mux.Handle("GET /api/recipes", authMW(http.HandlerFunc(recipesHandler.List)))
	mux.Handle("POST /api/recipes", authMW(requireManager(http.HandlerFunc(recipesHandler.Create))))
	mux.Handle("GET /api/recipes/expiring", authMW(http.HandlerFunc(recipesHandler.Expiring)))
	mux.Handle("GET /api/recipes/{id}", authMW(http.HandlerFunc(recipesHandler.Get)))

	// Notifications.
	mux.Handle("GET /api/notifications", authMW(http.HandlerFunc(notificationsHandler.Latest)))
	mux.Handle("GET /api/notifications/expiring", authMW(http.HandlerFunc(notificationsHandler.Expiring)))
	mux.Handle("POST /api/notifications/refresh", authMW(http.HandlerFunc(notificationsHandler.Refresh)))
	if opts.Stream != nil {
		mux.Handle("GET /api/notifications/ws", authMW(opts.Stream))
	}

	// Challenges and deals: read (all roles), write (manager+).
	mux.Handle("GET /api/challenges", authMW(http.HandlerFunc(catalogHandler.ListChallenges)))
	mux.Handle("POST /api/challenges", authMW(requireManager(http.HandlerFunc(catalogHandler.CreateChallenge))))
	mux.Handle("GET /api/deals", authMW(http.HandlerFunc(catalogHandler.ListDeals)))
	mux.Handle("POST /api/deals", authMW(requireManager(http.HandlerFunc(catalogHandler.CreateDeal))))

	return mux
}
