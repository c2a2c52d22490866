package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mamafavourite/api/internal/alert"
	"github.com/mamafavourite/api/internal/config"
	"github.com/mamafavourite/api/internal/database"
	"github.com/mamafavourite/api/internal/enum"
	"github.com/mamafavourite/api/internal/handler"
	mw "github.com/mamafavourite/api/internal/middleware"
	"github.com/mamafavourite/api/internal/service"
	"github.com/mamafavourite/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Storefront routes are public; everything under /admin requires a
// staff JWT.
func New(cfg *config.Config, queries *database.Queries, svc *service.CheckoutService, hub *ws.Hub, alerts *alert.Engine) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Storefront routes (public)
	checkoutHandler := handler.NewCheckoutHandler(svc, hub, alerts)
	checkoutHandler.RegisterRoutes(r)

	menuHandler := handler.NewMenuHandler(queries, hub)
	menuHandler.RegisterPublicRoutes(r)

	settingsHandler := handler.NewSettingsHandler(queries, hub)
	settingsHandler.RegisterPublicRoutes(r)

	// WebSocket routes. The orders socket checks the JWT itself via
	// query param; the settings socket is public.
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeOrdersWS(hub, cfg.JWTSecret, w, r)
	})
	r.Get("/ws/settings", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeSettingsWS(hub, w, r)
	})

	// Admin routes (require authentication)
	r.Route("/admin", func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireRole(enum.StaffRoleAdmin, enum.StaffRoleStaff))

		orderHandler := handler.NewOrderHandler(queries, hub, alerts)
		orderHandler.RegisterRoutes(r)

		menuHandler.RegisterAdminRoutes(r)
		settingsHandler.RegisterAdminRoutes(r)
	})

	return r
}
