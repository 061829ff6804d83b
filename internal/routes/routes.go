// internal/routes/routes.go
package routes

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"classifieds/internal/config"
	"classifieds/internal/handlers"
	authmw "classifieds/internal/middleware"
	"classifieds/internal/storage"
)

// Deps is what the resource routes are built from.
type Deps struct {
	DB    *sql.DB
	Cfg   *config.Config
	Store storage.Store
	Base  *handlers.BaseHandler
	Auth  func(http.Handler) http.Handler
}

func SetupRoutes(db *sql.DB, cfg *config.Config, store storage.Store) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.ClientURL != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   strings.Split(cfg.ClientURL, ","),
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Classifieds API is running"})
	})
	r.Get("/health", healthHandler(db))

	if disk, ok := store.(*storage.Disk); ok {
		mountUploads(r, cfg.PublicUploadBaseURL, disk.Root())
	}
	RegisterSwaggerRoutes(r, cfg)

	deps := Deps{
		DB:    db,
		Cfg:   cfg,
		Store: store,
		Base:  handlers.NewBaseHandler(cfg),
		Auth:  authmw.JWTAuth(cfg.JWTSecret),
	}

	r.Route("/api", func(r chi.Router) {
		RegisterUserRoutes(r, deps)
		RegisterPostRoutes(r, deps)
		RegisterClientRoutes(r, deps)
		RegisterCampaignRoutes(r, deps)
		RegisterAdRoutes(r, deps)
		RegisterLocationRoutes(r, deps)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		dbStatus := map[string]string{"status": "ok"}
		status := http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = map[string]string{"status": "down", "error": err.Error()}
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]any{
			"status": overall,
			"db":     dbStatus,
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// mountUploads serves disk-stored media when the public base URL is a local path.
func mountUploads(r chi.Router, baseURL, root string) {
	if !strings.HasPrefix(baseURL, "/") {
		return
	}
	prefix := strings.TrimRight(baseURL, "/")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}
