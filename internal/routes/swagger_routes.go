package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"classifieds/docs"
	"classifieds/internal/config"
)

// RegisterSwaggerRoutes serves the API docs outside production.
func RegisterSwaggerRoutes(r chi.Router, cfg *config.Config) {
	if cfg.IsProduction() {
		return
	}
	docs.SwaggerInfo.BasePath = "/"

	redirect := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	}
	r.Get("/swagger", redirect)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(false),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
		httpSwagger.PersistAuthorization(true),
	))
}
