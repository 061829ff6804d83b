package routes

import (
	"github.com/go-chi/chi/v5"

	"classifieds/internal/handlers"
	"classifieds/internal/repository"
)

func RegisterLocationRoutes(router chi.Router, deps Deps) {
	locationHandler := handlers.NewLocationHandler(
		deps.Base,
		repository.NewAreaRepository(deps.DB),
		repository.NewCityRepository(deps.DB),
	)

	router.Route("/areas", func(r chi.Router) {
		r.Get("/", locationHandler.ListAreas)
		r.Get("/{id}", locationHandler.GetArea)
		r.Get("/{id}/cities", locationHandler.ListAreaCities)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth)
			r.Post("/", locationHandler.CreateArea)
			r.Put("/{id}", locationHandler.UpdateArea)
			r.Delete("/{id}", locationHandler.DeleteArea)
		})
	})

	router.Route("/cities", func(r chi.Router) {
		r.Get("/", locationHandler.ListCities)
		r.Get("/{id}", locationHandler.GetCity)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth)
			r.Post("/", locationHandler.CreateCity)
			r.Put("/{id}", locationHandler.UpdateCity)
			r.Delete("/{id}", locationHandler.DeleteCity)
		})
	})
}
