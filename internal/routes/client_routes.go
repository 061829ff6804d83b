package routes

import (
	"github.com/go-chi/chi/v5"

	"classifieds/internal/handlers"
	"classifieds/internal/repository"
)

// Clients and campaigns are office-only resources.
func RegisterClientRoutes(router chi.Router, deps Deps) {
	clientHandler := handlers.NewClientHandler(
		deps.Base,
		repository.NewClientRepository(deps.DB),
		repository.NewCampaignRepository(deps.DB),
	)

	router.Route("/clients", func(r chi.Router) {
		r.Use(deps.Auth)
		r.Get("/", clientHandler.ListClients)
		r.Post("/", clientHandler.CreateClient)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", clientHandler.GetClient)
			r.Put("/", clientHandler.UpdateClient)
			r.Delete("/", clientHandler.DeleteClient)
			r.Get("/campaigns", clientHandler.ListClientCampaigns)
		})
	})
}

func RegisterCampaignRoutes(router chi.Router, deps Deps) {
	campaignHandler := handlers.NewCampaignHandler(
		deps.Base,
		repository.NewCampaignRepository(deps.DB),
		repository.NewClientRepository(deps.DB),
		repository.NewAdRepository(deps.DB),
	)

	router.Route("/campaigns", func(r chi.Router) {
		r.Use(deps.Auth)
		r.Get("/", campaignHandler.ListCampaigns)
		r.Post("/", campaignHandler.CreateCampaign)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", campaignHandler.GetCampaign)
			r.Put("/", campaignHandler.UpdateCampaign)
			r.Delete("/", campaignHandler.DeleteCampaign)
			r.Get("/ads", campaignHandler.ListCampaignAds)
		})
	})
}
