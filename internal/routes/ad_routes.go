package routes

import (
	"github.com/go-chi/chi/v5"

	"classifieds/internal/handlers"
	"classifieds/internal/repository"
)

func RegisterAdRoutes(router chi.Router, deps Deps) {
	adRepo := repository.NewAdRepository(deps.DB)
	mediaRepo := repository.NewAdMediaRepository(deps.DB)
	campaignRepo := repository.NewCampaignRepository(deps.DB)

	adHandler := handlers.NewAdHandler(deps.Base, adRepo, mediaRepo, campaignRepo, deps.Store)
	mediaHandler := handlers.NewAdMediaHandler(deps.Base, adRepo, mediaRepo, deps.Store)

	router.Route("/ads", func(r chi.Router) {
		r.Get("/", adHandler.ListAds)
		r.Get("/{id}", adHandler.GetAd)
		r.Get("/{id}/media", mediaHandler.ListMedia)
		r.Post("/{id}/like", adHandler.LikeAd)
		r.Post("/{id}/view", adHandler.ViewAd)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth)
			r.Post("/", adHandler.CreateAd)
			r.Put("/{id}", adHandler.UpdateAd)
			r.Delete("/{id}", adHandler.DeleteAd)

			r.Post("/{id}/upload", mediaHandler.UploadMedia)
			r.Put("/{id}/media/order", mediaHandler.ReorderMedia)
			r.Put("/{id}/media/{mediaID}/main", mediaHandler.SetMainMedia)
			r.Patch("/{id}/media/{mediaID}", mediaHandler.UpdateMedia)
			r.Delete("/{id}/media/{mediaID}", mediaHandler.DeleteMedia)
		})
	})
}
