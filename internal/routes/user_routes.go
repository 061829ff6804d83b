package routes

import (
	"github.com/go-chi/chi/v5"

	"classifieds/internal/handlers"
	"classifieds/internal/repository"
)

func RegisterUserRoutes(router chi.Router, deps Deps) {
	userRepo := repository.NewUserRepository(deps.DB)
	userHandler := handlers.NewUserHandler(deps.Base, userRepo)

	router.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Post("/login", userHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth)
			r.Get("/", userHandler.ListUsers)
			r.Get("/{id}", userHandler.GetUser)
			r.Put("/{id}", userHandler.UpdateUser)
			r.Delete("/{id}", userHandler.DeleteUser)
		})
	})
}

func RegisterPostRoutes(router chi.Router, deps Deps) {
	postHandler := handlers.NewPostHandler(
		deps.Base,
		repository.NewPostRepository(deps.DB),
		repository.NewUserRepository(deps.DB),
	)

	router.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.ListPosts)
		r.Get("/{id}", postHandler.GetPost)

		r.Group(func(r chi.Router) {
			r.Use(deps.Auth)
			r.Post("/", postHandler.CreatePost)
			r.Put("/{id}", postHandler.UpdatePost)
			r.Delete("/{id}", postHandler.DeletePost)
		})
	})
}
