package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"aromateca/internal/handlers"
)

func newRouter(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", handlers.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/logout", handlers.Logout)

		r.Get("/oils", handlers.ListOils)
		r.Get("/oils/{id}", handlers.GetOil)
		r.Get("/oils/export", handlers.ExportOils)

		r.Get("/recipes", handlers.ListRecipes)
		r.Get("/recipes/{id}", handlers.GetRecipe)
		r.Get("/recipes/export", handlers.ExportRecipes)

		r.Post("/blend", handlers.ComputeBlend)

		r.Group(func(r chi.Router) {
			r.Use(handlers.RequireAdmin)

			r.Post("/oils", handlers.CreateOil)
			r.Put("/oils/{id}", handlers.UpdateOil)
			r.Delete("/oils/{id}", handlers.DeleteOil)
			r.Post("/oils/import", handlers.ImportOils)

			r.Post("/recipes", handlers.CreateRecipe)
			r.Put("/recipes/{id}", handlers.UpdateRecipe)
			r.Delete("/recipes/{id}", handlers.DeleteRecipe)
			r.Post("/recipes/import", handlers.ImportRecipes)
		})
	})

	return r
}
