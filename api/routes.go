package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public and bearer-gated endpoints. Reads are public;
// every write except the contact form submission requires a valid token.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.healthHandler.health())

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.authHandler.register())
			r.Post("/login", handlers.authHandler.login())
			r.With(authMiddleware.authenticate).Get("/verify", handlers.authHandler.verify())
		})

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.projectHandler.getAllProjects())
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/", handlers.projectHandler.createProject())
				r.Put("/{projectID}", handlers.projectHandler.updateProject())
				r.Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})
		})

		r.Route("/skills", func(r chi.Router) {
			r.Get("/categories", handlers.skillHandler.getAllCategories())
			r.Get("/", handlers.skillHandler.getAllSkills())
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Post("/categories", handlers.skillHandler.createCategory())
				r.Put("/categories/{categoryID}", handlers.skillHandler.updateCategory())
				r.Delete("/categories/{categoryID}", handlers.skillHandler.deleteCategory())
				r.Post("/", handlers.skillHandler.createSkill())
				r.Put("/{skillID}", handlers.skillHandler.updateSkill())
				r.Delete("/{skillID}", handlers.skillHandler.deleteSkill())
			})
		})

		r.Route("/contact", func(r chi.Router) {
			r.Post("/", handlers.contactHandler.createMessage())
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.authenticate)
				r.Get("/", handlers.contactHandler.getAllMessages())
				r.Put("/{messageID}/status", handlers.contactHandler.updateStatus())
				r.Delete("/{messageID}", handlers.contactHandler.deleteMessage())
			})
		})
	})
}
