package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface, the authenticated admin surface, and
// the admin-only user-management surface, each behind its guards.
func setupRoutes(r chi.Router, handlers *routeHandlers, guards authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(guards.withSession)

		r.Get("/", handlers.siteHandler.index())
		r.Get("/login", handlers.siteHandler.loginForm())
		r.Post("/login", handlers.siteHandler.login())
		r.Get("/logout", handlers.siteHandler.logout())
		r.Get("/proyecto/{projectID}", handlers.siteHandler.projectDetail())
		r.Get("/image/{projectID}", handlers.siteHandler.serveImage())
		r.Post("/contact", handlers.siteHandler.contact())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(guards.requireLogin)

		r.Get("/admin", handlers.projectHandler.dashboard())
		r.Get("/admin/project/new", handlers.projectHandler.newProjectForm())
		r.Post("/admin/project/new", handlers.projectHandler.createProject())
		r.Get("/admin/project/{projectID}/edit", handlers.projectHandler.editProjectForm())
		r.Post("/admin/project/{projectID}/edit", handlers.projectHandler.updateProject())
		r.Post("/admin/project/{projectID}/delete", handlers.projectHandler.deleteProject())
		r.Post("/admin/recurso/{mediaID}/delete", handlers.projectHandler.deleteMedia())
	})

	// Admin-only routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(guards.requireLogin, guards.requireAdmin)

		r.Get("/admin/user/new", handlers.userHandler.newUserForm())
		r.Post("/admin/user/new", handlers.userHandler.createUser())
		r.Get("/admin/user/{userID}/edit", handlers.userHandler.editUserForm())
		r.Post("/admin/user/{userID}/edit", handlers.userHandler.updateUser())
		r.Post("/admin/user/{userID}/delete", handlers.userHandler.deleteUser())
	})
}
