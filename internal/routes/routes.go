package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workday-admin/internal/handlers"
	"workday-admin/internal/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handler, store *session.Store) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public routes
	app.Get("/login", h.ShowLogin)
	app.Post("/login", h.Login)
	app.Get("/logout", h.Logout)

	// Protected routes – every page needs a session with an API token
	authGroup := app.Group("/", middleware.RequireSession(store))
	authGroup.Get("/", h.Dashboard)
	authGroup.Get("/export", h.Export)
	authGroup.Get("/users", h.UsersPage)
	authGroup.Post("/users", h.CreateUser)
	authGroup.Post("/users/:id/delete", h.DeleteUser)
}
