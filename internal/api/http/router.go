package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Tickets        *handlers.TicketsHandler
	Feedback       *handlers.FeedbackHandler
	Admin          *handlers.AdminHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Get("/profile", cfg.Profile.Get)
	protected.Put("/profile", cfg.Profile.Update)

	protected.Post("/tickets", cfg.Tickets.Create)
	protected.Get("/tickets", cfg.Tickets.List)
	protected.Get("/tickets/counts", cfg.Tickets.Counts)
	protected.Get("/tickets/:id", cfg.Tickets.Get)

	protected.Post("/feedback", cfg.Feedback.Create)
	protected.Get("/feedback", cfg.Feedback.List)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/export", cfg.Admin.Export)
	admin.Get("/users", cfg.Admin.Users)
	admin.Get("/tickets", cfg.Admin.Tickets)
	admin.Patch("/tickets/:id/status", cfg.Admin.UpdateTicketStatus)
	admin.Delete("/tickets/:id", cfg.Admin.DeleteTicket)
	admin.Get("/feedback", cfg.Admin.Feedback)
	admin.Delete("/feedback/:id", cfg.Admin.DeleteFeedback)
	admin.Get("/identities", cfg.Admin.Identities)
	admin.Get("/metrics", cfg.Metrics.Get)
}
