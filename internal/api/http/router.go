package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/api/http/handlers"
	"github.com/SamirYadav48/interactive-helpdesk-ticket-system/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Dispatch       *handlers.DispatchHandler
	Analytics      *handlers.AnalyticsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Reads are open; every mutation goes
// through the operator auth middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	v1 := app.Group("/api/v1")
	v1.Post("/auth/login", cfg.Auth.Login)

	v1.Get("/tickets", cfg.Tickets.ListTickets)
	v1.Get("/tickets/:id", cfg.Tickets.GetTicket)
	v1.Get("/tickets/:id/can-close", cfg.Tickets.CanClose)
	v1.Get("/tickets/:id/history", cfg.Tickets.History)
	v1.Get("/history/recent", cfg.Tickets.RecentHistory)
	v1.Get("/dispatch/queues", cfg.Dispatch.Queues)
	v1.Get("/analytics/dashboard", cfg.Analytics.Dashboard)

	protected := v1.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Post("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	protected.Post("/tickets/:id/priority", cfg.Tickets.UpdatePriority)
	protected.Post("/tickets/:id/assign", cfg.Tickets.Assign)
	protected.Post("/tickets/:id/dependencies", cfg.Tickets.AddDependency)
	protected.Post("/dispatch/next", cfg.Dispatch.Next)
	protected.Post("/undo", cfg.Dispatch.Undo)
	protected.Post("/admin/snapshot/save", cfg.Admin.SaveSnapshot)
	protected.Post("/admin/snapshot/load", cfg.Admin.LoadSnapshot)
	protected.Get("/admin/metrics", cfg.Admin.Metrics)
}
