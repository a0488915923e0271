package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lactec/intranet/internal/api/http/handlers"
	"github.com/lactec/intranet/internal/auth"
	"github.com/lactec/intranet/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Content        *handlers.ContentHandler
	Groups         *handlers.GroupsHandler
	Upgrades       *handlers.UpgradesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Guards are attached per route so
// unknown paths still answer 404.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	authenticated := func(chain ...fiber.Handler) []fiber.Handler {
		return append([]fiber.Handler{cfg.AuthMiddleware.Handle, auth.RequireRole()}, chain...)
	}
	siteAdmin := auth.RequireRole(domain.RoleManager, domain.RoleSiteAdministrator)
	manager := auth.RequireRole(domain.RoleManager)

	app.Post("/content", authenticated(cfg.Content.Create)...)
	app.Get("/content/:uid", authenticated(cfg.Content.Get)...)
	app.Patch("/content/:uid", authenticated(cfg.Content.Update)...)
	app.Get("/search", authenticated(cfg.Content.Search)...)
	app.Get("/types/:name", authenticated(cfg.Content.GetType)...)

	app.Get("/groups/:id", authenticated(cfg.Groups.Get)...)
	app.Get("/groups/:id/roles", authenticated(cfg.Groups.Roles)...)
	app.Post("/groups/:id/members", authenticated(siteAdmin, cfg.Groups.AddMember)...)

	app.Get("/upgrades", authenticated(manager, cfg.Upgrades.List)...)
	app.Post("/upgrades/steps/:id/run", authenticated(manager, cfg.Upgrades.RunStep)...)
	app.Post("/upgrades/:profile/run", authenticated(manager, cfg.Upgrades.RunProfile)...)
}
