package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lactec/intranet/internal/api/http/handlers"
	"github.com/lactec/intranet/internal/app"
	"github.com/lactec/intranet/internal/auth"
)

// NewServer builds the fiber application serving a wired App.
func NewServer(a *app.App) *fiber.App {
	server := fiber.New(fiber.Config{
		AppName:               a.Config.App.Name,
		DisableStartupMessage: true,
		// params and query values outlive the request in stores and events
		Immutable:             true,
	})
	RegisterMiddlewares(server, a.Logger.Named("http"), a.Metrics, a.Config.App.RequestTimeout())

	RegisterRoutes(server, RouteConfig{
		Health:         handlers.NewHealthHandler(a.Config.App.Name, a.Config.App.Version, a.Stores.Postgres, a.Stores.Redis),
		Auth:           handlers.NewAuthHandler(a.Auth),
		Content:        handlers.NewContentHandler(a.Content),
		Groups:         handlers.NewGroupsHandler(a.Groups),
		Upgrades:       handlers.NewUpgradesHandler(a.Upgrades),
		AuthMiddleware: auth.NewAuthMiddleware(a.Auth.TokenManager(), a.Auth),
	})
	return server
}
