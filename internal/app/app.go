// Package app wires the services of the intranet together.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/content"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/events"
	"github.com/lactec/intranet/internal/observability"
	"github.com/lactec/intranet/internal/service"
	"github.com/lactec/intranet/internal/subscribers"
	"github.com/lactec/intranet/internal/upgrades"
)

// App holds the wired services.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Stores     *Stores
	Metrics    *observability.Metrics
	Dispatcher events.Dispatcher
	Catalog    *catalog.Catalog
	Content    *service.ContentService
	Groups     *service.GroupService
	Auth       *service.AuthService
	Upgrades   *upgrades.Runner
}

// New wires services over stores and registers the event subscribers and
// upgrade steps.
func New(cfg *config.Config, logger *zap.Logger, stores *Stores) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	types, err := content.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("load content types: %w", err)
	}

	dispatcher := events.NewInMemoryDispatcher()
	cat := catalog.New(stores.Catalog, logger.Named("catalog"))

	groups := service.NewGroupService(service.GroupDependencies{
		GroupRepo:     stores.Groups,
		LocalRoleRepo: stores.LocalRoles,
		Logger:        logger.Named("groups"),
	})
	contents := service.NewContentService(service.ContentDependencies{
		ContentRepo: stores.Contents,
		Catalog:     cat,
		Types:       types,
		Roles:       groups,
		Dispatcher:  dispatcher,
		PortalURL:   cfg.App.PortalURL,
		Logger:      logger.Named("content"),
	})
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: stores.Users,
		Groups:   groups,
		Logger:   logger.Named("auth"),
	})

	subscribers.NewAreaSubscriber(groups, contents, logger.Named("subscribers")).Register(dispatcher)

	registry := upgrades.NewRegistry()
	reindexer := upgrades.NewPessoaReindexer(contents, cat, logger.Named("upgrades"))
	if err := upgrades.RegisterDefaults(registry, reindexer); err != nil {
		return nil, err
	}

	return &App{
		Config:     cfg,
		Logger:     logger,
		Stores:     stores,
		Metrics:    observability.NewMetrics(),
		Dispatcher: dispatcher,
		Catalog:    cat,
		Content:    contents,
		Groups:     groups,
		Auth:       authService,
		Upgrades:   upgrades.NewRunner(registry, stores.Versions, logger.Named("upgrades")),
	}, nil
}

// Start provisions the admin account and rebuilds an in-memory catalog.
func (a *App) Start(ctx context.Context) error {
	if a.Config.Auth.AdminPassword != "" {
		if _, err := a.Auth.EnsureUser(ctx, service.CreateUserInput{
			Username: a.Config.Auth.AdminUsername,
			Password: a.Config.Auth.AdminPassword,
			Roles:    []domain.Role{domain.RoleManager},
		}); err != nil {
			return fmt.Errorf("provision admin: %w", err)
		}
	}
	if a.Stores.CatalogInMemory {
		if err := a.Content.RebuildCatalog(ctx); err != nil {
			return fmt.Errorf("rebuild catalog: %w", err)
		}
	}
	return nil
}
