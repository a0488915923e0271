package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/persistence"
	"github.com/lactec/intranet/internal/repository"
	"github.com/lactec/intranet/internal/repository/memory"
)

// Stores bundles the persistence backends of the application.
type Stores struct {
	Contents   repository.ContentRepository
	Groups     repository.GroupRepository
	LocalRoles repository.LocalRoleRepository
	Users      repository.UserRepository
	Versions   repository.ProfileVersionRepository
	Catalog    catalog.Store

	// CatalogInMemory marks a catalog that must be rebuilt on start.
	CatalogInMemory bool

	Postgres *persistence.Postgres
	Redis    *persistence.Redis
}

// MemoryStores returns in-process stores.
func MemoryStores() *Stores {
	return &Stores{
		Contents:        memory.NewContentRepository(),
		Groups:          memory.NewGroupRepository(),
		LocalRoles:      memory.NewLocalRoleRepository(),
		Users:           memory.NewUserRepository(),
		Versions:        memory.NewProfileVersionRepository(),
		Catalog:         catalog.NewMemoryStore(),
		CatalogInMemory: true,
	}
}

// OpenStores connects the backends selected by cfg. Without a Postgres DSN
// the repositories live in memory.
func OpenStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Stores, error) {
	stores := MemoryStores()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	stores.Postgres = pg
	if pg.Enabled() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		pool := pg.PoolHandle()
		stores.Contents = repository.NewContentRepository(pool)
		stores.Groups = repository.NewGroupRepository(pool)
		stores.LocalRoles = repository.NewLocalRoleRepository(pool)
		stores.Users = repository.NewUserRepository(pool)
		stores.Versions = repository.NewProfileVersionRepository(pool)
	} else {
		logger.Warn("using in-memory repositories; content is lost on restart")
	}

	if cfg.Catalog.Backend == config.CatalogBackendRedis {
		stores.Redis = persistence.NewRedis(ctx, cfg.Redis, logger)
		stores.Catalog = catalog.NewRedisStore(stores.Redis.Client, cfg.Catalog.KeyPrefix)
		stores.CatalogInMemory = false
	}
	return stores, nil
}

// Close releases backend connections.
func (s *Stores) Close() {
	s.Redis.Close()
	s.Postgres.Close()
}
