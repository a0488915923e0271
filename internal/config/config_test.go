package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "")
	t.Setenv("PORTAL_URL", "")
	t.Setenv("POSTGRES_DSN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CatalogBackendRedis, cfg.Catalog.Backend)
	assert.Equal(t, "http://localhost:8080/plone", cfg.App.PortalURL)
	assert.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeout())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "MEMORY")
	t.Setenv("PORTAL_URL", "https://intranet.lactec.com.br/")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_MAX_CONNS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CatalogBackendMemory, cfg.Catalog.Backend)
	assert.Equal(t, "https://intranet.lactec.com.br", cfg.App.PortalURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoad_RejectsUnknownCatalogBackend(t *testing.T) {
	t.Setenv("CATALOG_BACKEND", "solr")

	_, err := Load()
	require.Error(t, err)
}
