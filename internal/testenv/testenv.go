// Package testenv builds a fully wired application over in-memory stores
// for tests.
package testenv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"

	"github.com/lactec/intranet/internal/app"
	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/service"
)

// PortalURL is the portal root used by test environments.
const PortalURL = "http://intranet.test/plone"

// Env is a wired application plus the captured logs.
type Env struct {
	*app.App
	Logs *observer.ObservedLogs
}

// New builds an environment over fresh in-memory stores.
func New(t testing.TB) *Env {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.Config{
		App:  config.AppConfig{Name: "intranet-test", PortalURL: PortalURL},
		Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 5, BcryptCost: bcrypt.MinCost},
	}
	a, err := app.New(cfg, zap.New(core), app.MemoryStores())
	require.NoError(t, err)
	require.NoError(t, a.Start(context.Background()))
	return &Env{App: a, Logs: logs}
}

// As returns a principal holding the given global roles.
func As(roles ...domain.Role) *domain.Principal {
	return &domain.Principal{ID: "test-user", Roles: roles}
}

// Manager is a principal with the Manager role.
func Manager() *domain.Principal {
	return As(domain.RoleManager)
}

// AreaInput returns the payload of the TI area.
func AreaInput() service.CreateInput {
	return service.CreateInput{
		PortalType:  domain.TypeArea,
		ID:          "ti",
		Title:       "Tecnologia da Informação",
		Description: "Área responsável por TI",
		Fields: map[string]string{
			domain.FieldEmail:    "ti@lactec.com.br",
			domain.FieldTelefone: "(61) 3210.1234",
		},
	}
}

// CreateArea creates an Area as Manager.
func (e *Env) CreateArea(t testing.TB, input service.CreateInput) *domain.Content {
	t.Helper()
	area, err := e.Content.Create(context.Background(), Manager(), input)
	require.NoError(t, err)
	return area
}

// CreatePessoa creates a Pessoa as Manager.
func (e *Env) CreatePessoa(t testing.TB, title, areaUID, cargo string) *domain.Content {
	t.Helper()
	pessoa, err := e.Content.Create(context.Background(), Manager(), service.CreateInput{
		PortalType: domain.TypePessoa,
		Title:      title,
		Fields: map[string]string{
			domain.FieldArea:  areaUID,
			domain.FieldCargo: cargo,
		},
	})
	require.NoError(t, err)
	return pessoa
}
