package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/repository/memory"
	"github.com/lactec/intranet/internal/service"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

func newAuthService() (*service.AuthService, *service.GroupService) {
	groups := newGroupService()
	auth := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "secret",
		AccessTokenTTLMinutes: 5,
		BcryptCost:            bcrypt.MinCost,
	}, service.AuthDependencies{
		UserRepo: memory.NewUserRepository(),
		Groups:   groups,
	})
	return auth, groups
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	user, err := svc.CreateUser(ctx, service.CreateUserInput{
		Username: "gestor",
		Password: "s3nha",
		Roles:    []domain.Role{domain.RoleSiteAdministrator},
	})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "gestor", "wrong")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	_, _, _, err = svc.Login(ctx, "nobody", "s3nha")
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))

	logged, token, exp, err := svc.Login(ctx, "gestor", "s3nha")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.False(t, exp.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.Subject)
}

func TestAuthService_CreateUserValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	_, err := svc.CreateUser(ctx, service.CreateUserInput{Username: "x"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.CreateUser(ctx, service.CreateUserInput{Username: "x", Password: "p", Roles: []domain.Role{"Owner"}})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = svc.CreateUser(ctx, service.CreateUserInput{Username: "x", Password: "p"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, service.CreateUserInput{Username: "x", Password: "p"})
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestAuthService_EnsureUserIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()
	input := service.CreateUserInput{Username: "admin", Password: "p", Roles: []domain.Role{domain.RoleManager}}

	first, err := svc.EnsureUser(ctx, input)
	require.NoError(t, err)
	second, err := svc.EnsureUser(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestAuthService_ResolvePrincipal(t *testing.T) {
	ctx := context.Background()
	svc, groups := newAuthService()

	user, err := svc.CreateUser(ctx, service.CreateUserInput{Username: "ana", Password: "p"})
	require.NoError(t, err)
	_, err = groups.Create(ctx, service.CreateGroupInput{Name: "ti-editores"})
	require.NoError(t, err)
	require.NoError(t, groups.AddMember(ctx, "ti-editores", user.ID))

	principal, err := svc.ResolvePrincipal(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.True(t, principal.HasRole(domain.RoleAuthenticated))
	assert.False(t, principal.HasRole(domain.RoleManager))
	assert.Equal(t, []string{"ti-editores"}, principal.Groups)

	_, err = svc.ResolvePrincipal(ctx, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
