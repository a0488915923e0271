package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/events"
	"github.com/lactec/intranet/internal/service"
	"github.com/lactec/intranet/internal/testenv"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

func TestCreateArea_RolePermissions(t *testing.T) {
	tests := []struct {
		name    string
		roles   []domain.Role
		allowed bool
	}{
		{name: "manager", roles: []domain.Role{domain.RoleManager}, allowed: true},
		{name: "site administrator", roles: []domain.Role{domain.RoleSiteAdministrator}, allowed: true},
		{name: "editor", roles: []domain.Role{domain.RoleEditor}},
		{name: "reviewer", roles: []domain.Role{domain.RoleReviewer}},
		{name: "contributor", roles: []domain.Role{domain.RoleContributor}},
		{name: "reader", roles: []domain.Role{domain.RoleReader}},
		{name: "anonymous"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			env := testenv.New(t)

			area, err := env.Content.Create(ctx, testenv.As(tc.roles...), testenv.AreaInput())
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, domain.TypeArea, area.PortalType)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
			assert.Contains(t, err.Error(), "Unauthorized")

			brains, err := env.Content.Find(ctx, catalog.Query{catalog.IndexPortalType: domain.TypeArea})
			require.NoError(t, err)
			assert.Empty(t, brains)
		})
	}
}

func TestCreate_UnknownType(t *testing.T) {
	env := testenv.New(t)
	_, err := env.Content.Create(context.Background(), testenv.Manager(), service.CreateInput{
		PortalType: "Document",
		Title:      "Doc",
	})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCreate_UnknownField(t *testing.T) {
	env := testenv.New(t)
	input := testenv.AreaInput()
	input.Fields["cargo"] = "Gerente"

	_, err := env.Content.Create(context.Background(), testenv.Manager(), input)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCreate_StoresFieldsAndPath(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)

	area := env.CreateArea(t, testenv.AreaInput())
	assert.Equal(t, "/ti", area.Path())
	assert.Equal(t, "test-user", area.Creator)
	assert.Equal(t, testenv.PortalURL+"/ti", env.Content.AbsoluteURL(area))

	stored, err := env.Content.Get(ctx, area.UID)
	require.NoError(t, err)
	assert.Equal(t, "ti@lactec.com.br", stored.Field(domain.FieldEmail))
	assert.Equal(t, "Área responsável por TI", stored.Description)
}

func TestCreate_IDs(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)
	env.CreateArea(t, testenv.AreaInput())

	_, err := env.Content.Create(ctx, testenv.Manager(), testenv.AreaInput())
	assert.True(t, apperrors.IsCode(err, "CONFLICT"), "explicit ids are not renamed")

	derived := testenv.AreaInput()
	derived.ID = ""
	first := env.CreateArea(t, derived)
	second := env.CreateArea(t, derived)
	assert.Equal(t, "tecnologia-da-informacao", first.ID)
	assert.Equal(t, "tecnologia-da-informacao-1", second.ID)
}

func TestCreate_InsideContainer(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)
	area := env.CreateArea(t, testenv.AreaInput())

	pessoa, err := env.Content.Create(ctx, testenv.Manager(), service.CreateInput{
		PortalType: domain.TypePessoa,
		Container:  "ti",
		Title:      "João da Silva",
		Fields:     map[string]string{domain.FieldArea: area.UID},
	})
	require.NoError(t, err)
	assert.Equal(t, "/ti/joao-da-silva", pessoa.Path())

	_, err = env.Content.Create(ctx, testenv.Manager(), service.CreateInput{
		PortalType: domain.TypePessoa,
		Container:  "/missing",
		Title:      "Maria",
	})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}

func TestCreate_HandlerFailureKeepsContent(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)
	boom := errors.New("boom")
	env.Dispatcher.Subscribe(events.EventObjectAdded, events.ForType(domain.TypeArea, func(context.Context, events.Event) error {
		return boom
	}))

	input := testenv.AreaInput()
	input.Description = ""
	_, err := env.Content.Create(ctx, testenv.Manager(), input)
	require.ErrorIs(t, err, boom)

	brains, err := env.Content.Find(ctx, catalog.Query{catalog.IndexPath: "/ti"})
	require.NoError(t, err)
	require.Len(t, brains, 1)

	stored, err := env.Content.Get(ctx, brains[0].UID)
	require.NoError(t, err)
	assert.True(t, stored.ExcludeFromNav, "earlier handler mutations persist")

	_, err = env.Groups.Get(ctx, domain.AreaEditorsGroupID(stored.UID))
	assert.NoError(t, err)
}

func TestUpdate_Permissions(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)
	area := env.CreateArea(t, testenv.AreaInput())
	title := "TI"

	_, err := env.Content.Update(ctx, testenv.As(domain.RoleEditor), area.UID, service.UpdateInput{Title: &title})
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"), "global Editor has no rights on the area")

	member := &domain.Principal{
		ID:     "editor-1",
		Roles:  []domain.Role{domain.RoleAuthenticated},
		Groups: []string{domain.AreaEditorsGroupID(area.UID)},
	}
	updated, err := env.Content.Update(ctx, member, area.UID, service.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "TI", updated.Title)

	updated, err = env.Content.Update(ctx, testenv.As(domain.RoleSiteAdministrator), area.UID, service.UpdateInput{
		Fields: map[string]string{domain.FieldTelefone: ""},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Field(domain.FieldTelefone))
}

func TestUpdate_ReportsChanges(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)
	area := env.CreateArea(t, testenv.AreaInput())

	var got []string
	env.Dispatcher.Subscribe(events.EventObjectModified, func(_ context.Context, event events.Event) error {
		got = event.Changes
		return nil
	})

	title := "TI"
	same := area.Description
	_, err := env.Content.Update(ctx, testenv.Manager(), area.UID, service.UpdateInput{
		Title:       &title,
		Description: &same,
		Fields:      map[string]string{domain.FieldCidade: "Curitiba", domain.FieldEmail: "ti@lactec.com.br"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"title", domain.FieldCidade}, got)

	brains, err := env.Content.Find(ctx, catalog.Query{catalog.IndexTitle: "TI"})
	require.NoError(t, err)
	assert.Len(t, brains, 1)
}

func TestGet_NotFound(t *testing.T) {
	env := testenv.New(t)
	_, err := env.Content.Get(context.Background(), "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
