package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/domain"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

func pessoa(uid, id, area, cargo string) *domain.Content {
	obj := &domain.Content{UID: uid, ID: id, PortalType: domain.TypePessoa, Title: id}
	obj.SetField(domain.FieldArea, area)
	obj.SetField(domain.FieldCargo, cargo)
	return obj
}

func TestCatalog_IndexAndSearch(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New(catalog.NewMemoryStore(), nil)

	require.NoError(t, cat.Index(ctx, pessoa("p2", "bruno", "a1", "Analista")))
	require.NoError(t, cat.Index(ctx, pessoa("p1", "ana", "a1", "Gerente")))
	require.NoError(t, cat.Index(ctx, &domain.Content{UID: "a1", ID: "ti", PortalType: domain.TypeArea, Title: "TI"}))

	brains, err := cat.Search(ctx, catalog.Query{catalog.IndexPortalType: domain.TypePessoa})
	require.NoError(t, err)
	require.Len(t, brains, 2)
	assert.Equal(t, "/ana", brains[0].Path)
	assert.Equal(t, "/bruno", brains[1].Path)

	brains, err = cat.Search(ctx, catalog.Query{catalog.IndexArea: "a1", catalog.IndexCargo: "Gerente"})
	require.NoError(t, err)
	require.Len(t, brains, 1)
	assert.Equal(t, "p1", brains[0].UID)

	all, err := cat.Search(ctx, catalog.Query{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestCatalog_ReindexOnlyNamedIndexes(t *testing.T) {
	ctx := context.Background()
	store := catalog.NewMemoryStore()
	cat := catalog.New(store, nil)

	obj := pessoa("p1", "ana", "a1", "Analista")
	require.NoError(t, cat.Index(ctx, obj))

	obj.Title = "Ana Souza"
	obj.SetField(domain.FieldCargo, "Gerente")
	obj.SetField(domain.FieldArea, "")
	require.NoError(t, cat.Reindex(ctx, obj, catalog.IndexArea, catalog.IndexCargo))

	data, err := cat.IndexData(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Gerente", data[catalog.IndexCargo])
	assert.NotContains(t, data, catalog.IndexArea)
	assert.Equal(t, "ana", data[catalog.IndexTitle], "title is not part of the reindex")

	assert.Empty(t, store.Postings(catalog.IndexCargo, "Analista"))
	assert.Equal(t, []string{"p1"}, store.Postings(catalog.IndexCargo, "Gerente"))
	assert.Empty(t, store.Postings(catalog.IndexArea, "a1"))

	brains, err := cat.Search(ctx, catalog.Query{catalog.IndexCargo: "Analista"})
	require.NoError(t, err)
	assert.Empty(t, brains, "search answers from the current postings")
}

func TestCatalog_UnknownIndex(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New(catalog.NewMemoryStore(), nil)

	err := cat.Reindex(ctx, pessoa("p1", "ana", "a1", "x"), "salary")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	_, err = cat.Search(ctx, catalog.Query{"salary": "1"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestCatalog_UnindexAndRebuild(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New(catalog.NewMemoryStore(), nil)
	require.NoError(t, cat.Index(ctx, pessoa("p1", "ana", "a1", "x")))
	require.NoError(t, cat.Unindex(ctx, "p1"))

	brains, err := cat.Search(ctx, catalog.Query{catalog.IndexPortalType: domain.TypePessoa})
	require.NoError(t, err)
	assert.Empty(t, brains)

	require.NoError(t, cat.Rebuild(ctx, []domain.Content{*pessoa("p2", "bia", "a1", "y"), *pessoa("p3", "caio", "a2", "y")}))
	brains, err = cat.Search(ctx, catalog.Query{catalog.IndexCargo: "y"})
	require.NoError(t, err)
	assert.Len(t, brains, 2)
}

func TestIndexNames(t *testing.T) {
	names := catalog.IndexNames()
	assert.Contains(t, names, catalog.IndexArea)
	assert.Contains(t, names, catalog.IndexCargo)
	assert.True(t, catalog.HasIndex(catalog.IndexExcludeFromNav))
	assert.False(t, catalog.HasIndex("salary"))
}
