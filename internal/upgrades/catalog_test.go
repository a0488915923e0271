package upgrades_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/service"
	"github.com/lactec/intranet/internal/testenv"
	"github.com/lactec/intranet/internal/upgrades"
)

func TestPessoaReindex_RefreshesAreaAndCargoOnly(t *testing.T) {
	ctx := context.Background()
	env := testenv.New(t)
	area := env.CreateArea(t, testenv.AreaInput())
	rh := env.CreateArea(t, service.CreateInput{PortalType: domain.TypeArea, ID: "rh", Title: "RH", Description: "x"})

	var pessoas []*domain.Content
	for i := 1; i <= 3; i++ {
		pessoas = append(pessoas, env.CreatePessoa(t, fmt.Sprintf("Pessoa %d", i), area.UID, "Analista"))
	}

	// change the stored items behind the catalog's back
	for _, p := range pessoas {
		stale := p.Clone()
		stale.Title = "Renamed " + p.Title
		stale.SetField(domain.FieldCargo, "Gerente")
		stale.SetField(domain.FieldArea, rh.UID)
		require.NoError(t, env.Stores.Contents.Update(ctx, stale))
	}
	env.Logs.TakeAll()

	step, ok := env.Upgrades.Registry().Get("reindexa-pessoa")
	require.True(t, ok)
	require.NoError(t, step.Handler(ctx))

	for _, p := range pessoas {
		data, err := env.Catalog.IndexData(ctx, p.UID)
		require.NoError(t, err)
		assert.Equal(t, "Gerente", data[catalog.IndexCargo])
		assert.Equal(t, rh.UID, data[catalog.IndexArea])
		assert.Equal(t, p.Title, data[catalog.IndexTitle], "other indexes keep their old values")
	}

	moved, err := env.Catalog.Search(ctx, catalog.Query{catalog.IndexArea: rh.UID})
	require.NoError(t, err)
	assert.Len(t, moved, 3)
	stale, err := env.Catalog.Search(ctx, catalog.Query{catalog.IndexArea: area.UID})
	require.NoError(t, err)
	assert.Empty(t, stale)

	assert.Equal(t, 1, env.Logs.FilterMessage("reindex complete").Len())
	progress := env.Logs.FilterMessageSnippet("reindexed area and cargo of").All()
	require.Len(t, progress, 3)
	for i, entry := range progress {
		assert.Contains(t, entry.Message, fmt.Sprintf("- %03d: ", i+1))
		assert.Contains(t, entry.Message, testenv.PortalURL+"/pessoa-")
	}
}

func TestPessoaReindex_NoItems(t *testing.T) {
	env := testenv.New(t)
	env.CreateArea(t, testenv.AreaInput())
	env.Logs.TakeAll()

	result, err := env.Upgrades.Run(context.Background(), upgrades.DefaultProfile)
	require.NoError(t, err)
	assert.Equal(t, []string{"reindexa-pessoa"}, result.Applied)
	assert.Equal(t, "1001", result.To)

	assert.Zero(t, env.Logs.FilterMessageSnippet("reindexed area and cargo").Len())
	complete := env.Logs.FilterMessage("reindex complete").All()
	require.Len(t, complete, 1)
	assert.Equal(t, int64(0), complete[0].ContextMap()["objects"])
}

type finderMock struct {
	mock.Mock
}

func (m *finderMock) Find(ctx context.Context, q catalog.Query) ([]catalog.Brain, error) {
	args := m.Called(ctx, q)
	brains, _ := args.Get(0).([]catalog.Brain)
	return brains, args.Error(1)
}

func (m *finderMock) Get(ctx context.Context, uid string) (*domain.Content, error) {
	args := m.Called(ctx, uid)
	obj, _ := args.Get(0).(*domain.Content)
	return obj, args.Error(1)
}

func (m *finderMock) AbsoluteURL(obj *domain.Content) string {
	return "http://intranet.test/plone" + obj.Path()
}

type reindexerMock struct {
	mock.Mock
}

func (m *reindexerMock) Reindex(ctx context.Context, obj *domain.Content, idxs ...string) error {
	args := m.Called(ctx, obj.UID, idxs)
	return args.Error(0)
}

func TestPessoaReindex_FailureAbortsRun(t *testing.T) {
	tests := []struct {
		name  string
		setup func(finder *finderMock, reindexer *reindexerMock, boom error)
	}{
		{
			name: "load fails",
			setup: func(finder *finderMock, reindexer *reindexerMock, boom error) {
				finder.On("Get", mock.Anything, "p2").Return(nil, boom)
				reindexer.On("Reindex", mock.Anything, "p1", mock.Anything).Return(nil)
			},
		},
		{
			name: "reindex fails",
			setup: func(finder *finderMock, reindexer *reindexerMock, boom error) {
				finder.On("Get", mock.Anything, "p2").Return(&domain.Content{UID: "p2", ID: "bruno"}, nil)
				reindexer.On("Reindex", mock.Anything, "p1", mock.Anything).Return(nil)
				reindexer.On("Reindex", mock.Anything, "p2", mock.Anything).Return(boom)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			boom := errors.New("boom")
			finder := &finderMock{}
			reindexer := &reindexerMock{}
			finder.On("Find", ctx, catalog.Query{catalog.IndexPortalType: domain.TypePessoa}).Return([]catalog.Brain{
				{UID: "p1"}, {UID: "p2"}, {UID: "p3"},
			}, nil)
			finder.On("Get", mock.Anything, "p1").Return(&domain.Content{UID: "p1", ID: "ana"}, nil)
			tc.setup(finder, reindexer, boom)

			core, logs := observer.New(zapcore.InfoLevel)
			err := upgrades.NewPessoaReindexer(finder, reindexer, zap.New(core)).Run(ctx)
			require.ErrorIs(t, err, boom)

			assert.Equal(t, 1, logs.FilterMessageSnippet("reindexed area and cargo of").Len())
			assert.Zero(t, logs.FilterMessage("reindex complete").Len())
			finder.AssertNotCalled(t, "Get", mock.Anything, "p3")
			reindexer.AssertCalled(t, "Reindex", mock.Anything, "p1", []string{catalog.IndexArea, catalog.IndexCargo})
		})
	}
}
