package upgrades

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/catalog"
	"github.com/lactec/intranet/internal/domain"
)

// ContentFinder searches and loads content items.
type ContentFinder interface {
	Find(ctx context.Context, q catalog.Query) ([]catalog.Brain, error)
	Get(ctx context.Context, uid string) (*domain.Content, error)
	AbsoluteURL(obj *domain.Content) string
}

// Reindexer recomputes selected catalog indexes of an item.
type Reindexer interface {
	Reindex(ctx context.Context, obj *domain.Content, idxs ...string) error
}

// PessoaReindexer refreshes the area and cargo indexes of every Pessoa.
type PessoaReindexer struct {
	content ContentFinder
	catalog Reindexer
	logger  *zap.Logger
}

// NewPessoaReindexer builds the step.
func NewPessoaReindexer(content ContentFinder, catalog Reindexer, logger *zap.Logger) *PessoaReindexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PessoaReindexer{content: content, catalog: catalog, logger: logger}
}

// Run reindexes area and cargo of every Pessoa. The first failure aborts the run.
func (r *PessoaReindexer) Run(ctx context.Context) error {
	brains, err := r.content.Find(ctx, catalog.Query{catalog.IndexPortalType: domain.TypePessoa})
	if err != nil {
		return err
	}
	for idx, brain := range brains {
		pessoa, err := r.content.Get(ctx, brain.UID)
		if err != nil {
			return err
		}
		if err := r.catalog.Reindex(ctx, pessoa, catalog.IndexArea, catalog.IndexCargo); err != nil {
			return err
		}
		r.logger.Info(fmt.Sprintf("- %03d: reindexed area and cargo of %s", idx+1, r.content.AbsoluteURL(pessoa)))
	}
	r.logger.Info("reindex complete", zap.Int("objects", len(brains)))
	return nil
}
