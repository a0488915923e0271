// Package catalog maintains the search indexes of content items.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/lactec/intranet/internal/domain"
	apperrors "github.com/lactec/intranet/pkg/util/errorutil"
)

// Brain is a catalog search result: the indexed metadata of one item.
type Brain struct {
	UID        string `json:"uid"`
	PortalType string `json:"portal_type"`
	Path       string `json:"path"`
	Title      string `json:"title"`
}

// Query maps index names to the exact value searched for.
type Query map[string]string

// Catalog indexes content items into a Store.
type Catalog struct {
	store  Store
	logger *zap.Logger
}

// New creates a catalog over store.
func New(store Store, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{store: store, logger: logger}
}

// Index computes every index of obj.
func (c *Catalog) Index(ctx context.Context, obj *domain.Content) error {
	return c.Reindex(ctx, obj)
}

// Reindex recomputes only the named indexes of obj, or all of them when
// none are named. Other indexes keep their stored values.
func (c *Catalog) Reindex(ctx context.Context, obj *domain.Content, idxs ...string) error {
	names := idxs
	if len(names) == 0 {
		names = IndexNames()
	}
	set := make(map[string]string, len(names))
	var unset []string
	for _, name := range names {
		indexer, ok := indexers[name]
		if !ok {
			return apperrors.NewValidationError("unknown catalog index", map[string]any{"index": name})
		}
		if value, ok := indexer(obj); ok {
			set[name] = value
		} else {
			unset = append(unset, name)
		}
	}
	if err := c.store.Update(ctx, obj.UID, set, unset); err != nil {
		return fmt.Errorf("index %s: %w", obj.UID, err)
	}
	c.logger.Debug("cataloged object", zap.String("uid", obj.UID), zap.Strings("indexes", names))
	return nil
}

// Unindex removes uid from the catalog.
func (c *Catalog) Unindex(ctx context.Context, uid string) error {
	return c.store.Remove(ctx, uid)
}

// IndexData returns the values stored for uid.
func (c *Catalog) IndexData(ctx context.Context, uid string) (map[string]string, error) {
	return c.store.Values(ctx, uid)
}

// Search returns the brains matching every criterion of q, ordered by path.
func (c *Catalog) Search(ctx context.Context, q Query) ([]Brain, error) {
	for name := range q {
		if !HasIndex(name) {
			return nil, apperrors.NewValidationError("unknown catalog index", map[string]any{"index": name})
		}
	}
	uids, err := c.store.Match(ctx, q)
	if err != nil {
		return nil, err
	}
	brains := make([]Brain, 0, len(uids))
	for _, uid := range uids {
		values, err := c.store.Values(ctx, uid)
		if err != nil {
			return nil, err
		}
		brains = append(brains, Brain{
			UID:        uid,
			PortalType: values[IndexPortalType],
			Path:       values[IndexPath],
			Title:      values[IndexTitle],
		})
	}
	sort.Slice(brains, func(i, j int) bool { return brains[i].Path < brains[j].Path })
	return brains, nil
}

// Rebuild clears the catalog and indexes objs from scratch.
func (c *Catalog) Rebuild(ctx context.Context, objs []domain.Content) error {
	if err := c.store.Clear(ctx); err != nil {
		return err
	}
	for i := range objs {
		if err := c.Index(ctx, &objs[i]); err != nil {
			return err
		}
	}
	c.logger.Info("catalog rebuilt", zap.Int("objects", len(objs)))
	return nil
}
