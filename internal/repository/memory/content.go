// Package memory holds in-process repository implementations used when no
// Postgres DSN is configured, and as test fixtures.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/repository"
)

// ContentRepository stores content items in memory.
type ContentRepository struct {
	mu     sync.RWMutex
	byUID  map[string]*domain.Content
	byPath map[string]string
}

var _ repository.ContentRepository = (*ContentRepository)(nil)

// NewContentRepository returns an empty repository.
func NewContentRepository() *ContentRepository {
	return &ContentRepository{
		byUID:  make(map[string]*domain.Content),
		byPath: make(map[string]string),
	}
}

func (r *ContentRepository) Create(_ context.Context, obj *domain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUID[obj.UID]; exists {
		return repository.ErrConflict
	}
	if _, exists := r.byPath[obj.Path()]; exists {
		return repository.ErrConflict
	}
	now := time.Now().UTC()
	obj.CreatedAt = now
	obj.ModifiedAt = now
	r.byUID[obj.UID] = obj.Clone()
	r.byPath[obj.Path()] = obj.UID
	return nil
}

func (r *ContentRepository) Update(_ context.Context, obj *domain.Content) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byUID[obj.UID]
	if !ok {
		return repository.ErrNotFound
	}
	obj.ModifiedAt = time.Now().UTC()
	updated := stored.Clone()
	updated.Title = obj.Title
	updated.Description = obj.Description
	updated.ExcludeFromNav = obj.ExcludeFromNav
	updated.Fields = obj.Clone().Fields
	updated.ModifiedAt = obj.ModifiedAt
	r.byUID[obj.UID] = updated
	return nil
}

func (r *ContentRepository) GetByUID(_ context.Context, uid string) (*domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.byUID[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return obj.Clone(), nil
}

func (r *ContentRepository) GetByPath(_ context.Context, path string) (*domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	uid, ok := r.byPath[path]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.byUID[uid].Clone(), nil
}

func (r *ContentRepository) ChildIDs(_ context.Context, parentPath string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for _, obj := range r.byUID {
		if obj.ParentPath == parentPath {
			ids = append(ids, obj.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ContentRepository) List(_ context.Context) ([]domain.Content, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.Content, 0, len(r.byUID))
	for _, obj := range r.byUID {
		result = append(result, *obj.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path() < result[j].Path() })
	return result, nil
}
