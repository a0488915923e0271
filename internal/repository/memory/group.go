package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/repository"
)

// GroupRepository stores groups and memberships in memory.
type GroupRepository struct {
	mu      sync.RWMutex
	groups  map[string]domain.Group
	members map[string]map[string]struct{}
}

var _ repository.GroupRepository = (*GroupRepository)(nil)

// NewGroupRepository returns an empty repository.
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{
		groups:  make(map[string]domain.Group),
		members: make(map[string]map[string]struct{}),
	}
}

func (r *GroupRepository) Create(_ context.Context, group *domain.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.groups[group.ID]; exists {
		return repository.ErrConflict
	}
	group.CreatedAt = time.Now().UTC()
	r.groups[group.ID] = *group
	return nil
}

func (r *GroupRepository) GetByID(_ context.Context, id string) (*domain.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	group, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &group, nil
}

func (r *GroupRepository) AddMember(_ context.Context, groupID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.groups[groupID]; !ok {
		return repository.ErrNotFound
	}
	set, ok := r.members[userID]
	if !ok {
		set = make(map[string]struct{})
		r.members[userID] = set
	}
	set[groupID] = struct{}{}
	return nil
}

func (r *GroupRepository) ListForUser(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.members[userID]))
	for id := range r.members[userID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Count returns the number of stored groups.
func (r *GroupRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}
