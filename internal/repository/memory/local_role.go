package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lactec/intranet/internal/domain"
	"github.com/lactec/intranet/internal/repository"
)

type localRoleKey struct {
	principalID string
	objectUID   string
}

// LocalRoleRepository stores local role grants in memory.
type LocalRoleRepository struct {
	mu     sync.RWMutex
	grants map[localRoleKey]map[domain.Role]struct{}
}

var _ repository.LocalRoleRepository = (*LocalRoleRepository)(nil)

// NewLocalRoleRepository returns an empty repository.
func NewLocalRoleRepository() *LocalRoleRepository {
	return &LocalRoleRepository{grants: make(map[localRoleKey]map[domain.Role]struct{})}
}

func (r *LocalRoleRepository) Grant(_ context.Context, principalID, objectUID string, roles []domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := localRoleKey{principalID: principalID, objectUID: objectUID}
	set, ok := r.grants[key]
	if !ok {
		set = make(map[domain.Role]struct{})
		r.grants[key] = set
	}
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return nil
}

func (r *LocalRoleRepository) ListRoles(_ context.Context, objectUID string, principalIDs ...string) ([]domain.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[domain.Role]struct{})
	for _, principalID := range principalIDs {
		for role := range r.grants[localRoleKey{principalID: principalID, objectUID: objectUID}] {
			seen[role] = struct{}{}
		}
	}
	roles := make([]domain.Role, 0, len(seen))
	for role := range seen {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles, nil
}
