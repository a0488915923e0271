package memory

import (
	"context"
	"sync"

	"github.com/lactec/intranet/internal/repository"
)

// ProfileVersionRepository stores profile versions in memory.
type ProfileVersionRepository struct {
	mu       sync.RWMutex
	versions map[string]string
}

var _ repository.ProfileVersionRepository = (*ProfileVersionRepository)(nil)

// NewProfileVersionRepository returns an empty repository.
func NewProfileVersionRepository() *ProfileVersionRepository {
	return &ProfileVersionRepository{versions: make(map[string]string)}
}

func (r *ProfileVersionRepository) Get(_ context.Context, profileID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	version, ok := r.versions[profileID]
	if !ok {
		return "", repository.ErrNotFound
	}
	return version, nil
}

func (r *ProfileVersionRepository) Set(_ context.Context, profileID, version string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.versions[profileID] = version
	return nil
}
