package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type profileVersionRepository struct {
	pool *pgxpool.Pool
}

// NewProfileVersionRepository constructs repository.
func NewProfileVersionRepository(pool *pgxpool.Pool) ProfileVersionRepository {
	return &profileVersionRepository{pool: pool}
}

// Get returns ErrNotFound when the profile was never recorded.
func (r *profileVersionRepository) Get(ctx context.Context, profileID string) (string, error) {
	const query = `SELECT version FROM profile_versions WHERE profile_id=$1`
	var version string
	if err := r.pool.QueryRow(ctx, query, profileID).Scan(&version); err != nil {
		return "", mapPgError(err)
	}
	return version, nil
}

func (r *profileVersionRepository) Set(ctx context.Context, profileID, version string) error {
	const query = `
        INSERT INTO profile_versions (profile_id, version) VALUES ($1,$2)
        ON CONFLICT (profile_id) DO UPDATE SET version=EXCLUDED.version, updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query, profileID, version)
	return mapPgError(err)
}
