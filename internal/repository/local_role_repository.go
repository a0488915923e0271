package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lactec/intranet/internal/domain"
)

type localRoleRepository struct {
	pool *pgxpool.Pool
}

// NewLocalRoleRepository constructs repository.
func NewLocalRoleRepository(pool *pgxpool.Pool) LocalRoleRepository {
	return &localRoleRepository{pool: pool}
}

func (r *localRoleRepository) Grant(ctx context.Context, principalID, objectUID string, roles []domain.Role) error {
	const query = `
        INSERT INTO local_roles (principal_id, object_uid, role) VALUES ($1,$2,$3)
        ON CONFLICT DO NOTHING`
	batch := &pgx.Batch{}
	for _, role := range roles {
		batch.Queue(query, principalID, objectUID, string(role))
	}
	return mapPgError(r.pool.SendBatch(ctx, batch).Close())
}

func (r *localRoleRepository) ListRoles(ctx context.Context, objectUID string, principalIDs ...string) ([]domain.Role, error) {
	if len(principalIDs) == 0 {
		return nil, nil
	}
	const query = `
        SELECT DISTINCT role FROM local_roles
        WHERE object_uid=$1 AND principal_id = ANY($2)
        ORDER BY role`
	rows, err := r.pool.Query(ctx, query, objectUID, principalIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, err
		}
		roles = append(roles, domain.Role(role))
	}
	return roles, rows.Err()
}
