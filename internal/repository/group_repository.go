package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lactec/intranet/internal/domain"
)

type groupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository constructs repository.
func NewGroupRepository(pool *pgxpool.Pool) GroupRepository {
	return &groupRepository{pool: pool}
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	const query = `
        INSERT INTO groups (id, title, description)
        VALUES ($1,$2,$3)
        RETURNING created_at`
	err := r.pool.QueryRow(ctx, query,
		group.ID,
		group.Title,
		group.Description,
	).Scan(&group.CreatedAt)
	return mapPgError(err)
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*domain.Group, error) {
	const query = `SELECT id, title, description, created_at FROM groups WHERE id=$1`
	var group domain.Group
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&group.ID,
		&group.Title,
		&group.Description,
		&group.CreatedAt,
	); err != nil {
		return nil, mapPgError(err)
	}
	return &group, nil
}

func (r *groupRepository) AddMember(ctx context.Context, groupID, userID string) error {
	const query = `
        INSERT INTO group_members (group_id, user_id) VALUES ($1,$2)
        ON CONFLICT DO NOTHING`
	_, err := r.pool.Exec(ctx, query, groupID, userID)
	return mapPgError(err)
}

func (r *groupRepository) ListForUser(ctx context.Context, userID string) ([]string, error) {
	const query = `SELECT group_id FROM group_members WHERE user_id=$1 ORDER BY group_id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
