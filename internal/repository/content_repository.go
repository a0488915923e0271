package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lactec/intranet/internal/domain"
)

type contentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository builds the repository.
func NewContentRepository(pool *pgxpool.Pool) ContentRepository {
	return &contentRepository{pool: pool}
}

const contentColumns = `uid, id, parent_path, portal_type, title, description,
        exclude_from_nav, fields, creator, created_at, modified_at`

func (r *contentRepository) Create(ctx context.Context, obj *domain.Content) error {
	const query = `
        INSERT INTO contents (uid, id, parent_path, portal_type, title, description, exclude_from_nav, fields, creator)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, modified_at`
	err := r.pool.QueryRow(ctx, query,
		obj.UID,
		obj.ID,
		obj.ParentPath,
		obj.PortalType,
		obj.Title,
		obj.Description,
		obj.ExcludeFromNav,
		fieldsOrEmpty(obj.Fields),
		obj.Creator,
	).Scan(&obj.CreatedAt, &obj.ModifiedAt)
	return mapPgError(err)
}

func (r *contentRepository) Update(ctx context.Context, obj *domain.Content) error {
	const query = `
        UPDATE contents SET title=$1, description=$2, exclude_from_nav=$3, fields=$4, modified_at=NOW()
        WHERE uid=$5
        RETURNING modified_at`
	err := r.pool.QueryRow(ctx, query,
		obj.Title,
		obj.Description,
		obj.ExcludeFromNav,
		fieldsOrEmpty(obj.Fields),
		obj.UID,
	).Scan(&obj.ModifiedAt)
	return mapPgError(err)
}

func (r *contentRepository) GetByUID(ctx context.Context, uid string) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE uid=$1`
	return r.getOne(ctx, query, uid)
}

func (r *contentRepository) GetByPath(ctx context.Context, path string) (*domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE parent_path || '/' || id = $1`
	return r.getOne(ctx, query, path)
}

func (r *contentRepository) ChildIDs(ctx context.Context, parentPath string) ([]string, error) {
	const query = `SELECT id FROM contents WHERE parent_path=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, parentPath)
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

func (r *contentRepository) List(ctx context.Context) ([]domain.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents ORDER BY parent_path, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Content
	for rows.Next() {
		obj, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *obj)
	}
	return result, rows.Err()
}

func (r *contentRepository) getOne(ctx context.Context, query string, arg string) (*domain.Content, error) {
	obj, err := scanContent(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapPgError(err)
	}
	return obj, nil
}

func scanContent(row pgx.Row) (*domain.Content, error) {
	var obj domain.Content
	if err := row.Scan(
		&obj.UID,
		&obj.ID,
		&obj.ParentPath,
		&obj.PortalType,
		&obj.Title,
		&obj.Description,
		&obj.ExcludeFromNav,
		&obj.Fields,
		&obj.Creator,
		&obj.CreatedAt,
		&obj.ModifiedAt,
	); err != nil {
		return nil, err
	}
	return &obj, nil
}

func fieldsOrEmpty(fields map[string]string) map[string]string {
	if fields == nil {
		return map[string]string{}
	}
	return fields
}
