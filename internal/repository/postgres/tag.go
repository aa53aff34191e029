package postgres

import (
	"context"
	"database/sql"

	"campuspool-backend/internal/domain"
	"campuspool-backend/internal/repository"

	"github.com/lib/pq"
)

type tagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	query := `INSERT INTO carpool_tags (name, color) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRowContext(ctx, query, tag.Name, tag.Color).Scan(&tag.ID)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return &domain.ConflictError{Reason: "a tag with this name already exists"}
	}
	return err
}

func (r *tagRepository) List(ctx context.Context) ([]domain.Tag, error) {
	query := `SELECT id, name, color FROM carpool_tags ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

func (r *tagRepository) GetByIDs(ctx context.Context, ids []int32) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, name, color FROM carpool_tags WHERE id = ANY($1) ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTags(rows)
}

func scanTags(rows *sql.Rows) ([]domain.Tag, error) {
	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.Color); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
