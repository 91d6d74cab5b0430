package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

const categorySelect = `
	SELECT c.id, c.parent_id, c.name, c.slug, COALESCE(pc.name, ''), c.created_at, c.updated_at
	FROM c LEFT JOIN categories pc ON pc.id = c.parent_id`

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	query := `
		WITH c AS (
			INSERT INTO categories (parent_id, name, slug) VALUES ($1, $2, $3)
			RETURNING *
		)` + categorySelect

	created, err := scanCategory(r.db.QueryRow(ctx, query, c.ParentID, c.Name, c.Slug))
	if err != nil {
		return nil, categoryWriteError("create", err)
	}
	return created, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `WITH c AS (SELECT * FROM categories WHERE id = $1)` + categorySelect
	return scanCategory(r.db.QueryRow(ctx, query, id))
}

func (r *CategoryRepository) List(ctx context.Context, parentID *int64) ([]*domain.Category, error) {
	query := `
		WITH c AS (SELECT * FROM categories WHERE $1::bigint IS NULL OR parent_id = $1)` +
		categorySelect + `
		ORDER BY c.name`

	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	query := `
		WITH c AS (
			UPDATE categories SET parent_id = $2, name = $3, slug = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)` + categorySelect

	updated, err := scanCategory(r.db.QueryRow(ctx, query, c.ID, c.ParentID, c.Name, c.Slug))
	if err != nil {
		return nil, categoryWriteError("update", err)
	}
	return updated, nil
}

// Delete cascades to the whole subtree.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func categoryWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return domain.NewFieldError("parent", "Parent category does not exist.")
	}
	if pgErr, ok := isUniqueViolation(err); ok {
		return duplicateFieldError(pgErr, "Category")
	}
	if errors.Is(err, domain.ErrCategoryNotFound) {
		return err
	}
	if verr := rejectedInput(err); verr != nil {
		return verr
	}
	return fmt.Errorf("%s category: %w", op, err)
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.ParentID, &c.Name, &c.Slug, &c.ParentName, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &c, nil
}
