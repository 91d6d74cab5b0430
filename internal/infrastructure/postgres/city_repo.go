package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

const cityColumns = `id, name, slug, created_at, updated_at`

type CityRepository struct {
	db DB
}

func NewCityRepository(db DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, c *domain.City) (*domain.City, error) {
	query := `INSERT INTO cities (name, slug) VALUES ($1, $2) RETURNING ` + cityColumns

	created, err := scanCity(r.db.QueryRow(ctx, query, c.Name, c.Slug))
	if err != nil {
		if pgErr, ok := isUniqueViolation(err); ok {
			return nil, duplicateFieldError(pgErr, "City")
		}
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("create city: %w", err)
	}
	return created, nil
}

func (r *CityRepository) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	query := `SELECT ` + cityColumns + ` FROM cities WHERE id = $1`
	return scanCity(r.db.QueryRow(ctx, query, id))
}

func (r *CityRepository) List(ctx context.Context) ([]*domain.City, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cityColumns+` FROM cities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cities: %w", err)
	}
	return cities, nil
}

func (r *CityRepository) Update(ctx context.Context, c *domain.City) (*domain.City, error) {
	query := `
		UPDATE cities SET name = $2, slug = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + cityColumns

	updated, err := scanCity(r.db.QueryRow(ctx, query, c.ID, c.Name, c.Slug))
	if err != nil {
		if pgErr, ok := isUniqueViolation(err); ok {
			return nil, duplicateFieldError(pgErr, "City")
		}
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("update city: %w", err)
	}
	return updated, nil
}

// Delete cascades to the city's districts and their microdistricts.
func (r *CityRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCityNotFound
	}
	return nil
}

func scanCity(row pgx.Row) (*domain.City, error) {
	var c domain.City
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCityNotFound
		}
		return nil, fmt.Errorf("scan city: %w", err)
	}
	return &c, nil
}
