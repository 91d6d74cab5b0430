package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

const districtSelect = `
	SELECT d.id, d.city_id, d.name, d.slug, d.created_at, d.updated_at,
	       c.id, c.name, c.slug, c.created_at, c.updated_at
	FROM d JOIN cities c ON c.id = d.city_id`

type DistrictRepository struct {
	db DB
}

func NewDistrictRepository(db DB) *DistrictRepository {
	return &DistrictRepository{db: db}
}

func (r *DistrictRepository) Create(ctx context.Context, d *domain.District) (*domain.District, error) {
	query := `
		WITH d AS (
			INSERT INTO districts (city_id, name, slug) VALUES ($1, $2, $3)
			RETURNING *
		)` + districtSelect

	created, err := scanDistrict(r.db.QueryRow(ctx, query, d.CityID, d.Name, d.Slug))
	if err != nil {
		return nil, districtWriteError("create", err)
	}
	return created, nil
}

func (r *DistrictRepository) GetByID(ctx context.Context, id int64) (*domain.District, error) {
	query := `WITH d AS (SELECT * FROM districts WHERE id = $1)` + districtSelect
	return scanDistrict(r.db.QueryRow(ctx, query, id))
}

func (r *DistrictRepository) List(ctx context.Context, cityID *int64) ([]*domain.District, error) {
	query := `
		WITH d AS (SELECT * FROM districts WHERE $1::bigint IS NULL OR city_id = $1)` +
		districtSelect + `
		ORDER BY d.name`

	rows, err := r.db.Query(ctx, query, cityID)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	defer rows.Close()

	var districts []*domain.District
	for rows.Next() {
		d, err := scanDistrict(rows)
		if err != nil {
			return nil, err
		}
		districts = append(districts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate districts: %w", err)
	}
	return districts, nil
}

func (r *DistrictRepository) Update(ctx context.Context, d *domain.District) (*domain.District, error) {
	query := `
		WITH d AS (
			UPDATE districts SET city_id = $2, name = $3, slug = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)` + districtSelect

	updated, err := scanDistrict(r.db.QueryRow(ctx, query, d.ID, d.CityID, d.Name, d.Slug))
	if err != nil {
		return nil, districtWriteError("update", err)
	}
	return updated, nil
}

func (r *DistrictRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM districts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete district: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDistrictNotFound
	}
	return nil
}

func districtWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return domain.NewFieldError("city", "City does not exist.")
	}
	if pgErr, ok := isUniqueViolation(err); ok {
		return duplicateFieldError(pgErr, "District")
	}
	if errors.Is(err, domain.ErrDistrictNotFound) {
		return err
	}
	if verr := rejectedInput(err); verr != nil {
		return verr
	}
	return fmt.Errorf("%s district: %w", op, err)
}

func scanDistrict(row pgx.Row) (*domain.District, error) {
	var (
		d domain.District
		c domain.City
	)
	err := row.Scan(
		&d.ID, &d.CityID, &d.Name, &d.Slug, &d.CreatedAt, &d.UpdatedAt,
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDistrictNotFound
		}
		return nil, fmt.Errorf("scan district: %w", err)
	}
	d.City = &c
	return &d, nil
}
