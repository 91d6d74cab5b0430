package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

const microdistrictSelect = `
	SELECT m.id, m.district_id, m.name, m.slug, m.created_at, m.updated_at,
	       d.id, d.city_id, d.name, d.slug, d.created_at, d.updated_at,
	       c.id, c.name, c.slug, c.created_at, c.updated_at
	FROM m
	JOIN districts d ON d.id = m.district_id
	JOIN cities c ON c.id = d.city_id`

type MicrodistrictRepository struct {
	db DB
}

func NewMicrodistrictRepository(db DB) *MicrodistrictRepository {
	return &MicrodistrictRepository{db: db}
}

func (r *MicrodistrictRepository) Create(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error) {
	query := `
		WITH m AS (
			INSERT INTO microdistricts (district_id, name, slug) VALUES ($1, $2, $3)
			RETURNING *
		)` + microdistrictSelect

	created, err := scanMicrodistrict(r.db.QueryRow(ctx, query, m.DistrictID, m.Name, m.Slug))
	if err != nil {
		return nil, microdistrictWriteError("create", err)
	}
	return created, nil
}

func (r *MicrodistrictRepository) GetByID(ctx context.Context, id int64) (*domain.Microdistrict, error) {
	query := `WITH m AS (SELECT * FROM microdistricts WHERE id = $1)` + microdistrictSelect
	return scanMicrodistrict(r.db.QueryRow(ctx, query, id))
}

func (r *MicrodistrictRepository) List(ctx context.Context, districtID *int64) ([]*domain.Microdistrict, error) {
	query := `
		WITH m AS (SELECT * FROM microdistricts WHERE $1::bigint IS NULL OR district_id = $1)` +
		microdistrictSelect + `
		ORDER BY m.name`

	rows, err := r.db.Query(ctx, query, districtID)
	if err != nil {
		return nil, fmt.Errorf("list microdistricts: %w", err)
	}
	defer rows.Close()

	var out []*domain.Microdistrict
	for rows.Next() {
		m, err := scanMicrodistrict(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate microdistricts: %w", err)
	}
	return out, nil
}

func (r *MicrodistrictRepository) Update(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error) {
	query := `
		WITH m AS (
			UPDATE microdistricts SET district_id = $2, name = $3, slug = $4, updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)` + microdistrictSelect

	updated, err := scanMicrodistrict(r.db.QueryRow(ctx, query, m.ID, m.DistrictID, m.Name, m.Slug))
	if err != nil {
		return nil, microdistrictWriteError("update", err)
	}
	return updated, nil
}

func (r *MicrodistrictRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM microdistricts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete microdistrict: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMicrodistrictNotFound
	}
	return nil
}

func microdistrictWriteError(op string, err error) error {
	if isForeignKeyViolation(err) {
		return domain.NewFieldError("district", "District does not exist.")
	}
	if pgErr, ok := isUniqueViolation(err); ok {
		return duplicateFieldError(pgErr, "Microdistrict")
	}
	if errors.Is(err, domain.ErrMicrodistrictNotFound) {
		return err
	}
	if verr := rejectedInput(err); verr != nil {
		return verr
	}
	return fmt.Errorf("%s microdistrict: %w", op, err)
}

func scanMicrodistrict(row pgx.Row) (*domain.Microdistrict, error) {
	var (
		m domain.Microdistrict
		d domain.District
		c domain.City
	)
	err := row.Scan(
		&m.ID, &m.DistrictID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt,
		&d.ID, &d.CityID, &d.Name, &d.Slug, &d.CreatedAt, &d.UpdatedAt,
		&c.ID, &c.Name, &c.Slug, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMicrodistrictNotFound
		}
		return nil, fmt.Errorf("scan microdistrict: %w", err)
	}
	d.City = &c
	m.District = &d
	return &m, nil
}
