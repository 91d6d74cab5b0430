package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

// propertyColumnsP is the property projection under the alias "p".
// Decimals are read as text so no precision is lost on the way to JSON.
const propertyColumnsP = `p.id, p.title, p.property_type, p.city, p.address, p.rooms,
	       p.total_area::text, p.living_area::text, p.floor, p.total_floors, p.year_built,
	       p.latitude::text, p.longitude::text, p.is_new_building, p.created_at, p.updated_at`

type propertyScan struct {
	p   domain.Property
	typ string
}

func (s *propertyScan) dest() []any {
	return []any{
		&s.p.ID, &s.p.Title, &s.typ, &s.p.City, &s.p.Address, &s.p.Rooms,
		&s.p.TotalArea, &s.p.LivingArea, &s.p.Floor, &s.p.TotalFloors, &s.p.YearBuilt,
		&s.p.Latitude, &s.p.Longitude, &s.p.IsNewBuilding, &s.p.CreatedAt, &s.p.UpdatedAt,
	}
}

func (s *propertyScan) result() *domain.Property {
	p := s.p
	p.PropertyType = domain.PropertyType(s.typ)
	return &p
}

type PropertyRepository struct {
	db DB
}

func NewPropertyRepository(db DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	query := `
		WITH p AS (
			INSERT INTO properties (
				title, property_type, city, address, rooms, total_area, living_area,
				floor, total_floors, year_built, latitude, longitude, is_new_building
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING *
		)
		SELECT ` + propertyColumnsP + ` FROM p`

	row := r.db.QueryRow(ctx, query,
		p.Title, string(p.PropertyType), p.City, p.Address, p.Rooms, p.TotalArea, p.LivingArea,
		p.Floor, p.TotalFloors, p.YearBuilt, p.Latitude, p.Longitude, p.IsNewBuilding,
	)
	created, err := scanProperty(row)
	if err != nil {
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("create property: %w", err)
	}
	return created, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	query := `SELECT ` + propertyColumnsP + ` FROM properties p WHERE p.id = $1`
	return scanProperty(r.db.QueryRow(ctx, query, id))
}

// List orders by year_built, newest construction first.
func (r *PropertyRepository) List(ctx context.Context) ([]*domain.Property, error) {
	query := `SELECT ` + propertyColumnsP + ` FROM properties p ORDER BY p.year_built DESC NULLS LAST, p.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	var props []*domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return props, nil
}

func (r *PropertyRepository) Update(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	query := `
		WITH p AS (
			UPDATE properties SET
				title = $2, property_type = $3, city = $4, address = $5, rooms = $6,
				total_area = $7, living_area = $8, floor = $9, total_floors = $10,
				year_built = $11, latitude = $12, longitude = $13, is_new_building = $14,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + propertyColumnsP + ` FROM p`

	row := r.db.QueryRow(ctx, query,
		p.ID, p.Title, string(p.PropertyType), p.City, p.Address, p.Rooms,
		p.TotalArea, p.LivingArea, p.Floor, p.TotalFloors,
		p.YearBuilt, p.Latitude, p.Longitude, p.IsNewBuilding,
	)
	updated, err := scanProperty(row)
	if err != nil {
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("update property: %w", err)
	}
	return updated, nil
}

// Delete cascades to the property's listings and their photos.
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var s propertyScan
	if err := row.Scan(s.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("scan property: %w", err)
	}
	return s.result(), nil
}
