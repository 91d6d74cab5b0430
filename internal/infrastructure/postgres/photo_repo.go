package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

const photoColumns = `id, listing_id, image_url, is_main, sort_order, created_at, updated_at`

type PhotoRepository struct {
	db DB
}

func NewPhotoRepository(db DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	query := `
		INSERT INTO photos (listing_id, image_url, is_main, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + photoColumns

	created, err := scanPhoto(r.db.QueryRow(ctx, query, p.ListingID, p.ImageURL, p.IsMain, p.Order))
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrListingNotFound
		}
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return created, nil
}

func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE id = $1`
	return scanPhoto(r.db.QueryRow(ctx, query, id))
}

// List returns every photo, or only those of *listingID when set, in display order.
func (r *PhotoRepository) List(ctx context.Context, listingID *int64) ([]*domain.Photo, error) {
	query := `
		SELECT ` + photoColumns + ` FROM photos
		WHERE ($1::bigint IS NULL OR listing_id = $1)
		ORDER BY listing_id, sort_order, id`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []*domain.Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func scanPhoto(row pgx.Row) (*domain.Photo, error) {
	var p domain.Photo
	err := row.Scan(&p.ID, &p.ListingID, &p.ImageURL, &p.IsMain, &p.Order, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("scan photo: %w", err)
	}
	return &p, nil
}
