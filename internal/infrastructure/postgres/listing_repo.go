package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
	"github.com/jackc/pgx/v5"
)

// listingSelect joins the property row so reads never need a second query.
// Writes go through a CTE ("l") and reuse the same projection.
const listingSelect = `
	SELECT l.id, l.property_id, l.owner_id, l.title, l.description, l.price::text,
	       l.currency, l.status, l.is_top, l.published_at, l.created_at, l.updated_at,
	       ` + propertyColumnsP + `
	FROM l JOIN properties p ON p.id = l.property_id`

type ListingRepository struct {
	db DB
}

func NewListingRepository(db DB) *ListingRepository {
	return &ListingRepository{db: db}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	query := `
		WITH l AS (
			INSERT INTO listings (property_id, owner_id, title, description, price, currency, status, is_top)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING *
		)` + listingSelect

	row := r.db.QueryRow(ctx, query,
		l.PropertyID, l.OwnerID, l.Title, l.Description, l.Price, l.Currency, string(l.Status), l.IsTop,
	)
	created, err := scanListing(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrPropertyNotFound
		}
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return created, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	query := `WITH l AS (SELECT * FROM listings WHERE id = $1)` + listingSelect
	return scanListing(r.db.QueryRow(ctx, query, id))
}

// List orders by published_at, newest first, with drafts last.
func (r *ListingRepository) List(ctx context.Context, input repository.ListListingsInput) ([]*domain.Listing, error) {
	var status *string
	if input.Status != "" {
		s := string(input.Status)
		status = &s
	}

	query := `
		WITH l AS (
			SELECT * FROM listings
			WHERE ($1::bigint IS NULL OR owner_id = $1)
			  AND ($2::text IS NULL OR status = $2)
		)` + listingSelect + `
		ORDER BY l.published_at DESC NULLS LAST, l.id DESC`

	rows, err := r.db.Query(ctx, query, input.OwnerID, status)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []*domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}
	return listings, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	query := `
		WITH l AS (
			UPDATE listings SET
				title = $2, description = $3, price = $4, currency = $5, is_top = $6,
				updated_at = NOW()
			WHERE id = $1
			RETURNING *
		)` + listingSelect

	row := r.db.QueryRow(ctx, query, l.ID, l.Title, l.Description, l.Price, l.Currency, l.IsTop)
	updated, err := scanListing(row)
	if err != nil {
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return updated, nil
}

// SetStatus re-checks the source status inside the UPDATE, so two racing
// transitions cannot both apply and an existing published_at is never cleared.
func (r *ListingRepository) SetStatus(ctx context.Context, change repository.StatusChange) error {
	from := make([]string, len(change.From))
	for i, s := range change.From {
		from[i] = string(s)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE listings
		SET status = $2, published_at = COALESCE($3, published_at), updated_at = NOW()
		WHERE id = $1 AND status = ANY($4)`,
		change.ID, string(change.To), change.PublishedAt, from,
	)
	if err != nil {
		return fmt.Errorf("set listing status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingStatusConflict
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

// ArchiveStale uses SKIP LOCKED so concurrent workers never block on the same rows.
func (r *ListingRepository) ArchiveStale(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE listings SET status = 'archived', updated_at = NOW()
		WHERE id IN (
			SELECT id FROM listings
			WHERE status = 'published' AND published_at < $1
			ORDER BY published_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)`,
		cutoff, limit,
	)
	if err != nil {
		return 0, fmt.Errorf("archive stale listings: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var (
		l      domain.Listing
		p      propertyScan
		status string
	)
	dest := append([]any{
		&l.ID, &l.PropertyID, &l.OwnerID, &l.Title, &l.Description, &l.Price,
		&l.Currency, &status, &l.IsTop, &l.PublishedAt, &l.CreatedAt, &l.UpdatedAt,
	}, p.dest()...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("scan listing: %w", err)
	}
	l.Status = domain.ListingStatus(status)
	l.Property = p.result()
	return &l, nil
}
