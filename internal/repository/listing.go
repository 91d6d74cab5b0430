package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
)

type ListListingsInput struct {
	OwnerID *int64               // nil = every owner
	Status  domain.ListingStatus // empty = all statuses
}

// StatusChange is a conditional status write. It applies only while the row is
// still in one of From; PublishedAt is written only when non-nil.
type StatusChange struct {
	ID          int64
	From        []domain.ListingStatus
	To          domain.ListingStatus
	PublishedAt *time.Time
}

// UseCase depends on interface, not concrete implementation.
type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	List(ctx context.Context, input ListListingsInput) ([]*domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	// SetStatus returns domain.ErrListingStatusConflict when no row matched.
	SetStatus(ctx context.Context, change StatusChange) error
	Delete(ctx context.Context, id int64) error

	// ArchiveStale archives up to limit published listings whose published_at is before cutoff.
	ArchiveStale(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context) ([]*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) (*domain.Property, error)
	Delete(ctx context.Context, id int64) error
}

type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error)
	GetByID(ctx context.Context, id int64) (*domain.Photo, error)
	List(ctx context.Context, listingID *int64) ([]*domain.Photo, error)
	Delete(ctx context.Context, id int64) error
}
