package usecase_test

import (
	"context"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

type fakeListingRepo struct {
	create       func(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	getByID      func(ctx context.Context, id int64) (*domain.Listing, error)
	list         func(ctx context.Context, input repository.ListListingsInput) ([]*domain.Listing, error)
	update       func(ctx context.Context, l *domain.Listing) (*domain.Listing, error)
	setStatus    func(ctx context.Context, change repository.StatusChange) error
	deleteFn     func(ctx context.Context, id int64) error
	archiveStale func(ctx context.Context, cutoff time.Time, limit int) (int, error)
}

func (r *fakeListingRepo) Create(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	return r.create(ctx, l)
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	return r.getByID(ctx, id)
}

func (r *fakeListingRepo) List(ctx context.Context, input repository.ListListingsInput) ([]*domain.Listing, error) {
	return r.list(ctx, input)
}

func (r *fakeListingRepo) Update(ctx context.Context, l *domain.Listing) (*domain.Listing, error) {
	return r.update(ctx, l)
}

func (r *fakeListingRepo) SetStatus(ctx context.Context, change repository.StatusChange) error {
	return r.setStatus(ctx, change)
}

func (r *fakeListingRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

func (r *fakeListingRepo) ArchiveStale(ctx context.Context, cutoff time.Time, limit int) (int, error) {
	return r.archiveStale(ctx, cutoff, limit)
}

type fakePhotoRepo struct {
	create   func(ctx context.Context, p *domain.Photo) (*domain.Photo, error)
	getByID  func(ctx context.Context, id int64) (*domain.Photo, error)
	list     func(ctx context.Context, listingID *int64) ([]*domain.Photo, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (r *fakePhotoRepo) Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error) {
	return r.create(ctx, p)
}

func (r *fakePhotoRepo) GetByID(ctx context.Context, id int64) (*domain.Photo, error) {
	return r.getByID(ctx, id)
}

func (r *fakePhotoRepo) List(ctx context.Context, listingID *int64) ([]*domain.Photo, error) {
	return r.list(ctx, listingID)
}

func (r *fakePhotoRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

type fakePropertyRepo struct {
	create   func(ctx context.Context, p *domain.Property) (*domain.Property, error)
	getByID  func(ctx context.Context, id int64) (*domain.Property, error)
	list     func(ctx context.Context) ([]*domain.Property, error)
	update   func(ctx context.Context, p *domain.Property) (*domain.Property, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (r *fakePropertyRepo) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	return r.create(ctx, p)
}

func (r *fakePropertyRepo) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	return r.getByID(ctx, id)
}

func (r *fakePropertyRepo) List(ctx context.Context) ([]*domain.Property, error) {
	return r.list(ctx)
}

func (r *fakePropertyRepo) Update(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	return r.update(ctx, p)
}

func (r *fakePropertyRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

// memCategoryRepo is a map-backed CategoryRepository.
type memCategoryRepo struct {
	byID    map[int64]*domain.Category
	updated *domain.Category
}

func (r *memCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	return c, nil
}

func (r *memCategoryRepo) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) List(context.Context, *int64) ([]*domain.Category, error) {
	return nil, nil
}

func (r *memCategoryRepo) Update(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.updated = c
	return c, nil
}

func (r *memCategoryRepo) Delete(context.Context, int64) error { return nil }

func ptr[T any](v T) *T { return &v }
