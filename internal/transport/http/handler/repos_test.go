package handler_test

import (
	"context"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

// Property, photo and location handlers take concrete usecases, so their
// tests run real usecases over these repository fakes.

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

// ownerLookup serves GetByID for photo ownership checks; other listing
// methods are not reached from the photo usecase.
type ownerLookup struct {
	repository.ListingRepository
	owners map[int64]int64
}

func (r ownerLookup) GetByID(_ context.Context, id int64) (*domain.Listing, error) {
	owner, ok := r.owners[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return &domain.Listing{ID: id, OwnerID: owner, Status: domain.ListingDraft}, nil
}

type fakeCityRepo struct {
	create   func(ctx context.Context, c *domain.City) (*domain.City, error)
	getByID  func(ctx context.Context, id int64) (*domain.City, error)
	list     func(ctx context.Context) ([]*domain.City, error)
	update   func(ctx context.Context, c *domain.City) (*domain.City, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (r *fakeCityRepo) Create(ctx context.Context, c *domain.City) (*domain.City, error) {
	return r.create(ctx, c)
}

func (r *fakeCityRepo) GetByID(ctx context.Context, id int64) (*domain.City, error) {
	return r.getByID(ctx, id)
}

func (r *fakeCityRepo) List(ctx context.Context) ([]*domain.City, error) {
	return r.list(ctx)
}

func (r *fakeCityRepo) Update(ctx context.Context, c *domain.City) (*domain.City, error) {
	return r.update(ctx, c)
}

func (r *fakeCityRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

type fakeDistrictRepo struct {
	create   func(ctx context.Context, d *domain.District) (*domain.District, error)
	getByID  func(ctx context.Context, id int64) (*domain.District, error)
	list     func(ctx context.Context, cityID *int64) ([]*domain.District, error)
	update   func(ctx context.Context, d *domain.District) (*domain.District, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (r *fakeDistrictRepo) Create(ctx context.Context, d *domain.District) (*domain.District, error) {
	return r.create(ctx, d)
}

func (r *fakeDistrictRepo) GetByID(ctx context.Context, id int64) (*domain.District, error) {
	return r.getByID(ctx, id)
}

func (r *fakeDistrictRepo) List(ctx context.Context, cityID *int64) ([]*domain.District, error) {
	return r.list(ctx, cityID)
}

func (r *fakeDistrictRepo) Update(ctx context.Context, d *domain.District) (*domain.District, error) {
	return r.update(ctx, d)
}

func (r *fakeDistrictRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

type fakeMicrodistrictRepo struct {
	create   func(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error)
	getByID  func(ctx context.Context, id int64) (*domain.Microdistrict, error)
	list     func(ctx context.Context, districtID *int64) ([]*domain.Microdistrict, error)
	update   func(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (r *fakeMicrodistrictRepo) Create(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error) {
	return r.create(ctx, m)
}

func (r *fakeMicrodistrictRepo) GetByID(ctx context.Context, id int64) (*domain.Microdistrict, error) {
	return r.getByID(ctx, id)
}

func (r *fakeMicrodistrictRepo) List(ctx context.Context, districtID *int64) ([]*domain.Microdistrict, error) {
	return r.list(ctx, districtID)
}

func (r *fakeMicrodistrictRepo) Update(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error) {
	return r.update(ctx, m)
}

func (r *fakeMicrodistrictRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

type fakeCategoryRepo struct {
	create   func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	getByID  func(ctx context.Context, id int64) (*domain.Category, error)
	list     func(ctx context.Context, parentID *int64) ([]*domain.Category, error)
	update   func(ctx context.Context, c *domain.Category) (*domain.Category, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (r *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return r.create(ctx, c)
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	return r.getByID(ctx, id)
}

func (r *fakeCategoryRepo) List(ctx context.Context, parentID *int64) ([]*domain.Category, error) {
	return r.list(ctx, parentID)
}

func (r *fakeCategoryRepo) Update(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	return r.update(ctx, c)
}

func (r *fakeCategoryRepo) Delete(ctx context.Context, id int64) error {
	return r.deleteFn(ctx, id)
}

func ptr[T any](v T) *T { return &v }
