package repository

import (
	"context"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
)

type CityRepository interface {
	Create(ctx context.Context, c *domain.City) (*domain.City, error)
	GetByID(ctx context.Context, id int64) (*domain.City, error)
	List(ctx context.Context) ([]*domain.City, error)
	Update(ctx context.Context, c *domain.City) (*domain.City, error)
	Delete(ctx context.Context, id int64) error
}

type DistrictRepository interface {
	Create(ctx context.Context, d *domain.District) (*domain.District, error)
	GetByID(ctx context.Context, id int64) (*domain.District, error)
	List(ctx context.Context, cityID *int64) ([]*domain.District, error)
	Update(ctx context.Context, d *domain.District) (*domain.District, error)
	Delete(ctx context.Context, id int64) error
}

type MicrodistrictRepository interface {
	Create(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error)
	GetByID(ctx context.Context, id int64) (*domain.Microdistrict, error)
	List(ctx context.Context, districtID *int64) ([]*domain.Microdistrict, error)
	Update(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	// List returns every category, or only the children of *parentID when set.
	List(ctx context.Context, parentID *int64) ([]*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}
