package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

// maxCategoryDepth bounds the ancestor walk in the cycle check.
const maxCategoryDepth = 64

type LocationUsecase struct {
	cities         repository.CityRepository
	districts      repository.DistrictRepository
	microdistricts repository.MicrodistrictRepository
	categories     repository.CategoryRepository
}

func NewLocationUsecase(
	cities repository.CityRepository,
	districts repository.DistrictRepository,
	microdistricts repository.MicrodistrictRepository,
	categories repository.CategoryRepository,
) *LocationUsecase {
	return &LocationUsecase{
		cities:         cities,
		districts:      districts,
		microdistricts: microdistricts,
		categories:     categories,
	}
}

// UpdateLocationInput is a partial update shared by every location entity.
// ParentID is the city id for districts and the district id for microdistricts.
type UpdateLocationInput struct {
	Name     *string
	Slug     *string
	ParentID *int64
}

// UpdateCategoryInput distinguishes "leave parent alone" (SetParent=false)
// from "make this a root" (SetParent=true, ParentID=nil).
type UpdateCategoryInput struct {
	Name      *string
	Slug      *string
	SetParent bool
	ParentID  *int64
}

func applyNameSlug(name, slug *string, dstName, dstSlug *string) {
	if name != nil {
		*dstName = strings.TrimSpace(*name)
	}
	if slug != nil {
		*dstSlug = *slug
	}
}

// ---- cities ----

func (u *LocationUsecase) CreateCity(ctx context.Context, c *domain.City) (*domain.City, error) {
	c.Name = strings.TrimSpace(c.Name)
	created, err := u.cities.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}
	return created, nil
}

func (u *LocationUsecase) ListCities(ctx context.Context) ([]*domain.City, error) {
	cities, err := u.cities.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return cities, nil
}

func (u *LocationUsecase) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	c, err := u.cities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get city: %w", err)
	}
	return c, nil
}

func (u *LocationUsecase) UpdateCity(ctx context.Context, id int64, input UpdateLocationInput) (*domain.City, error) {
	c, err := u.cities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get city: %w", err)
	}
	applyNameSlug(input.Name, input.Slug, &c.Name, &c.Slug)

	updated, err := u.cities.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("update city: %w", err)
	}
	return updated, nil
}

func (u *LocationUsecase) DeleteCity(ctx context.Context, id int64) error {
	if err := u.cities.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	return nil
}

// ---- districts ----

func (u *LocationUsecase) CreateDistrict(ctx context.Context, d *domain.District) (*domain.District, error) {
	d.Name = strings.TrimSpace(d.Name)
	created, err := u.districts.Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create district: %w", err)
	}
	return created, nil
}

// ListDistricts returns every district, or only those of *cityID when set.
func (u *LocationUsecase) ListDistricts(ctx context.Context, cityID *int64) ([]*domain.District, error) {
	districts, err := u.districts.List(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("list districts: %w", err)
	}
	return districts, nil
}

func (u *LocationUsecase) GetDistrict(ctx context.Context, id int64) (*domain.District, error) {
	d, err := u.districts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get district: %w", err)
	}
	return d, nil
}

func (u *LocationUsecase) UpdateDistrict(ctx context.Context, id int64, input UpdateLocationInput) (*domain.District, error) {
	d, err := u.districts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get district: %w", err)
	}
	applyNameSlug(input.Name, input.Slug, &d.Name, &d.Slug)
	if input.ParentID != nil {
		d.CityID = *input.ParentID
	}

	updated, err := u.districts.Update(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("update district: %w", err)
	}
	return updated, nil
}

func (u *LocationUsecase) DeleteDistrict(ctx context.Context, id int64) error {
	if err := u.districts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete district: %w", err)
	}
	return nil
}

// ---- microdistricts ----

func (u *LocationUsecase) CreateMicrodistrict(ctx context.Context, m *domain.Microdistrict) (*domain.Microdistrict, error) {
	m.Name = strings.TrimSpace(m.Name)
	created, err := u.microdistricts.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("create microdistrict: %w", err)
	}
	return created, nil
}

func (u *LocationUsecase) ListMicrodistricts(ctx context.Context, districtID *int64) ([]*domain.Microdistrict, error) {
	out, err := u.microdistricts.List(ctx, districtID)
	if err != nil {
		return nil, fmt.Errorf("list microdistricts: %w", err)
	}
	return out, nil
}

func (u *LocationUsecase) GetMicrodistrict(ctx context.Context, id int64) (*domain.Microdistrict, error) {
	m, err := u.microdistricts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get microdistrict: %w", err)
	}
	return m, nil
}

func (u *LocationUsecase) UpdateMicrodistrict(ctx context.Context, id int64, input UpdateLocationInput) (*domain.Microdistrict, error) {
	m, err := u.microdistricts.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get microdistrict: %w", err)
	}
	applyNameSlug(input.Name, input.Slug, &m.Name, &m.Slug)
	if input.ParentID != nil {
		m.DistrictID = *input.ParentID
	}

	updated, err := u.microdistricts.Update(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("update microdistrict: %w", err)
	}
	return updated, nil
}

func (u *LocationUsecase) DeleteMicrodistrict(ctx context.Context, id int64) error {
	if err := u.microdistricts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete microdistrict: %w", err)
	}
	return nil
}

// ---- categories ----

func (u *LocationUsecase) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	created, err := u.categories.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// ListCategories returns every category, or only the children of *parentID when set.
func (u *LocationUsecase) ListCategories(ctx context.Context, parentID *int64) ([]*domain.Category, error) {
	out, err := u.categories.List(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (u *LocationUsecase) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := u.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (u *LocationUsecase) UpdateCategory(ctx context.Context, id int64, input UpdateCategoryInput) (*domain.Category, error) {
	c, err := u.categories.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	applyNameSlug(input.Name, input.Slug, &c.Name, &c.Slug)

	if input.SetParent {
		if input.ParentID != nil {
			if err := u.checkCategoryParent(ctx, c.ID, *input.ParentID); err != nil {
				return nil, err
			}
		}
		c.ParentID = input.ParentID
	}

	updated, err := u.categories.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return updated, nil
}

func (u *LocationUsecase) DeleteCategory(ctx context.Context, id int64) error {
	if err := u.categories.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// checkCategoryParent rejects a parent that is the category itself or one of its descendants.
func (u *LocationUsecase) checkCategoryParent(ctx context.Context, id, parentID int64) error {
	cycle := domain.NewFieldError("parent", "A category cannot be its own ancestor.")

	next := &parentID
	for depth := 0; next != nil; depth++ {
		if *next == id {
			return cycle
		}
		if depth >= maxCategoryDepth {
			return domain.NewFieldError("parent", "Category tree is too deep.")
		}
		ancestor, err := u.categories.GetByID(ctx, *next)
		if err != nil {
			if errors.Is(err, domain.ErrCategoryNotFound) {
				return domain.NewFieldError("parent", "Parent category does not exist.")
			}
			return fmt.Errorf("load ancestor: %w", err)
		}
		next = ancestor.ParentID
	}
	return nil
}
