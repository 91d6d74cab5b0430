package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

type PropertyUsecase struct {
	repo repository.PropertyRepository
}

func NewPropertyUsecase(repo repository.PropertyRepository) *PropertyUsecase {
	return &PropertyUsecase{repo: repo}
}

// UpdatePropertyInput is a partial update; nil fields are left unchanged.
type UpdatePropertyInput struct {
	Title         *string
	PropertyType  *domain.PropertyType
	City          *string
	Address       *string
	Rooms         *int
	TotalArea     *string
	LivingArea    *string
	Floor         *int
	TotalFloors   *int
	YearBuilt     *int
	Latitude      *string
	Longitude     *string
	IsNewBuilding *bool
}

func (u *PropertyUsecase) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	if p.PropertyType == "" {
		p.PropertyType = domain.PropertyApartment
	}
	p.Title = strings.TrimSpace(p.Title)
	if err := validateProperty(p); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create property: %w", err)
	}
	return created, nil
}

func (u *PropertyUsecase) List(ctx context.Context) ([]*domain.Property, error) {
	props, err := u.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

func (u *PropertyUsecase) Get(ctx context.Context, id int64) (*domain.Property, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	return p, nil
}

func (u *PropertyUsecase) Update(ctx context.Context, id int64, input UpdatePropertyInput) (*domain.Property, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}

	if input.Title != nil {
		p.Title = strings.TrimSpace(*input.Title)
	}
	if input.PropertyType != nil {
		p.PropertyType = *input.PropertyType
	}
	if input.City != nil {
		p.City = *input.City
	}
	if input.Address != nil {
		p.Address = *input.Address
	}
	if input.Rooms != nil {
		p.Rooms = *input.Rooms
	}
	if input.TotalArea != nil {
		p.TotalArea = *input.TotalArea
	}
	if input.LivingArea != nil {
		p.LivingArea = input.LivingArea
	}
	if input.Floor != nil {
		p.Floor = input.Floor
	}
	if input.TotalFloors != nil {
		p.TotalFloors = input.TotalFloors
	}
	if input.YearBuilt != nil {
		p.YearBuilt = input.YearBuilt
	}
	if input.Latitude != nil {
		p.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		p.Longitude = input.Longitude
	}
	if input.IsNewBuilding != nil {
		p.IsNewBuilding = *input.IsNewBuilding
	}

	if err := validateProperty(p); err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return updated, nil
}

// Delete also removes the property's listings.
func (u *PropertyUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	return nil
}

func validateProperty(p *domain.Property) error {
	vErr := &domain.ValidationError{}

	switch p.PropertyType {
	case domain.PropertyApartment, domain.PropertyHouse, domain.PropertyCommercial, domain.PropertyLand:
	default:
		vErr.Add("property_type", fmt.Sprintf("%q is not a valid choice.", p.PropertyType))
	}
	if msg := domain.AreaShape.Check(p.TotalArea); msg != "" {
		vErr.Add("total_area", msg)
	}
	if p.LivingArea != nil {
		if msg := domain.AreaShape.Check(*p.LivingArea); msg != "" {
			vErr.Add("living_area", msg)
		}
	}
	if p.Latitude != nil {
		if msg := domain.CoordinateShape.Check(*p.Latitude); msg != "" {
			vErr.Add("latitude", msg)
		}
	}
	if p.Longitude != nil {
		if msg := domain.CoordinateShape.Check(*p.Longitude); msg != "" {
			vErr.Add("longitude", msg)
		}
	}
	if p.Floor != nil && p.TotalFloors != nil && *p.Floor > *p.TotalFloors {
		vErr.Add("floor", "Floor cannot be greater than total floors.")
	}

	if len(vErr.Fields) > 0 {
		return vErr
	}
	return nil
}
