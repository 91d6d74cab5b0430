package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

// PhotoUsecase gates photo mutations on ownership of the parent listing.
type PhotoUsecase struct {
	photos   repository.PhotoRepository
	listings repository.ListingRepository
}

func NewPhotoUsecase(photos repository.PhotoRepository, listings repository.ListingRepository) *PhotoUsecase {
	return &PhotoUsecase{photos: photos, listings: listings}
}

type CreatePhotoInput struct {
	ListingID int64
	ImageURL  string
	IsMain    bool
	Order     int
}

func (u *PhotoUsecase) Create(ctx context.Context, actingUserID int64, input CreatePhotoInput) (*domain.Photo, error) {
	listing, err := u.listings.GetByID(ctx, input.ListingID)
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.NewFieldError("listing",
				fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, input.ListingID))
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if err := domain.AuthorizeMutation(listing, actingUserID); err != nil {
		return nil, err
	}

	photo, err := u.photos.Create(ctx, &domain.Photo{
		ListingID: input.ListingID,
		ImageURL:  input.ImageURL,
		IsMain:    input.IsMain,
		Order:     input.Order,
	})
	if err != nil {
		if errors.Is(err, domain.ErrListingNotFound) {
			return nil, domain.NewFieldError("listing", "Listing was deleted.")
		}
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return photo, nil
}

func (u *PhotoUsecase) List(ctx context.Context, listingID *int64) ([]*domain.Photo, error) {
	photos, err := u.photos.List(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

func (u *PhotoUsecase) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	p, err := u.photos.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return p, nil
}

func (u *PhotoUsecase) Delete(ctx context.Context, id, actingUserID int64) error {
	photo, err := u.photos.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get photo: %w", err)
	}
	listing, err := u.listings.GetByID(ctx, photo.ListingID)
	if err != nil {
		return fmt.Errorf("get listing: %w", err)
	}
	if err := domain.AuthorizeMutation(listing, actingUserID); err != nil {
		return err
	}
	if err := u.photos.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
