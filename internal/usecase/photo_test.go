package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
)

func TestPhotoCreate(t *testing.T) {
	tests := []struct {
		name     string
		actingID int64
		listing  *domain.Listing
		wantErr  error
		field    string
	}{
		{name: "owner", actingID: ownerID, listing: listingWith(domain.ListingDraft)},
		{name: "stranger", actingID: strangerID, listing: listingWith(domain.ListingDraft), wantErr: domain.ErrForbidden},
		{name: "missing listing", actingID: ownerID, field: "listing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings := repoReturning(tt.listing)
			var created bool
			photos := &fakePhotoRepo{
				create: func(_ context.Context, p *domain.Photo) (*domain.Photo, error) {
					created = true
					p.ID = 1
					return p, nil
				},
			}

			_, err := usecase.NewPhotoUsecase(photos, listings).Create(context.Background(), tt.actingID,
				usecase.CreatePhotoInput{ListingID: 10, ImageURL: "https://cdn.example.com/a.jpg"})

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("want %v, got %v", tt.wantErr, err)
				}
			case tt.field != "":
				fieldErr(t, err, tt.field)
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
			if created != (tt.wantErr == nil && tt.field == "") {
				t.Errorf("created = %v", created)
			}
		})
	}
}

func TestPhotoDelete_GatedByListingOwner(t *testing.T) {
	listings := repoReturning(listingWith(domain.ListingPublished))
	photos := &fakePhotoRepo{
		getByID: func(_ context.Context, id int64) (*domain.Photo, error) {
			return &domain.Photo{ID: id, ListingID: 10}, nil
		},
		deleteFn: func(context.Context, int64) error { return nil },
	}
	uc := usecase.NewPhotoUsecase(photos, listings)

	if err := uc.Delete(context.Background(), 5, strangerID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("stranger: want ErrForbidden, got %v", err)
	}
	if err := uc.Delete(context.Background(), 5, ownerID); err != nil {
		t.Errorf("owner: unexpected error %v", err)
	}
}
