package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	ctxlog "github.com/ErlanBelekov/estate-listings/internal/log"
	"github.com/ErlanBelekov/estate-listings/internal/metrics"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

type ListingUsecase struct {
	repo   repository.ListingRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewListingUsecase(repo repository.ListingRepository, logger *slog.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:   repo,
		logger: logger.With("component", "listing_usecase"),
		now:    time.Now,
	}
}

type CreateListingInput struct {
	OwnerID     int64
	PropertyID  int64
	Title       string
	Description string
	Price       string
	Currency    string
	IsTop       bool
}

// UpdateListingInput is a partial update; nil fields are left unchanged.
type UpdateListingInput struct {
	Title       *string
	Description *string
	Price       *string
	Currency    *string
	IsTop       *bool
}

func (u *ListingUsecase) Create(ctx context.Context, input CreateListingInput) (*domain.Listing, error) {
	if input.Currency == "" {
		input.Currency = domain.DefaultCurrency
	}
	if msg := domain.PriceShape.Check(input.Price); msg != "" {
		return nil, domain.NewFieldError("price", msg)
	}

	listing := &domain.Listing{
		PropertyID:  input.PropertyID,
		OwnerID:     input.OwnerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price,
		Currency:    strings.ToUpper(input.Currency),
		Status:      domain.ListingDraft,
		IsTop:       input.IsTop,
	}

	created, err := u.repo.Create(ctx, listing)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return nil, domain.NewFieldError("property",
				fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, input.PropertyID))
		}
		return nil, fmt.Errorf("create listing: %w", err)
	}
	return created, nil
}

// List returns every listing, optionally narrowed to one status. Reads are public.
func (u *ListingUsecase) List(ctx context.Context, status domain.ListingStatus) ([]*domain.Listing, error) {
	switch status {
	case "", domain.ListingDraft, domain.ListingPublished, domain.ListingArchived:
	default:
		return nil, domain.NewFieldError("status", fmt.Sprintf("%q is not a valid choice.", status))
	}

	listings, err := u.repo.List(ctx, repository.ListListingsInput{Status: status})
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// ListMine returns only the listings owned by ownerID.
func (u *ListingUsecase) ListMine(ctx context.Context, ownerID int64) ([]*domain.Listing, error) {
	listings, err := u.repo.List(ctx, repository.ListListingsInput{OwnerID: &ownerID})
	if err != nil {
		return nil, fmt.Errorf("list own listings: %w", err)
	}
	return listings, nil
}

func (u *ListingUsecase) Get(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

func (u *ListingUsecase) Update(ctx context.Context, id, actingUserID int64, input UpdateListingInput) (*domain.Listing, error) {
	l, err := u.ownedListing(ctx, id, actingUserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		l.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		l.Description = *input.Description
	}
	if input.Price != nil {
		if msg := domain.PriceShape.Check(*input.Price); msg != "" {
			return nil, domain.NewFieldError("price", msg)
		}
		l.Price = *input.Price
	}
	if input.Currency != nil {
		l.Currency = strings.ToUpper(*input.Currency)
	}
	if input.IsTop != nil {
		l.IsTop = *input.IsTop
	}

	updated, err := u.repo.Update(ctx, l)
	if err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	return updated, nil
}

func (u *ListingUsecase) Delete(ctx context.Context, id, actingUserID int64) error {
	if _, err := u.ownedListing(ctx, id, actingUserID); err != nil {
		return err
	}
	if err := u.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// Publish moves a draft into published. Publishing twice is a no-op that
// leaves published_at untouched; archived listings cannot be published.
func (u *ListingUsecase) Publish(ctx context.Context, id, actingUserID int64) (*domain.Listing, error) {
	now := u.now().UTC()
	l, changed, err := u.transition(ctx, id, actingUserID, domain.PublishableFrom, func(l *domain.Listing) (bool, error) {
		return l.Publish(now)
	})
	if err != nil {
		return nil, fmt.Errorf("publish listing: %w", err)
	}
	if changed {
		metrics.ListingTransitionsTotal.WithLabelValues(string(domain.ListingPublished), "owner").Inc()
		u.logger.InfoContext(ctx, "listing published", "listing_id", l.ID)
	}
	return l, nil
}

// Archive moves a draft or published listing into archived; archiving twice is a no-op.
func (u *ListingUsecase) Archive(ctx context.Context, id, actingUserID int64) (*domain.Listing, error) {
	l, changed, err := u.transition(ctx, id, actingUserID, domain.ArchivableFrom, func(l *domain.Listing) (bool, error) {
		return l.Archive(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("archive listing: %w", err)
	}
	if changed {
		metrics.ListingTransitionsTotal.WithLabelValues(string(domain.ListingArchived), "owner").Inc()
		u.logger.InfoContext(ctx, "listing archived", "listing_id", l.ID)
	}
	return l, nil
}

// transition applies step and writes the result only if the row is still in
// one of from. When a concurrent writer moved it first, the row is reloaded
// and step re-applied once, which ends as a no-op or a validation error.
func (u *ListingUsecase) transition(
	ctx context.Context,
	id, actingUserID int64,
	from []domain.ListingStatus,
	step func(*domain.Listing) (bool, error),
) (*domain.Listing, bool, error) {
	ctx = ctxlog.WithAttrs(ctx, slog.Int64("listing_id", id))
	l, err := u.ownedListing(ctx, id, actingUserID)
	if err != nil {
		return nil, false, err
	}

	for attempt := 0; ; attempt++ {
		changed, err := step(l)
		if err != nil || !changed {
			return l, false, err
		}

		err = u.repo.SetStatus(ctx, repository.StatusChange{
			ID: l.ID, From: from, To: l.Status, PublishedAt: l.PublishedAt,
		})
		if err == nil {
			return l, true, nil
		}
		if !errors.Is(err, domain.ErrListingStatusConflict) || attempt > 0 {
			return nil, false, err
		}

		u.logger.InfoContext(ctx, "listing status changed concurrently, reloading", "attempted", l.Status)
		if l, err = u.repo.GetByID(ctx, id); err != nil {
			return nil, false, fmt.Errorf("reload listing: %w", err)
		}
	}
}

// ownedListing loads the listing and applies the ownership guard:
// missing is ErrListingNotFound, someone else's is ErrForbidden.
func (u *ListingUsecase) ownedListing(ctx context.Context, id, actingUserID int64) (*domain.Listing, error) {
	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	if err := domain.AuthorizeMutation(l, actingUserID); err != nil {
		u.logger.WarnContext(ctx, "listing mutation denied", "listing_id", id, "user_id", actingUserID)
		return nil, err
	}
	return l, nil
}
