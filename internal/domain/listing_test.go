package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
)

func TestPublish_DraftBecomesPublished(t *testing.T) {
	l := &domain.Listing{Status: domain.ListingDraft}
	now := time.Now()

	changed, err := l.Publish(now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("changed = false, want true")
	}
	if l.Status != domain.ListingPublished {
		t.Errorf("status = %q, want published", l.Status)
	}
	if l.PublishedAt == nil || !l.PublishedAt.Equal(now) {
		t.Errorf("published_at = %v, want %v", l.PublishedAt, now)
	}
}

func TestPublish_Twice_KeepsPublishedAt(t *testing.T) {
	first := time.Now().Add(-time.Hour)
	l := &domain.Listing{Status: domain.ListingPublished, PublishedAt: &first}

	changed, err := l.Publish(time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("changed = true, want false")
	}
	if !l.PublishedAt.Equal(first) {
		t.Errorf("published_at moved from %v to %v", first, *l.PublishedAt)
	}
}

func TestPublish_Archived_ReturnsStatusFieldError(t *testing.T) {
	l := &domain.Listing{Status: domain.ListingArchived}

	_, err := l.Publish(time.Now())

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if !verr.Has("status") {
		t.Errorf("fields = %v, want status", verr.Fields)
	}
	if l.Status != domain.ListingArchived {
		t.Errorf("status = %q, want archived", l.Status)
	}
}

func TestArchive(t *testing.T) {
	for _, from := range []domain.ListingStatus{domain.ListingDraft, domain.ListingPublished} {
		l := &domain.Listing{Status: from}
		if !l.Archive() {
			t.Errorf("archive from %q: changed = false", from)
		}
		if l.Status != domain.ListingArchived {
			t.Errorf("archive from %q: status = %q", from, l.Status)
		}
	}

	l := &domain.Listing{Status: domain.ListingArchived}
	if l.Archive() {
		t.Error("archive of archived listing reported a change")
	}
}

func TestAuthorizeMutation(t *testing.T) {
	l := &domain.Listing{OwnerID: 7}

	if err := domain.AuthorizeMutation(l, 7); err != nil {
		t.Errorf("owner: unexpected error %v", err)
	}
	if err := domain.AuthorizeMutation(l, 8); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner: want ErrForbidden, got %v", err)
	}
}

func TestNotFoundSentinels_WrapErrNotFound(t *testing.T) {
	for _, err := range []error{
		domain.ErrListingNotFound,
		domain.ErrPropertyNotFound,
		domain.ErrPhotoNotFound,
		domain.ErrCityNotFound,
		domain.ErrDistrictNotFound,
		domain.ErrMicrodistrictNotFound,
		domain.ErrCategoryNotFound,
	} {
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("%v does not wrap ErrNotFound", err)
		}
	}
}

func TestValidationError_Message(t *testing.T) {
	err := domain.NewFieldError("password", "too short").Add("email", "taken")

	want := "validation failed: email: taken, password: too short"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := domain.NormalizeEmail("  A@B.Com "); got != "a@b.com" {
		t.Errorf("NormalizeEmail = %q, want a@b.com", got)
	}
}

func TestValidationError_WithCause(t *testing.T) {
	err := error(domain.NewFieldError("email", "taken").WithCause(domain.ErrEmailAlreadyExists))

	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Error("cause should be reachable through errors.Is")
	}
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || !vErr.Has("email") {
		t.Errorf("errors.As failed or field missing: %v", err)
	}
}
