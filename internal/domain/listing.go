package domain

import (
	"errors"
	"fmt"
	"time"
)

type ListingStatus string

const (
	ListingDraft     ListingStatus = "draft"
	ListingPublished ListingStatus = "published"
	ListingArchived  ListingStatus = "archived"
)

// Display returns the human readable label of the status.
func (s ListingStatus) Display() string {
	switch s {
	case ListingDraft:
		return "Draft"
	case ListingPublished:
		return "Published"
	case ListingArchived:
		return "Archived"
	default:
		return string(s)
	}
}

const DefaultCurrency = "KZT"

var (
	ErrListingNotFound  = fmt.Errorf("listing %w", ErrNotFound)
	ErrPropertyNotFound = fmt.Errorf("property %w", ErrNotFound)
	ErrPhotoNotFound    = fmt.Errorf("photo %w", ErrNotFound)

	// ErrListingStatusConflict means a conditional status write matched no row:
	// the listing is gone or has left the expected source status.
	ErrListingStatusConflict = errors.New("listing status changed concurrently")
)

type Listing struct {
	ID          int64
	PropertyID  int64
	OwnerID     int64
	Title       string
	Description string
	Price       string // NUMERIC(12,2) in decimal text form
	Currency    string
	Status      ListingStatus
	IsTop       bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Property is populated by reads that join the property row.
	Property *Property
}

func (l *Listing) OwnerUserID() int64 { return l.OwnerID }

// Publish moves a draft into published and stamps PublishedAt.
// Publishing an already published listing is a no-op and reports changed=false.
func (l *Listing) Publish(now time.Time) (changed bool, err error) {
	switch l.Status {
	case ListingPublished:
		return false, nil
	case ListingArchived:
		return false, NewFieldError("status", "Archived listing cannot be published.")
	}
	l.Status = ListingPublished
	l.PublishedAt = &now
	return true, nil
}

// PublishableFrom and ArchivableFrom are the source statuses each transition accepts.
var (
	PublishableFrom = []ListingStatus{ListingDraft}
	ArchivableFrom  = []ListingStatus{ListingDraft, ListingPublished}
)

// Archive moves a draft or published listing into archived.
func (l *Listing) Archive() (changed bool) {
	if l.Status == ListingArchived {
		return false
	}
	l.Status = ListingArchived
	return true
}

type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyCommercial PropertyType = "commercial"
	PropertyLand       PropertyType = "land"
)

type Property struct {
	ID            int64
	Title         string
	PropertyType  PropertyType
	City          string
	Address       string
	Rooms         int
	TotalArea     string
	LivingArea    *string
	Floor         *int
	TotalFloors   *int
	YearBuilt     *int
	Latitude      *string
	Longitude     *string
	IsNewBuilding bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Photo struct {
	ID        int64
	ListingID int64
	ImageURL  string
	IsMain    bool
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}
