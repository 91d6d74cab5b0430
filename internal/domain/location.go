package domain

import (
	"fmt"
	"time"
)

var (
	ErrCityNotFound          = fmt.Errorf("city %w", ErrNotFound)
	ErrDistrictNotFound      = fmt.Errorf("district %w", ErrNotFound)
	ErrMicrodistrictNotFound = fmt.Errorf("microdistrict %w", ErrNotFound)
	ErrCategoryNotFound      = fmt.Errorf("category %w", ErrNotFound)
)

type City struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type District struct {
	ID        int64
	CityID    int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time

	City *City
}

type Microdistrict struct {
	ID         int64
	DistrictID int64
	Name       string
	Slug       string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	District *District
}

// Category is a node of a self-referential tree; a nil ParentID marks a root.
type Category struct {
	ID         int64
	ParentID   *int64
	Name       string
	Slug       string
	ParentName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
