package repository

import (
	"context"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
)

// UserRepository is the credential store. Emails passed in are already normalized.
type UserRepository interface {
	Create(ctx context.Context, u domain.NewUser) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateFlags(ctx context.Context, email string, flags domain.UserFlags) (*domain.User, error)
}
