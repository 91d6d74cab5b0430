package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/auth"
	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/spf13/cobra"
)

// NewCreateSuperuserCmd creates an active staff superuser account.
func NewCreateSuperuserCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an administrator account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			user, err := createSuperuser(ctx, postgres.NewUserRepository(pool), auth.NewArgon2idHasher(), email, password)
			if err != nil {
				return err
			}
			cmd.Printf("superuser %s created (id=%d)\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// NewSetFlagsCmd toggles is_active, is_staff and is_superuser; unset flags are left alone.
func NewSetFlagsCmd() *cobra.Command {
	var email string
	var active, staff, superuser bool

	cmd := &cobra.Command{
		Use:   "set-flags",
		Short: "Change account flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := domain.UserFlags{}
			if cmd.Flags().Changed("active") {
				flags.IsActive = &active
			}
			if cmd.Flags().Changed("staff") {
				flags.IsStaff = &staff
			}
			if cmd.Flags().Changed("superuser") {
				flags.IsSuperuser = &superuser
			}
			if flags == (domain.UserFlags{}) {
				return errors.New("nothing to change: pass --active, --staff or --superuser")
			}

			ctx := cmd.Context()
			pool, err := openPool(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			user, err := postgres.NewUserRepository(pool).UpdateFlags(ctx, domain.NormalizeEmail(email), flags)
			if err != nil {
				return fmt.Errorf("update flags: %w", err)
			}
			cmd.Printf("%s: active=%t staff=%t superuser=%t\n", user.Email, user.IsActive, user.IsStaff, user.IsSuperuser)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().BoolVar(&active, "active", false, "set is_active")
	cmd.Flags().BoolVar(&staff, "staff", false, "set is_staff")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "set is_superuser")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func createSuperuser(
	ctx context.Context,
	users repository.UserRepository,
	hasher usecase.PasswordHasher,
	rawEmail, rawPassword string,
) (*domain.User, error) {
	addr := domain.NormalizeEmail(rawEmail)
	password := domain.NormalizePassword(rawPassword)
	if addr == "" {
		return nil, errors.New("email is required")
	}
	if err := domain.CheckEmailLength(addr); err != nil {
		return nil, fmt.Errorf("email longer than %d characters", domain.EmailMaxLength)
	}
	if len(password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("password must contain at least %d characters", domain.MinPasswordLength)
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := users.Create(ctx, domain.NewUser{
		Email:        addr,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, fmt.Errorf("user %s already exists: %w", addr, err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
