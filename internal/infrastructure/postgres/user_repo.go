package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, is_active, is_staff, is_superuser, created_at, updated_at`

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u domain.NewUser) (*domain.User, error) {
	query := `
		INSERT INTO users (email, password_hash, is_staff, is_superuser)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, u.Email, u.PasswordHash, u.IsStaff, u.IsSuperuser)
	created, err := scanUser(row)
	if err != nil {
		if _, ok := isUniqueViolation(err); ok {
			return nil, domain.ErrEmailAlreadyExists
		}
		if verr := rejectedInput(err); verr != nil {
			return nil, verr
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateFlags leaves a column untouched when its flag is nil.
func (r *UserRepository) UpdateFlags(ctx context.Context, email string, flags domain.UserFlags) (*domain.User, error) {
	query := `
		UPDATE users SET
			is_active    = COALESCE($2, is_active),
			is_staff     = COALESCE($3, is_staff),
			is_superuser = COALESCE($4, is_superuser),
			updated_at   = NOW()
		WHERE email = $1
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query, email, flags.IsActive, flags.IsStaff, flags.IsSuperuser)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash,
		&u.IsActive, &u.IsStaff, &u.IsSuperuser,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
