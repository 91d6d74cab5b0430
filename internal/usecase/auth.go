package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/email"
	"github.com/ErlanBelekov/estate-listings/internal/metrics"
	"github.com/ErlanBelekov/estate-listings/internal/repository"
)

// PasswordHasher is implemented by auth.Argon2idHasher.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenIssuer is implemented by auth.TokenIssuer.
type TokenIssuer interface {
	IssuePair(userID int64) (domain.TokenPair, error)
	IssueAccess(userID int64) (string, error)
	Verify(raw string, expected domain.TokenType) (int64, error)
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	emailSender email.Sender,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

// Register creates an account and returns a fresh token pair.
// The welcome email is best-effort: a send failure is logged, never returned.
func (u *AuthUsecase) Register(ctx context.Context, rawEmail, rawPassword string) (*AuthResult, error) {
	addr := domain.NormalizeEmail(rawEmail)
	password := domain.NormalizePassword(rawPassword)

	if err := domain.CheckEmailLength(addr); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid_email").Inc()
		return nil, err
	}

	_, err := u.users.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
		return nil, emailTaken()
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	if len(password) < domain.MinPasswordLength {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "weak_password").Inc()
		return nil, passwordTooShort("password")
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, domain.NewUser{Email: addr, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate").Inc()
			return nil, emailTaken()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	pair, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := u.email.Send(ctx, email.Welcome(user.Email)); err != nil {
		u.logger.WarnContext(ctx, "welcome email failed", "user_id", user.ID, "error", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()
	return &AuthResult{User: user, Tokens: pair}, nil
}

func (u *AuthUsecase) Login(ctx context.Context, rawEmail, rawPassword string) (*AuthResult, error) {
	addr := domain.NormalizeEmail(rawEmail)

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "unknown_email").Inc()
			return nil, domain.NewFieldError("email", "User with this email does not exist.").
				WithCause(domain.ErrUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "inactive").Inc()
		return nil, domain.NewFieldError("email", "User account is disabled.").
			WithCause(domain.ErrUserInactive)
	}

	ok, err := u.hasher.Verify(domain.NormalizePassword(rawPassword), user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "bad_password").Inc()
		return nil, domain.NewFieldError("password", "Invalid password.").
			WithCause(domain.ErrInvalidPassword)
	}

	pair, err := u.tokens.IssuePair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()
	return &AuthResult{User: user, Tokens: pair}, nil
}

// GetCurrentUser resolves an access token to an active user.
// Token errors are returned as is; a missing or inactive user is ErrUnauthorized.
func (u *AuthUsecase) GetCurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, err := u.tokens.Verify(accessToken, domain.TokenAccess)
	if err != nil {
		return nil, err
	}
	return u.activeUser(ctx, userID)
}

// Refresh exchanges a refresh token for a new access token.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := u.tokens.Verify(refreshToken, domain.TokenRefresh)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("refresh", "invalid_token").Inc()
		return "", err
	}

	user, err := u.activeUser(ctx, userID)
	if err != nil {
		return "", err
	}

	access, err := u.tokens.IssueAccess(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("refresh", "success").Inc()
	return access, nil
}

func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	user, err := u.activeUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := u.hasher.Verify(domain.NormalizePassword(oldPassword), user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.NewFieldError("old_password", "Invalid password.").WithCause(domain.ErrInvalidPassword)
	}

	next := domain.NormalizePassword(newPassword)
	if len(next) < domain.MinPasswordLength {
		return passwordTooShort("new_password")
	}

	hash, err := u.hasher.Hash(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	u.logger.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}

func (u *AuthUsecase) activeUser(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

func emailTaken() error {
	return domain.NewFieldError("email", "User with this email already exists.").
		WithCause(domain.ErrEmailAlreadyExists)
}

func passwordTooShort(field string) error {
	return domain.NewFieldError(field,
		fmt.Sprintf("This password is too short. It must contain at least %d characters.", domain.MinPasswordLength),
	).WithCause(domain.ErrPasswordTooWeak)
}
