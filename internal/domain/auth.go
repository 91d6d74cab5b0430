package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8
	// EmailMaxLength matches users.email VARCHAR(150), counted in characters.
	EmailMaxLength = 150
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPasswordTooWeak    = errors.New("password too weak")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUserInactive       = errors.New("user is inactive")

	ErrTokenExpired          = errors.New("token is expired")
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
	ErrTokenWrongType        = errors.New("token has wrong type")
	ErrTokenMalformed        = errors.New("token is malformed")
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	IsStaff      bool
	IsSuperuser  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser is what the credential store needs to persist a user.
type NewUser struct {
	Email        string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
}

// UserFlags is a partial update of account flags; nil leaves a flag untouched.
type UserFlags struct {
	IsActive    *bool
	IsStaff     *bool
	IsSuperuser *bool
}

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type TokenPair struct {
	Access  string
	Refresh string
}

// NormalizeEmail trims surrounding whitespace and lowercases the whole address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckEmailLength rejects a normalized address longer than the column allows.
func CheckEmailLength(addr string) error {
	if utf8.RuneCountInString(addr) > EmailMaxLength {
		return NewFieldError("email", fmt.Sprintf("Ensure this field has no more than %d characters.", EmailMaxLength))
	}
	return nil
}

// NormalizePassword trims surrounding whitespace before hashing or verifying.
func NormalizePassword(password string) string {
	return strings.TrimSpace(password)
}

// IsTokenError reports whether err is one of the token verification failures.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalidSignature) ||
		errors.Is(err, ErrTokenWrongType) ||
		errors.Is(err, ErrTokenMalformed)
}
