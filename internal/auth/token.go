// Package auth holds the credential primitives: JWT issuance and password hashing.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type claims struct {
	TokenType domain.TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies HS256 access/refresh tokens.
// Verification does no I/O.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (i *TokenIssuer) IssuePair(userID int64) (domain.TokenPair, error) {
	access, err := i.issue(userID, domain.TokenAccess, i.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := i.issue(userID, domain.TokenRefresh, i.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{Access: access, Refresh: refresh}, nil
}

func (i *TokenIssuer) IssueAccess(userID int64) (string, error) {
	return i.issue(userID, domain.TokenAccess, i.accessTTL)
}

func (i *TokenIssuer) issue(userID int64, typ domain.TokenType, ttl time.Duration) (string, error) {
	now := i.now()
	c := claims{
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", typ, err)
	}
	return signed, nil
}

// Verify checks signature, expiry and token type, and returns the subject user id.
func (i *TokenIssuer) Verify(raw string, expected domain.TokenType) (int64, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return 0, domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return 0, domain.ErrTokenInvalidSignature
	default:
		return 0, fmt.Errorf("%w: %v", domain.ErrTokenMalformed, err)
	}

	if c.TokenType != expected {
		return 0, domain.ErrTokenWrongType
	}

	userID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("%w: bad subject %q", domain.ErrTokenMalformed, c.Subject)
	}
	return userID, nil
}
