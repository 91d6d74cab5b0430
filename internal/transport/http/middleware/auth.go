package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	applog "github.com/ErlanBelekov/estate-listings/internal/log"
	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "userID"
	ctxUser   = "user"

	errNoCredentials        = "Authentication credentials were not provided."
	errTokenNotValid        = "Given token not valid for any token type"
	errAlreadyAuthenticated = "You are already authenticated."
	errInternalServer       = "Internal server error"
)

// currentUserResolver is implemented by usecase.AuthUsecase.
type currentUserResolver interface {
	GetCurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}

// Auth requires a Bearer access token and sets "userID" and "user" in the gin context.
func Auth(resolver currentUserResolver, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": errNoCredentials})
			return
		}

		user, err := resolver.GetCurrentUser(c.Request.Context(), raw)
		if err != nil {
			abortResolveError(c, logger, err)
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// AnonymousOnly rejects callers that present a valid access token.
// A request without credentials passes; an invalid token is still a 401.
func AnonymousOnly(resolver currentUserResolver, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		if _, err := resolver.GetCurrentUser(c.Request.Context(), raw); err != nil {
			abortResolveError(c, logger, err)
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": errAlreadyAuthenticated})
	}
}

// UserID returns the id set by Auth, or 0 on unauthenticated routes.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(ctxUserID)
}

// CurrentUser returns the user set by Auth.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func setUser(c *gin.Context, user *domain.User) {
	c.Set(ctxUserID, user.ID)
	c.Set(ctxUser, user)
	c.Request = c.Request.WithContext(applog.WithUserID(c.Request.Context(), user.ID))
}

// bearerToken reports ok=false when no Bearer credentials were sent at all.
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return strings.TrimSpace(token), true
}

func abortResolveError(c *gin.Context, logger *slog.Logger, err error) {
	if errors.Is(err, domain.ErrUnauthorized) || domain.IsTokenError(err) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": errTokenNotValid})
		return
	}
	logger.ErrorContext(c.Request.Context(), "resolve current user", "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": errInternalServer})
}
