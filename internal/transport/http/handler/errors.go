package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer = "Internal server error"
	errTokenNotValid  = "Given token not valid for any token type"
	errForbidden      = "You do not have permission to perform this action."
	errNotFound       = "Not found."
)

var notFoundEntities = []struct {
	err  error
	name string
}{
	{domain.ErrListingNotFound, "Listing"},
	{domain.ErrPropertyNotFound, "Property"},
	{domain.ErrPhotoNotFound, "Photo"},
	{domain.ErrCityNotFound, "City"},
	{domain.ErrDistrictNotFound, "District"},
	{domain.ErrMicrodistrictNotFound, "Microdistrict"},
	{domain.ErrCategoryNotFound, "Category"},
}

// respondError maps a usecase error onto a status code and JSON body.
// Anything unrecognised is logged under op and hidden behind a 500.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, verr.Fields)
	case errors.Is(err, domain.ErrUnauthorized), domain.IsTokenError(err):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": errTokenNotValid})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": errForbidden})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFoundMessage(c, err)})
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": errInternalServer})
	}
}

func notFoundMessage(c *gin.Context, err error) string {
	id := c.Param("id")
	if id == "" {
		return errNotFound
	}
	for _, e := range notFoundEntities {
		if errors.Is(err, e.err) {
			return fmt.Sprintf("%s with id=%s does not exist.", e.name, id)
		}
	}
	return errNotFound
}

// pathID parses the :id route parameter; a malformed id is answered with 404.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": errNotFound})
		return 0, false
	}
	return id, true
}

// queryID parses an optional numeric filter such as ?city=3.
func queryID(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, domain.NewFieldError(name, "A valid integer is required.")
	}
	return &id, nil
}
