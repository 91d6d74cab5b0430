package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

// listingUsecaser is the subset of ListingUsecase the handler needs.
type listingUsecaser interface {
	Create(ctx context.Context, input usecase.CreateListingInput) (*domain.Listing, error)
	List(ctx context.Context, status domain.ListingStatus) ([]*domain.Listing, error)
	ListMine(ctx context.Context, ownerID int64) ([]*domain.Listing, error)
	Get(ctx context.Context, id int64) (*domain.Listing, error)
	Update(ctx context.Context, id, actingUserID int64, input usecase.UpdateListingInput) (*domain.Listing, error)
	Delete(ctx context.Context, id, actingUserID int64) error
	Publish(ctx context.Context, id, actingUserID int64) (*domain.Listing, error)
	Archive(ctx context.Context, id, actingUserID int64) (*domain.Listing, error)
}

type ListingHandler struct {
	listingUsecase listingUsecaser
	logger         *slog.Logger
}

func NewListingHandler(listingUsecase listingUsecaser, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{listingUsecase: listingUsecase, logger: logger.With("component", "listing_handler")}
}

type createListingRequest struct {
	PropertyID  int64       `json:"property"    binding:"required,gte=1"`
	Title       string      `json:"title"       binding:"required,max=100"`
	Description string      `json:"description"`
	Price       decimalText `json:"price"       binding:"required"`
	Currency    string      `json:"currency"    binding:"omitempty,len=3,alpha"`
	IsTop       bool        `json:"is_top"`
}

type updateListingRequest struct {
	Title       *string      `json:"title"       binding:"omitempty,max=100"`
	Description *string      `json:"description"`
	Price       *decimalText `json:"price"`
	Currency    *string      `json:"currency"    binding:"omitempty,len=3,alpha"`
	IsTop       *bool        `json:"is_top"`
}

type listingResponse struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Price         string               `json:"price"`
	Currency      string               `json:"currency"`
	Status        domain.ListingStatus `json:"status"`
	StatusDisplay string               `json:"status_display"`
	IsTop         bool                 `json:"is_top"`
	PublishedAt   *time.Time           `json:"published_at"`
	OwnerID       int64                `json:"owner"`
	PropertyID    int64                `json:"property_id"`
	Property      *propertyResponse    `json:"property,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

func toListingResponse(l *domain.Listing) listingResponse {
	resp := listingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Price:         l.Price,
		Currency:      l.Currency,
		Status:        l.Status,
		StatusDisplay: l.Status.Display(),
		IsTop:         l.IsTop,
		PublishedAt:   l.PublishedAt,
		OwnerID:       l.OwnerID,
		PropertyID:    l.PropertyID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.Property != nil {
		p := toPropertyResponse(l.Property)
		resp.Property = &p
	}
	return resp
}

func toListingResponses(listings []*domain.Listing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingResponse(l))
	}
	return out
}

// GET /api/listings?status=published
func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listingUsecase.List(c.Request.Context(), domain.ListingStatus(c.Query("status")))
	if err != nil {
		respondError(c, h.logger, "list listings", err)
		return
	}
	c.JSON(http.StatusOK, toListingResponses(listings))
}

// GET /api/listings/my
func (h *ListingHandler) ListMine(c *gin.Context) {
	listings, err := h.listingUsecase.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, "list own listings", err)
		return
	}
	c.JSON(http.StatusOK, toListingResponses(listings))
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind listing", err)
		return
	}

	l, err := h.listingUsecase.Create(c.Request.Context(), usecase.CreateListingInput{
		OwnerID:     middleware.UserID(c),
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Price:       string(req.Price),
		Currency:    req.Currency,
		IsTop:       req.IsTop,
	})
	if err != nil {
		respondError(c, h.logger, "create listing", err)
		return
	}
	c.JSON(http.StatusCreated, toListingResponse(l))
}

func (h *ListingHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	l, err := h.listingUsecase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get listing", err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(l))
}

func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateListingRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind listing", err)
		return
	}

	l, err := h.listingUsecase.Update(c.Request.Context(), id, middleware.UserID(c), usecase.UpdateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price.ptr(),
		Currency:    req.Currency,
		IsTop:       req.IsTop,
	})
	if err != nil {
		respondError(c, h.logger, "update listing", err)
		return
	}
	c.JSON(http.StatusOK, toListingResponse(l))
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.listingUsecase.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, "delete listing", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/listings/:id/publish
func (h *ListingHandler) Publish(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.listingUsecase.Publish(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, "publish listing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing published"})
}

// POST /api/listings/:id/archive
func (h *ListingHandler) Archive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.listingUsecase.Archive(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, "archive listing", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Listing archived"})
}
