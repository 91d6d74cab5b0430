package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/transport/http/middleware"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photoUsecase *usecase.PhotoUsecase
	logger       *slog.Logger
}

func NewPhotoHandler(photoUsecase *usecase.PhotoUsecase, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{photoUsecase: photoUsecase, logger: logger.With("component", "photo_handler")}
}

type createPhotoRequest struct {
	ListingID int64  `json:"listing"   binding:"required,gte=1"`
	ImageURL  string `json:"image_url" binding:"required,url,max=500"`
	IsMain    bool   `json:"is_main"`
	Order     int    `json:"order"     binding:"gte=0,lte=2147483647"`
}

type photoResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing"`
	ImageURL  string    `json:"image_url"`
	IsMain    bool      `json:"is_main"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

func toPhotoResponse(p *domain.Photo) photoResponse {
	return photoResponse{
		ID:        p.ID,
		ListingID: p.ListingID,
		ImageURL:  p.ImageURL,
		IsMain:    p.IsMain,
		Order:     p.Order,
		CreatedAt: p.CreatedAt,
	}
}

func (h *PhotoHandler) Create(c *gin.Context) {
	var req createPhotoRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind photo", err)
		return
	}

	p, err := h.photoUsecase.Create(c.Request.Context(), middleware.UserID(c), usecase.CreatePhotoInput{
		ListingID: req.ListingID,
		ImageURL:  req.ImageURL,
		IsMain:    req.IsMain,
		Order:     req.Order,
	})
	if err != nil {
		respondError(c, h.logger, "create photo", err)
		return
	}
	c.JSON(http.StatusCreated, toPhotoResponse(p))
}

// GET /api/photos?listing=<id>
func (h *PhotoHandler) List(c *gin.Context) {
	listingID, err := queryID(c, "listing")
	if err != nil {
		respondError(c, h.logger, "parse listing filter", err)
		return
	}

	photos, err := h.photoUsecase.List(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, h.logger, "list photos", err)
		return
	}

	out := make([]photoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, toPhotoResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PhotoHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.photoUsecase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get photo", err)
		return
	}
	c.JSON(http.StatusOK, toPhotoResponse(p))
}

func (h *PhotoHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.photoUsecase.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		respondError(c, h.logger, "delete photo", err)
		return
	}
	c.Status(http.StatusNoContent)
}
