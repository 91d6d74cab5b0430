package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationUsecase *usecase.LocationUsecase
	logger          *slog.Logger
}

func NewLocationHandler(locationUsecase *usecase.LocationUsecase, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{locationUsecase: locationUsecase, logger: logger.With("component", "location_handler")}
}

type createCityRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"required,max=100,slug"`
}

type createDistrictRequest struct {
	CityID int64  `json:"city" binding:"required,gte=1"`
	Name   string `json:"name" binding:"required,max=100"`
	Slug   string `json:"slug" binding:"required,max=100,slug"`
}

type createMicrodistrictRequest struct {
	DistrictID int64  `json:"district" binding:"required,gte=1"`
	Name       string `json:"name"     binding:"required,max=100"`
	Slug       string `json:"slug"     binding:"required,max=100,slug"`
}

type createCategoryRequest struct {
	ParentID *int64 `json:"parent" binding:"omitempty,gte=1"`
	Name     string `json:"name"   binding:"required,max=100"`
	Slug     string `json:"slug"   binding:"required,max=100,slug"`
}

type updateLocationRequest struct {
	Name *string `json:"name" binding:"omitempty,max=100"`
	Slug *string `json:"slug" binding:"omitempty,max=100,slug"`
}

type updateDistrictRequest struct {
	updateLocationRequest
	CityID *int64 `json:"city" binding:"omitempty,gte=1"`
}

type updateMicrodistrictRequest struct {
	updateLocationRequest
	DistrictID *int64 `json:"district" binding:"omitempty,gte=1"`
}

type updateCategoryRequest struct {
	updateLocationRequest
	Parent nullableID `json:"parent"`
}

// nullableID tells an absent key apart from an explicit null.
type nullableID struct {
	Set   bool
	Value *int64
}

func (n *nullableID) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var id int64
	if err := json.Unmarshal(b, &id); err != nil {
		return err
	}
	n.Value = &id
	return nil
}

type cityResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type districtResponse struct {
	ID   int64         `json:"id"`
	Name string        `json:"name"`
	Slug string        `json:"slug"`
	City *cityResponse `json:"city"`
}

type microdistrictResponse struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Slug     string            `json:"slug"`
	District *districtResponse `json:"district"`
}

type categoryResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ParentID   *int64 `json:"parent"`
	ParentName string `json:"parent_name"`
}

func toCityResponse(c *domain.City) *cityResponse {
	if c == nil {
		return nil
	}
	return &cityResponse{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toDistrictResponse(d *domain.District) *districtResponse {
	if d == nil {
		return nil
	}
	city := toCityResponse(d.City)
	if city == nil {
		city = &cityResponse{ID: d.CityID}
	}
	return &districtResponse{ID: d.ID, Name: d.Name, Slug: d.Slug, City: city}
}

func toMicrodistrictResponse(m *domain.Microdistrict) *microdistrictResponse {
	district := toDistrictResponse(m.District)
	if district == nil {
		district = &districtResponse{ID: m.DistrictID}
	}
	return &microdistrictResponse{ID: m.ID, Name: m.Name, Slug: m.Slug, District: district}
}

func toCategoryResponse(c *domain.Category) *categoryResponse {
	return &categoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, ParentID: c.ParentID, ParentName: c.ParentName}
}

func mapAll[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// ---- cities ----

func (h *LocationHandler) CreateCity(c *gin.Context) {
	var req createCityRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind city", err)
		return
	}

	city, err := h.locationUsecase.CreateCity(c.Request.Context(), &domain.City{Name: req.Name, Slug: req.Slug})
	if err != nil {
		respondError(c, h.logger, "create city", err)
		return
	}
	c.JSON(http.StatusCreated, toCityResponse(city))
}

func (h *LocationHandler) ListCities(c *gin.Context) {
	cities, err := h.locationUsecase.ListCities(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list cities", err)
		return
	}
	c.JSON(http.StatusOK, mapAll(cities, toCityResponse))
}

func (h *LocationHandler) GetCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	city, err := h.locationUsecase.GetCity(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get city", err)
		return
	}
	c.JSON(http.StatusOK, toCityResponse(city))
}

func (h *LocationHandler) UpdateCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateLocationRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind city", err)
		return
	}

	city, err := h.locationUsecase.UpdateCity(c.Request.Context(), id, usecase.UpdateLocationInput{Name: req.Name, Slug: req.Slug})
	if err != nil {
		respondError(c, h.logger, "update city", err)
		return
	}
	c.JSON(http.StatusOK, toCityResponse(city))
}

func (h *LocationHandler) DeleteCity(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.locationUsecase.DeleteCity(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete city", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- districts ----

func (h *LocationHandler) CreateDistrict(c *gin.Context) {
	var req createDistrictRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind district", err)
		return
	}

	d, err := h.locationUsecase.CreateDistrict(c.Request.Context(), &domain.District{
		CityID: req.CityID,
		Name:   req.Name,
		Slug:   req.Slug,
	})
	if err != nil {
		respondError(c, h.logger, "create district", err)
		return
	}
	c.JSON(http.StatusCreated, toDistrictResponse(d))
}

// GET /api/locations/districts?city=<id>
func (h *LocationHandler) ListDistricts(c *gin.Context) {
	cityID, err := queryID(c, "city")
	if err != nil {
		respondError(c, h.logger, "parse city filter", err)
		return
	}
	districts, err := h.locationUsecase.ListDistricts(c.Request.Context(), cityID)
	if err != nil {
		respondError(c, h.logger, "list districts", err)
		return
	}
	c.JSON(http.StatusOK, mapAll(districts, toDistrictResponse))
}

func (h *LocationHandler) GetDistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.locationUsecase.GetDistrict(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get district", err)
		return
	}
	c.JSON(http.StatusOK, toDistrictResponse(d))
}

func (h *LocationHandler) UpdateDistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateDistrictRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind district", err)
		return
	}

	d, err := h.locationUsecase.UpdateDistrict(c.Request.Context(), id, usecase.UpdateLocationInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.CityID,
	})
	if err != nil {
		respondError(c, h.logger, "update district", err)
		return
	}
	c.JSON(http.StatusOK, toDistrictResponse(d))
}

func (h *LocationHandler) DeleteDistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.locationUsecase.DeleteDistrict(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete district", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- microdistricts ----

func (h *LocationHandler) CreateMicrodistrict(c *gin.Context) {
	var req createMicrodistrictRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind microdistrict", err)
		return
	}

	m, err := h.locationUsecase.CreateMicrodistrict(c.Request.Context(), &domain.Microdistrict{
		DistrictID: req.DistrictID,
		Name:       req.Name,
		Slug:       req.Slug,
	})
	if err != nil {
		respondError(c, h.logger, "create microdistrict", err)
		return
	}
	c.JSON(http.StatusCreated, toMicrodistrictResponse(m))
}

// GET /api/locations/microdistricts?district=<id>
func (h *LocationHandler) ListMicrodistricts(c *gin.Context) {
	districtID, err := queryID(c, "district")
	if err != nil {
		respondError(c, h.logger, "parse district filter", err)
		return
	}
	items, err := h.locationUsecase.ListMicrodistricts(c.Request.Context(), districtID)
	if err != nil {
		respondError(c, h.logger, "list microdistricts", err)
		return
	}
	c.JSON(http.StatusOK, mapAll(items, toMicrodistrictResponse))
}

func (h *LocationHandler) GetMicrodistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := h.locationUsecase.GetMicrodistrict(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get microdistrict", err)
		return
	}
	c.JSON(http.StatusOK, toMicrodistrictResponse(m))
}

func (h *LocationHandler) UpdateMicrodistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateMicrodistrictRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind microdistrict", err)
		return
	}

	m, err := h.locationUsecase.UpdateMicrodistrict(c.Request.Context(), id, usecase.UpdateLocationInput{
		Name:     req.Name,
		Slug:     req.Slug,
		ParentID: req.DistrictID,
	})
	if err != nil {
		respondError(c, h.logger, "update microdistrict", err)
		return
	}
	c.JSON(http.StatusOK, toMicrodistrictResponse(m))
}

func (h *LocationHandler) DeleteMicrodistrict(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.locationUsecase.DeleteMicrodistrict(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete microdistrict", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---- categories ----

func (h *LocationHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind category", err)
		return
	}

	cat, err := h.locationUsecase.CreateCategory(c.Request.Context(), &domain.Category{
		ParentID: req.ParentID,
		Name:     req.Name,
		Slug:     req.Slug,
	})
	if err != nil {
		respondError(c, h.logger, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

// GET /api/locations/categories?parent=<id>
func (h *LocationHandler) ListCategories(c *gin.Context) {
	parentID, err := queryID(c, "parent")
	if err != nil {
		respondError(c, h.logger, "parse parent filter", err)
		return
	}
	items, err := h.locationUsecase.ListCategories(c.Request.Context(), parentID)
	if err != nil {
		respondError(c, h.logger, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, mapAll(items, toCategoryResponse))
}

func (h *LocationHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := h.locationUsecase.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get category", err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *LocationHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind category", err)
		return
	}

	cat, err := h.locationUsecase.UpdateCategory(c.Request.Context(), id, usecase.UpdateCategoryInput{
		Name:      req.Name,
		Slug:      req.Slug,
		SetParent: req.Parent.Set,
		ParentID:  req.Parent.Value,
	})
	if err != nil {
		respondError(c, h.logger, "update category", err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *LocationHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.locationUsecase.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete category", err)
		return
	}
	c.Status(http.StatusNoContent)
}
