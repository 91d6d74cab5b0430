package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/estate-listings/internal/domain"
	"github.com/ErlanBelekov/estate-listings/internal/usecase"
	"github.com/gin-gonic/gin"
)

type PropertyHandler struct {
	propertyUsecase *usecase.PropertyUsecase
	logger          *slog.Logger
}

func NewPropertyHandler(propertyUsecase *usecase.PropertyUsecase, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{propertyUsecase: propertyUsecase, logger: logger.With("component", "property_handler")}
}

type createPropertyRequest struct {
	Title         string              `json:"title"          binding:"required,max=100"`
	PropertyType  domain.PropertyType `json:"property_type"  binding:"omitempty,oneof=apartment house commercial land"`
	City          string              `json:"city"           binding:"max=100"`
	Address       string              `json:"address"        binding:"required,max=100"`
	Rooms         int                 `json:"rooms"          binding:"gte=0,lte=1000"`
	TotalArea     decimalText         `json:"total_area"     binding:"required"`
	LivingArea    *decimalText        `json:"living_area"`
	Floor         *int                `json:"floor"          binding:"omitempty,gte=0,lte=300"`
	TotalFloors   *int                `json:"total_floors"   binding:"omitempty,gte=1,lte=300"`
	YearBuilt     *int                `json:"year_built"     binding:"omitempty,gte=1800,lte=2100"`
	Latitude      *decimalText        `json:"latitude"`
	Longitude     *decimalText        `json:"longitude"`
	IsNewBuilding bool                `json:"is_new_building"`
}

type updatePropertyRequest struct {
	Title         *string              `json:"title"          binding:"omitempty,max=100"`
	PropertyType  *domain.PropertyType `json:"property_type"  binding:"omitempty,oneof=apartment house commercial land"`
	City          *string              `json:"city"           binding:"omitempty,max=100"`
	Address       *string              `json:"address"        binding:"omitempty,max=100"`
	Rooms         *int                 `json:"rooms"          binding:"omitempty,gte=0,lte=1000"`
	TotalArea     *decimalText         `json:"total_area"`
	LivingArea    *decimalText         `json:"living_area"`
	Floor         *int                 `json:"floor"          binding:"omitempty,gte=0,lte=300"`
	TotalFloors   *int                 `json:"total_floors"   binding:"omitempty,gte=1,lte=300"`
	YearBuilt     *int                 `json:"year_built"     binding:"omitempty,gte=1800,lte=2100"`
	Latitude      *decimalText         `json:"latitude"`
	Longitude     *decimalText         `json:"longitude"`
	IsNewBuilding *bool                `json:"is_new_building"`
}

type propertyResponse struct {
	ID            int64               `json:"id"`
	Title         string              `json:"title"`
	PropertyType  domain.PropertyType `json:"property_type"`
	City          string              `json:"city_name"`
	Address       string              `json:"address"`
	Rooms         int                 `json:"rooms"`
	TotalArea     string              `json:"total_area"`
	LivingArea    *string             `json:"living_area"`
	Floor         *int                `json:"floor"`
	TotalFloors   *int                `json:"total_floors"`
	YearBuilt     *int                `json:"year_built"`
	Latitude      *string             `json:"latitude"`
	Longitude     *string             `json:"longitude"`
	IsNewBuilding bool                `json:"is_new_building"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:            p.ID,
		Title:         p.Title,
		PropertyType:  p.PropertyType,
		City:          p.City,
		Address:       p.Address,
		Rooms:         p.Rooms,
		TotalArea:     p.TotalArea,
		LivingArea:    p.LivingArea,
		Floor:         p.Floor,
		TotalFloors:   p.TotalFloors,
		YearBuilt:     p.YearBuilt,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		IsNewBuilding: p.IsNewBuilding,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var req createPropertyRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind property", err)
		return
	}

	p, err := h.propertyUsecase.Create(c.Request.Context(), &domain.Property{
		Title:         req.Title,
		PropertyType:  req.PropertyType,
		City:          req.City,
		Address:       req.Address,
		Rooms:         req.Rooms,
		TotalArea:     string(req.TotalArea),
		LivingArea:    req.LivingArea.ptr(),
		Floor:         req.Floor,
		TotalFloors:   req.TotalFloors,
		YearBuilt:     req.YearBuilt,
		Latitude:      req.Latitude.ptr(),
		Longitude:     req.Longitude.ptr(),
		IsNewBuilding: req.IsNewBuilding,
	})
	if err != nil {
		respondError(c, h.logger, "create property", err)
		return
	}

	c.JSON(http.StatusCreated, toPropertyResponse(p))
}

func (h *PropertyHandler) List(c *gin.Context) {
	props, err := h.propertyUsecase.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list properties", err)
		return
	}

	out := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, toPropertyResponse(p))
	}
	c.JSON(http.StatusOK, out)
}

func (h *PropertyHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.propertyUsecase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get property", err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updatePropertyRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.logger, "bind property", err)
		return
	}

	p, err := h.propertyUsecase.Update(c.Request.Context(), id, usecase.UpdatePropertyInput{
		Title:         req.Title,
		PropertyType:  req.PropertyType,
		City:          req.City,
		Address:       req.Address,
		Rooms:         req.Rooms,
		TotalArea:     req.TotalArea.ptr(),
		LivingArea:    req.LivingArea.ptr(),
		Floor:         req.Floor,
		TotalFloors:   req.TotalFloors,
		YearBuilt:     req.YearBuilt,
		Latitude:      req.Latitude.ptr(),
		Longitude:     req.Longitude.ptr(),
		IsNewBuilding: req.IsNewBuilding,
	})
	if err != nil {
		respondError(c, h.logger, "update property", err)
		return
	}
	c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.propertyUsecase.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete property", err)
		return
	}
	c.Status(http.StatusNoContent)
}
