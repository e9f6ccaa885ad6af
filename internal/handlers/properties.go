package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type PropertyHandler struct {
	propertyService *services.PropertyService
}

func NewPropertyHandler(propertyService *services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// List returns active properties, filtered by query parameters
func (h *PropertyHandler) List(c *gin.Context) {
	var filter models.PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	properties, err := h.propertyService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, properties)
}

func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.propertyService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, property)
}

// ListMine returns the caller's active properties
func (h *PropertyHandler) ListMine(c *gin.Context) {
	properties, err := h.propertyService.GetUserProperties(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, properties)
}

func (h *PropertyHandler) Create(c *gin.Context) {
	var in models.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.propertyService.Create(c.Request.Context(), middleware.Actor(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *PropertyHandler) Update(c *gin.Context) {
	var in models.PropertyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.propertyService.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Delete deactivates the property
func (h *PropertyHandler) Delete(c *gin.Context) {
	if err := h.propertyService.Delete(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
