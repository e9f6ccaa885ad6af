package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	properties, err := h.favoriteService.List(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, properties)
}

func (h *FavoriteHandler) Status(c *gin.Context) {
	status, err := h.favoriteService.IsFavorite(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("propertyId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	propertyID := c.Param("propertyId")
	if err := h.favoriteService.Add(c.Request.Context(), c.GetString(middleware.UserIDKey), propertyID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, models.FavoriteStatus{PropertyID: propertyID, Favorite: true})
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	propertyID := c.Param("propertyId")
	if err := h.favoriteService.Remove(c.Request.Context(), c.GetString(middleware.UserIDKey), propertyID); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, models.FavoriteStatus{PropertyID: propertyID, Favorite: false})
}

func (h *FavoriteHandler) Toggle(c *gin.Context) {
	status, err := h.favoriteService.Toggle(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("propertyId"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}
