package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, users)
}

// SetBlocked blocks or unblocks a user
func (h *AdminHandler) SetBlocked(c *gin.Context) {
	var req models.BlockUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.adminService.SetBlocked(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Blocked)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// ListSupport returns the newest support requests; ?limit= caps the count
func (h *AdminHandler) ListSupport(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	requests, err := h.adminService.ListSupportRequests(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requests)
}
