package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type RoleRequestHandler struct {
	roleRequestService *services.RoleRequestService
}

func NewRoleRequestHandler(roleRequestService *services.RoleRequestService) *RoleRequestHandler {
	return &RoleRequestHandler{roleRequestService: roleRequestService}
}

// Submit files a request for a higher role
func (h *RoleRequestHandler) Submit(c *gin.Context) {
	var req models.SubmitRoleRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.roleRequestService.Submit(c.Request.Context(), middleware.Actor(c), req.RequestedRole)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Check reports whether the caller already has a pending request for ?role=
func (h *RoleRequestHandler) Check(c *gin.Context) {
	role, err := models.ParseRole(c.Query("role"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", err.Error())
		return
	}

	exists, err := h.roleRequestService.CheckExisting(c.Request.Context(), c.GetString(middleware.UserIDKey), role)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, models.CheckRoleRequestResponse{Exists: exists})
}

// ListMine returns the caller's own requests
func (h *RoleRequestHandler) ListMine(c *gin.Context) {
	requests, err := h.roleRequestService.ListMine(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, requests)
}

// List returns requests joined with their requester; ?status= narrows it
func (h *RoleRequestHandler) List(c *gin.Context) {
	status := models.RequestStatus(c.Query("status"))
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusRejected:
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status must be pending, approved or rejected")
		return
	}

	views, err := h.roleRequestService.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, views)
}

// Process approves or rejects a pending request
func (h *RoleRequestHandler) Process(c *gin.Context) {
	var req models.ProcessRoleRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	processed, err := h.roleRequestService.Process(c.Request.Context(), middleware.Actor(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, processed)
}
