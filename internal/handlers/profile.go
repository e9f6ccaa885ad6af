package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/access"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type ProfileHandler struct {
	userService *services.UserService
}

func NewProfileHandler(userService *services.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

// GetProfile returns the caller's profile document, or null before the
// profile has been completed
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	response.Success(c, http.StatusOK, middleware.Session(c).State().Profile)
}

// SaveProfile completes or edits the caller's profile. The response state
// already includes the write.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	state, err := h.userService.SaveProfile(c.Request.Context(), middleware.Session(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, state)
}

// ContactSupport lets any signed-in caller, blocked or not, reach the admins
func (h *ProfileHandler) ContactSupport(c *gin.Context) {
	var req models.SupportRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.userService.ContactSupport(c.Request.Context(), middleware.Session(c), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Navigate tells the UI router what to render for ?path=
func Navigate(c *gin.Context) {
	path := c.DefaultQuery("path", "/")
	response.Success(c, http.StatusOK, access.Navigate(middleware.State(c), path))
}
