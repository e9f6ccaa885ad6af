package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignIn exchanges an identity provider token for a session token
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.authService.SignIn(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}

// SignOut closes the caller's session
func (h *AuthHandler) SignOut(c *gin.Context) {
	session := middleware.Session(c)
	h.authService.SignOut(session.ID())
	c.Status(http.StatusNoContent)
}

// Refresh extends the session and returns a new token
func (h *AuthHandler) Refresh(c *gin.Context) {
	session := middleware.Session(c)
	token, expiresAt, err := h.authService.RefreshToken(session.ID())
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token, "expiresAt": expiresAt.Format(time.RFC3339)})
}

// Me returns the caller's current derived state
func (h *AuthHandler) Me(c *gin.Context) {
	response.Success(c, http.StatusOK, middleware.Session(c).State())
}

// UpdateFCMToken stores the device token used for push notifications
func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var req models.UpdateFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authService.UpdateFCMToken(c.Request.Context(), c.GetString(middleware.UserIDKey), req.FCMToken); err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "FCM token updated"})
}
