package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/middleware"
	"github.com/yourusername/estate-service/internal/models"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

type AuctionHandler struct {
	auctionService *services.AuctionService
}

func NewAuctionHandler(auctionService *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctionService: auctionService}
}

// ListAvailable returns upcoming Active auctions; city, propertyType and
// bankAgency query parameters filter it
func (h *AuctionHandler) ListAvailable(c *gin.Context) {
	var filter models.AuctionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	auctions, err := h.auctionService.ListAvailable(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, auctions)
}

func (h *AuctionHandler) Get(c *gin.Context) {
	auction, err := h.auctionService.Get(c.Request.Context(), middleware.Actor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, auction)
}

// ListMine returns the caller's auctions split into upcoming and past
func (h *AuctionHandler) ListMine(c *gin.Context) {
	mine, err := h.auctionService.ListMine(c.Request.Context(), middleware.Actor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, mine)
}

func (h *AuctionHandler) Create(c *gin.Context) {
	var in models.AuctionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.auctionService.Create(c.Request.Context(), middleware.Actor(c), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

func (h *AuctionHandler) Update(c *gin.Context) {
	var in models.AuctionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}

	updated, err := h.auctionService.Update(c.Request.Context(), middleware.Actor(c), c.Param("id"), &in)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Archive soft-deletes the auction
func (h *AuctionHandler) Archive(c *gin.Context) {
	if err := h.auctionService.Archive(c.Request.Context(), middleware.Actor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
