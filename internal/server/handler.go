package server

import (
	"context"
	"net/http"
	"strings"

	"sjsage522/pricecompare/internal/crawler"
	"sjsage522/pricecompare/internal/presenter"
	"sjsage522/pricecompare/logger"
	apperrors "sjsage522/pricecompare/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Comparer runs one comparison and returns a listing per store
type Comparer interface {
	Compare(ctx context.Context, query string) []crawler.Listing
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	comparer Comparer
	log      *logger.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(comparer Comparer) *Handler {
	return &Handler{
		comparer: comparer,
		log:      logger.ForServer(),
	}
}

// compareRequest is the body accepted by POST /compare
type compareRequest struct {
	Product string `json:"product"`
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Compare runs a comparison for the requested product
func (h *Handler) Compare(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("Unreadable compare request")
	}

	product := strings.TrimSpace(req.Product)
	if product == "" {
		err := apperrors.NewValidation("", "No product provided")
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Message})
		return
	}

	listings := h.comparer.Compare(c.Request.Context(), product)
	c.JSON(http.StatusOK, presenter.NewPayload(listings))
}
