package handler

import (
	"log"
	"net/http"

	"nexify_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the public per-collection counts
type StatsHandler struct {
	service service.StatsService
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(s service.StatsService) *StatsHandler {
	return &StatsHandler{service: s}
}

func (h *StatsHandler) GetCollectionLengths(c *gin.Context) {
	counts, err := h.service.CollectionLengths(c.Request.Context())
	if err != nil {
		log.Printf("Error getting collection lengths: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve collection lengths"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

// RegisterStatsRoutes registers the statistics route
func (h *StatsHandler) RegisterStatsRoutes(rg *gin.RouterGroup) {
	rg.GET("/collectionLength", h.GetCollectionLengths)
}
