package handler

import (
	"log"
	"net/http"

	"nexify_backend/internal/model"
	"nexify_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ReviewHandler handles review requests
type ReviewHandler struct {
	service service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(s service.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: s}
}

// CreateReview posts a review; reviews are immutable once created
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), email, req)
	if err != nil {
		log.Printf("Error creating review: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, review)
}

// GetAllReviews returns every review
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	reviews, err := h.service.GetAllReviews(c.Request.Context())
	if err != nil {
		log.Printf("Error getting reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// GetReviewsByProduct returns the reviews for one product; an unknown
// product id is an empty-array success, not a 404
func (h *ReviewHandler) GetReviewsByProduct(c *gin.Context) {
	reviews, err := h.service.GetReviewsByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("Error getting product reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reviews"})
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	c.JSON(http.StatusOK, reviews)
}

// RegisterReviewRoutes registers review routes
func (h *ReviewHandler) RegisterReviewRoutes(rg *gin.RouterGroup, sessionMW gin.HandlerFunc) {
	rg.POST("/user/reviews", sessionMW, h.CreateReview)
	rg.GET("/user/reviews", sessionMW, h.GetAllReviews)
	rg.GET("/user/reviews/:id", sessionMW, h.GetReviewsByProduct)
}
