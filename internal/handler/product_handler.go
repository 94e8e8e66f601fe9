package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"nexify_backend/internal/middleware"
	"nexify_backend/internal/model"
	"nexify_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductHandler handles product lifecycle and listing requests
type ProductHandler struct {
	service service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// Helper to get the authenticated email from context
func getAuthEmail(c *gin.Context) (string, error) {
	emailVal, exists := c.Get(middleware.AuthEmailKey)
	if !exists {
		return "", errors.New("email not found in context")
	}
	email, ok := emailVal.(string)
	if !ok {
		return "", errors.New("invalid email type in context")
	}
	return email, nil
}

// CreateProduct submits a new product; it starts pending and unfeatured
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.service.CreateProduct(c.Request.Context(), email, req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetOwnerProducts lists products submitted by the owner in the query
func (h *ProductHandler) GetOwnerProducts(c *gin.Context) {
	products, err := h.service.GetProductsByOwner(c.Request.Context(), c.Query("owner"))
	if err != nil {
		log.Printf("Error getting owner products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

// GetProductByID returns one product or a true 404
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	product, err := h.service.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// PatchProductByUser applies a vote or report transition
func (h *ProductHandler) PatchProductByUser(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var patch model.UserProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	modified, err := h.service.ApplyUserPatch(c.Request.Context(), c.Param("id"), email, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyVoted):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Error patching product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

// UpdateProductByOwner edits the owner-editable fields
func (h *ProductHandler) UpdateProductByOwner(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	product, err := h.service.UpdateByOwner(c.Request.Context(), c.Param("id"), email, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			log.Printf("Error updating product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

// PatchProductByModerator applies a moderation decision or the featured flag
func (h *ProductHandler) PatchProductByModerator(c *gin.Context) {
	var patch model.ModeratorProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	modified, err := h.service.ApplyModeratorPatch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error applying moderation patch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

// DeleteProductByOwner removes the caller's own product
func (h *ProductHandler) DeleteProductByOwner(c *gin.Context) {
	email, err := getAuthEmail(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	h.deleteProduct(c, email, false)
}

// DeleteProductByModerator removes any product
func (h *ProductHandler) DeleteProductByModerator(c *gin.Context) {
	h.deleteProduct(c, "", true)
}

func (h *ProductHandler) deleteProduct(c *gin.Context, caller string, asModerator bool) {
	err := h.service.DeleteProduct(c.Request.Context(), c.Param("id"), caller, asModerator)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			log.Printf("Error deleting product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": 1})
}

// ListProducts is the public paginated accepted-product listing
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "4"))
	if err != nil {
		limit = 4
	}

	result, err := h.service.ListAccepted(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) listSimple(c *gin.Context, list func() ([]model.Product, error)) {
	products, err := list()
	if err != nil {
		log.Printf("Error listing products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListFeatured(c *gin.Context) {
	h.listSimple(c, func() ([]model.Product, error) { return h.service.ListFeatured(c.Request.Context()) })
}

func (h *ProductHandler) ListTrending(c *gin.Context) {
	h.listSimple(c, func() ([]model.Product, error) { return h.service.ListTrending(c.Request.Context()) })
}

func (h *ProductHandler) ListRising(c *gin.Context) {
	h.listSimple(c, func() ([]model.Product, error) { return h.service.ListRising(c.Request.Context()) })
}

func (h *ProductHandler) GetAllProductsForModerator(c *gin.Context) {
	h.listSimple(c, func() ([]model.Product, error) { return h.service.ListAllForModerator(c.Request.Context()) })
}

func (h *ProductHandler) GetReportedProducts(c *gin.Context) {
	h.listSimple(c, func() ([]model.Product, error) { return h.service.ListReported(c.Request.Context()) })
}

// RegisterProductRoutes registers product routes with their auth classes
func (h *ProductHandler) RegisterProductRoutes(rg *gin.RouterGroup, sessionMW, moderatorMW gin.HandlerFunc) {
	// authenticated user routes
	rg.POST("/user/products", sessionMW, h.CreateProduct)
	rg.GET("/user/products", sessionMW, h.GetOwnerProducts)
	rg.GET("/user/products/:id", sessionMW, h.GetProductByID)
	rg.PATCH("/user/products/:id", sessionMW, h.PatchProductByUser)
	rg.PATCH("/owner/products/:id", sessionMW, h.UpdateProductByOwner)
	rg.DELETE("/user/product/:id", sessionMW, h.DeleteProductByOwner)

	// moderator routes
	rg.GET("/moderator/products", sessionMW, moderatorMW, h.GetAllProductsForModerator)
	rg.GET("/moderator/products/report", sessionMW, moderatorMW, h.GetReportedProducts)
	rg.PATCH("/moderator/products/:id", sessionMW, moderatorMW, h.PatchProductByModerator)
	rg.DELETE("/moderator/product/:id", sessionMW, moderatorMW, h.DeleteProductByModerator)

	// public listings
	rg.GET("/products", h.ListProducts)
	rg.GET("/products/featured", h.ListFeatured)
	rg.GET("/products/trending", h.ListTrending)
	rg.GET("/products/rising", h.ListRising)
}
