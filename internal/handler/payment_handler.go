package handler

import (
	"log"
	"net/http"

	"nexify_backend/internal/model"
	"nexify_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles payment-intent and payment-history requests
type PaymentHandler struct {
	service service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

// CreateIntent asks the payment provider for an intent over the posted price
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req model.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	clientSecret, err := h.service.CreateIntent(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// RecordPayment stores the payment record; idempotent per payer email
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	insertedID, created, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error recording payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Payment already recorded", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": insertedID})
}

// GetHistory returns the caller's own payment records
func (h *PaymentHandler) GetHistory(c *gin.Context) {
	payments, err := h.service.GetHistory(c.Request.Context(), c.Query("email"))
	if err != nil {
		log.Printf("Error getting payment history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment history"})
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

// RegisterPaymentRoutes registers payment routes
func (h *PaymentHandler) RegisterPaymentRoutes(rg *gin.RouterGroup, sessionMW, selfMW gin.HandlerFunc) {
	rg.POST("/users/payment-intent", sessionMW, h.CreateIntent)
	rg.POST("/users/payment-history", sessionMW, h.RecordPayment)
	rg.GET("/users/payment-history", sessionMW, selfMW, h.GetHistory)
}
