package handler

import (
	"log"
	"net/http"

	"nexify_backend/internal/middleware"
	"nexify_backend/internal/model"
	"nexify_backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles identity, session and user-directory requests
type UserHandler struct {
	service      service.UserService
	cookieMaxAge int // seconds; matches the token lifetime
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, cookieMaxAge int) *UserHandler {
	return &UserHandler{service: s, cookieMaxAge: cookieMaxAge}
}

// CreateAccessToken exchanges an identity claim for a session cookie
func (h *UserHandler) CreateAccessToken(c *gin.Context) {
	var req model.AccessTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	token, err := h.service.IssueToken(req.Email, req.Name)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, token, h.cookieMaxAge, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the session cookie
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateUser registers a user on first sign-in; idempotent on email
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	insertedID, created, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists", "insertedId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"insertedId": insertedID})
}

// GetAllUsers returns the full user directory (admin only)
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	users, err := h.service.GetAllUsers(c.Request.Context())
	if err != nil {
		log.Printf("Error getting users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	if users == nil {
		users = []model.User{}
	}
	c.JSON(http.StatusOK, users)
}

// GetRoleStatus reports the admin/moderator flags for the caller's own email
func (h *UserHandler) GetRoleStatus(c *gin.Context) {
	email := c.Query("email")
	status, err := h.service.RoleStatus(c.Request.Context(), email)
	if err != nil {
		log.Printf("Error resolving role status for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role status"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// UpdateUserRole escalates a user to admin or moderator (admin only).
// Unrecognized role values leave the record unchanged.
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	modified, err := h.service.UpdateRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		log.Printf("Error updating user role: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modifiedCount": modified})
}

// RegisterUserRoutes registers user and session routes
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, sessionMW, selfMW, adminMW gin.HandlerFunc) {
	users := rg.Group("/users")
	{
		users.POST("/access-token", h.CreateAccessToken)
		users.POST("/logout", h.Logout)
		users.POST("", h.CreateUser)
		users.GET("", sessionMW, adminMW, h.GetAllUsers)
		users.GET("/admin", sessionMW, selfMW, h.GetRoleStatus)
		// role escalation is always admin-gated
		users.PATCH("/admin/:id", sessionMW, adminMW, h.UpdateUserRole)
	}
}
