package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"authportal/internal/middleware"
	"authportal/internal/model"
	"authportal/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the admin panel's user and token management.
type AdminHandler struct {
	users   service.UserService
	tokens  service.RegistrationTokenService
	baseURL string
}

// NewAdminHandler creates a new AdminHandler. baseURL is the externally
// visible portal address used to build registration links.
func NewAdminHandler(users service.UserService, tokens service.RegistrationTokenService, baseURL string) *AdminHandler {
	return &AdminHandler{users: users, tokens: tokens, baseURL: baseURL}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("ERROR: listing users failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}
	if users == nil {
		users = []model.SafeUser{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	actor := middleware.IdentityFromContext(c)
	user, err := h.users.UpdateRole(c.Request.Context(), actor, targetID, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSelfRoleChange), errors.Is(err, service.ErrLastAdminDemote):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("ERROR: updating user %d failed: %v", targetID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	actor := middleware.IdentityFromContext(c)
	if err := h.users.DeleteUser(c.Request.Context(), actor, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfDelete), errors.Is(err, service.ErrLastAdminDelete):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			log.Printf("ERROR: deleting user %d failed: %v", targetID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AdminHandler) CreateToken(c *gin.Context) {
	var req struct {
		ExpiresInDays int `json:"expiresInDays"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	actor := middleware.IdentityFromContext(c)
	token, err := h.tokens.Issue(c.Request.Context(), actor.ID, req.ExpiresInDays)
	if err != nil {
		if errors.Is(err, service.ErrInvalidExpiry) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("ERROR: issuing token failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":            token.Token,
		"expires_at":       token.ExpiresAt,
		"registration_url": fmt.Sprintf("%s/register?token=%s", h.baseURL, token.Token),
	})
}

func (h *AdminHandler) ListTokens(c *gin.Context) {
	filter := c.DefaultQuery("filter", model.TokenFilterActive)

	tokens, err := h.tokens.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Printf("ERROR: listing tokens failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tokens"})
		return
	}
	if tokens == nil {
		tokens = []model.RegistrationTokenSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (h *AdminHandler) RevokeToken(c *gin.Context) {
	tokenID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token ID"})
		return
	}

	revoked, err := h.tokens.Revoke(c.Request.Context(), tokenID)
	if err != nil {
		log.Printf("ERROR: revoking token %d failed: %v", tokenID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete token"})
		return
	}
	if !revoked {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token not found or already used"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegisterAdminRoutes registers the admin routes behind the admin guard.
func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	adminGroup := rg.Group("/admin")
	adminGroup.Use(requireAdmin)
	{
		adminGroup.GET("/users", h.ListUsers)
		adminGroup.PATCH("/users/:id", h.UpdateUserRole)
		adminGroup.DELETE("/users/:id", h.DeleteUser)

		adminGroup.POST("/tokens", h.CreateToken)
		adminGroup.GET("/tokens", h.ListTokens)
		adminGroup.DELETE("/tokens/:id", h.RevokeToken)
	}
}
