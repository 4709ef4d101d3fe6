package handler

import (
	"errors"
	"log"
	"net/http"

	"authportal/internal/middleware"
	"authportal/internal/service"
	"authportal/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the cookie the reverse proxy reads the bearer
// credential from.
const AuthCookieName = "auth_token"

// AuthHandler handles authentication, registration, and the proxy
// verification contract.
type AuthHandler struct {
	authService  service.AuthService
	registration service.RegistrationService
	tokens       service.RegistrationTokenService
	jwtUtil      *utils.JWTUtil
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, registration service.RegistrationService, tokens service.RegistrationTokenService, jwtUtil *utils.JWTUtil) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		registration: registration,
		tokens:       tokens,
		jwtUtil:      jwtUtil,
	}
}

// Verify is called by the reverse proxy once per protected request. On
// success it answers 200 with the identity headers the proxy forwards
// downstream; any failure is a bare 401 with no body.
func (h *AuthHandler) Verify(c *gin.Context) {
	tokenString, err := c.Cookie(AuthCookieName)
	if err != nil || tokenString == "" {
		c.Status(http.StatusUnauthorized)
		return
	}

	claims, err := h.jwtUtil.ValidateToken(tokenString)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	c.Header(middleware.HeaderUserID, claims.Subject)
	c.Header(middleware.HeaderUserEmail, claims.Email)
	c.Header(middleware.HeaderUserRole, claims.Role)
	c.Status(http.StatusOK)
}

// Me echoes the identity the proxy forwarded.
func (h *AuthHandler) Me(c *gin.Context) {
	identity := middleware.IdentityFromContext(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    identity.ID,
			"email": identity.Email,
			"role":  identity.Role,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrInvalidCredentials.Error()})
			return
		}
		log.Printf("ERROR: login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, token, int(utils.TokenTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user.Safe(),
	})
}

// Logout clears the auth cookie. It does not invalidate the token itself;
// the token simply ages out at its fixed expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Token    string `json:"token"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.registration.Register(c.Request.Context(), req.Token, req.Email, req.Password)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		log.Printf("ERROR: registration failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
		return
	}

	// Deliberately no session cookie: registration and authentication are
	// decoupled, the new user logs in afterwards.
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// ValidateToken lets the registration page check an invitation before the
// user fills the form. Dead tokens are a normal answer (200 with a reason),
// not an error; only storage failures surface as 500.
func (h *AuthHandler) ValidateToken(c *gin.Context) {
	tokenValue := c.Query("token")
	if tokenValue == "" {
		c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": "Token parameter is required"})
		return
	}

	token, err := h.tokens.Lookup(c.Request.Context(), tokenValue)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Invalid registration token"})
			return
		}
		log.Printf("ERROR: token validation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"valid": false, "error": "Failed to validate token"})
		return
	}

	if token.Used {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Registration token has already been used"})
		return
	}
	if !h.tokens.IsValid(token) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Registration token has expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.GET("/verify", h.Verify)
		authGroup.GET("/me", h.Me)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/register", h.Register)
		authGroup.GET("/validate-token", h.ValidateToken)
	}
}
