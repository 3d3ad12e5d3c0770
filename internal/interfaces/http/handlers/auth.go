// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/interfaces/http/middleware"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
	"github.com/your-org/tienda-backend/internal/pkg/auth"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userService *user.Service
	revoked     auth.RevocationList
	files       FileStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userService *user.Service, revoked auth.RevocationList, files FileStore) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		revoked:     revoked,
		files:       files,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.User.AvatarURL = h.files.PublicURL(response.User.AvatarURL)

	c.JSON(http.StatusOK, response)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	profile.AvatarURL = h.files.PublicURL(profile.AvatarURL)

	c.JSON(http.StatusOK, profile)
}

// Logout handles POST /auth/logout by revoking the token until it expires
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		respondError(c, apperr.Unauthorized("No autenticado"))
		return
	}

	if claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.revoked.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			respondError(c, apperr.Internal("No se pudo cerrar la sesión", err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
