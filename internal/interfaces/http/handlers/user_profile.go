// internal/interfaces/http/handlers/user_profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/domain/upload"
	"github.com/your-org/tienda-backend/internal/domain/user"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

// UserProfileHandler handles the caller's own profile
type UserProfileHandler struct {
	userService *user.Service
	files       FileStore
}

// NewUserProfileHandler creates a new profile handler
func NewUserProfileHandler(userService *user.Service, files FileStore) *UserProfileHandler {
	return &UserProfileHandler{
		userService: userService,
		files:       files,
	}
}

// UpdateProfile handles PUT /profile
func (h *UserProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	profile.AvatarURL = h.files.PublicURL(profile.AvatarURL)

	c.JSON(http.StatusOK, profile)
}

// ChangePassword handles PUT /profile/password
func (h *UserProfileHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// UploadAvatar handles POST /profile/avatar (multipart field "avatar")
func (h *UserProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		respondError(c, apperr.Validation("Archivo \"avatar\" requerido"))
		return
	}

	ctx := c.Request.Context()
	file, err := h.files.Save(ctx, upload.CategoryAvatar, header, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	previous, profile, err := h.userService.SetAvatar(ctx, userID, file.URL)
	if err != nil {
		h.files.RemoveQuietly(ctx, file.URL)
		respondError(c, err)
		return
	}
	if previous != "" && previous != file.URL {
		h.files.RemoveQuietly(ctx, previous)
	}
	profile.AvatarURL = h.files.PublicURL(profile.AvatarURL)

	c.JSON(http.StatusOK, profile)
}
