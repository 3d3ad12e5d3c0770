// internal/interfaces/http/handlers/user_admin.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/domain/user"
)

// UserAdminHandler handles admin user management endpoints
type UserAdminHandler struct {
	userService *user.Service
	files       FileStore
}

// NewUserAdminHandler creates a new user admin handler
func NewUserAdminHandler(userService *user.Service, files FileStore) *UserAdminHandler {
	return &UserAdminHandler{
		userService: userService,
		files:       files,
	}
}

// GetUsers handles GET /admin/users
func (h *UserAdminHandler) GetUsers(c *gin.Context) {
	var req user.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.userService.ListUsers(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	for i := range users {
		users[i].AvatarURL = h.files.PublicURL(users[i].AvatarURL)
	}

	c.JSON(http.StatusOK, users)
}

// CreateCourier handles POST /admin/users
func (h *UserAdminHandler) CreateCourier(c *gin.Context) {
	var req user.CreateCourierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.CreateCourier(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// UpdateUserStatus handles PUT /admin/users/:id/status
func (h *UserAdminHandler) UpdateUserStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req user.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	profile.AvatarURL = h.files.PublicURL(profile.AvatarURL)

	c.JSON(http.StatusOK, profile)
}

// UpdateUser handles PUT /admin/users/:id
func (h *UserAdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.UpdateBasic(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	profile.AvatarURL = h.files.PublicURL(profile.AvatarURL)

	c.JSON(http.StatusOK, profile)
}
