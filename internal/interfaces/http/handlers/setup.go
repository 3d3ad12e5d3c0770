// internal/interfaces/http/handlers/setup.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/domain/user"
)

// SetupHandler bootstraps a fresh installation
type SetupHandler struct {
	userService *user.Service
}

// NewSetupHandler creates a new setup handler
func NewSetupHandler(userService *user.Service) *SetupHandler {
	return &SetupHandler{userService: userService}
}

// CreateAdmin handles POST /setup/admin
func (h *SetupHandler) CreateAdmin(c *gin.Context) {
	profile, created, err := h.userService.BootstrapAdmin(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "El administrador ya existe"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Administrador creado",
		"user":    profile,
	})
}
