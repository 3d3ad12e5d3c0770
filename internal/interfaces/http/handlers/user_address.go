// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/domain/user"
)

// UserAddressHandler handles the caller's addresses
type UserAddressHandler struct {
	addressService *user.AddressService
}

// NewUserAddressHandler creates a new address handler
func NewUserAddressHandler(addressService *user.AddressService) *UserAddressHandler {
	return &UserAddressHandler{addressService: addressService}
}

// GetAddresses handles GET /addresses
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, addresses)
}

// CreateAddress handles POST /addresses
func (h *UserAddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	address, err := h.addressService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, address)
}

// UpdateAddress handles PUT /addresses/:id (full replacement)
func (h *UserAddressHandler) UpdateAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req user.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	address, err := h.addressService.Replace(c.Request.Context(), userID, addressID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// SetDefaultAddress handles PUT /addresses/:id/default
func (h *UserAddressHandler) SetDefaultAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseID(c, "id")
	if !ok {
		return
	}

	address, err := h.addressService.SetDefault(c.Request.Context(), userID, addressID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, address)
}

// DeleteAddress handles DELETE /addresses/:id
func (h *UserAddressHandler) DeleteAddress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.addressService.Delete(c.Request.Context(), userID, addressID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
