// internal/interfaces/http/handlers/response.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/tienda-backend/internal/interfaces/http/middleware"
	"github.com/your-org/tienda-backend/internal/pkg/apperr"
)

// respondError renders err as {"message": ...}. Unexpected errors keep their
// cause on the gin context for the request logger.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"message": apperr.PublicMessage(err)})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message": "Datos inválidos",
		"details": err.Error(),
	})
}

// parseID reads a positive numeric path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

// currentUserID answers 401 when the request carries no identity.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No autenticado"})
		return 0, false
	}
	return userID, true
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}
