// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/pkg/auth"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "user_email"
	ctxRole   = "user_role"
	ctxName   = "user_name"
	ctxClaims = "token_claims"
)

// AuthMiddleware creates JWT authentication middleware. Tokens listed in
// revoked are rejected; revoked may be nil.
func AuthMiddleware(cfg *config.Config, revoked auth.RevocationList) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Token requerido")
			return
		}

		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			abort(c, http.StatusUnauthorized, "Formato de token inválido")
			return
		}

		claims, err := jwtManager.ValidateAccessToken(tokenString)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Token inválido o expirado")
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// fail open while Redis is unavailable
				logrus.WithError(err).Warn("Token revocation check failed")
			}
			if isRevoked {
				abort(c, http.StatusUnauthorized, "Token inválido o expirado")
				return
			}
		}

		SetClaims(c, claims)
		c.Next()
	}
}

// RequireRole lets the request through only for the given roles. With no
// roles it only requires an authenticated user.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ctxRole)
		if !exists {
			abort(c, http.StatusUnauthorized, "No autenticado")
			return
		}
		if len(roles) == 0 {
			c.Next()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "No autorizado")
	}
}

// SetClaims stores the token identity on the request context
func SetClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(ctxUserID, claims.UserID)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxName, claims.FullName)
	c.Set(ctxClaims, claims)
}

// GetUserIDFromContext extracts user ID from gin context
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

// GetRoleFromContext returns the caller's role, empty when unauthenticated
func GetRoleFromContext(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// GetClaimsFromContext returns the validated token claims
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(ctxClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}
