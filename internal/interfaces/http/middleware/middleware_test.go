package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:            "test-secret-that-is-long-enough-for-hs256",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"https://app.tienda.com", "*.tienda.dev"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}
}

type fakeRevocations map[string]bool

func (f fakeRevocations) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	f[id] = true
	return nil
}

func (f fakeRevocations) IsRevoked(ctx context.Context, id string) (bool, error) {
	return f[id], nil
}

func issue(t *testing.T, cfg *config.Config, role string) (string, *auth.Claims) {
	mgr := auth.NewJWTManager(cfg)
	token, err := mgr.GenerateAccessToken(auth.Identity{UserID: 9, Email: "ana@example.com", Role: role, FullName: "Ana"})
	require.NoError(t, err)
	claims, err := mgr.ValidateAccessToken(token)
	require.NoError(t, err)
	return token, claims
}

func TestAuthMiddleware(t *testing.T) {
	cfg := testConfig()
	revoked := fakeRevocations{}
	token, claims := issue(t, cfg, "CLIENTE")
	revokedToken, revokedClaims := issue(t, cfg, "CLIENTE")
	revoked[revokedClaims.ID] = true

	r := gin.New()
	r.GET("/me", AuthMiddleware(cfg, revoked), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "rol": GetRoleFromContext(c)})
	})

	testCases := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized, wantBody: `"message"`},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", wantStatus: http.StatusUnauthorized},
		{name: "revoked token", header: "Bearer " + revokedToken, wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK, wantBody: `{"id":9,"rol":"CLIENTE"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.Contains(t, w.Body.String(), tc.wantBody)
			}
		})
	}
	assert.NotEqual(t, claims.ID, revokedClaims.ID)
}

func TestRequireRole(t *testing.T) {
	cfg := testConfig()
	adminToken, _ := issue(t, cfg, "ADMIN")
	courierToken, _ := issue(t, cfg, "REPARTIDOR")

	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg, nil), RequireRole("ADMIN"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/any", AuthMiddleware(cfg, nil), RequireRole(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/open", RequireRole(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	do := func(path, token string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, do("/admin", adminToken))
	assert.Equal(t, http.StatusForbidden, do("/admin", courierToken))
	assert.Equal(t, http.StatusNoContent, do("/any", courierToken))
	assert.Equal(t, http.StatusUnauthorized, do("/open", ""))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(testConfig()))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	preflight := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	preflight.Header.Set("Origin", "https://app.tienda.com")
	preflight.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, preflight)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.tienda.com", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestIsOriginAllowed(t *testing.T) {
	allowed := []string{"https://app.tienda.com", "*.tienda.dev"}
	assert.True(t, isOriginAllowed("https://app.tienda.com", allowed))
	assert.True(t, isOriginAllowed("https://qa.tienda.dev", allowed))
	assert.False(t, isOriginAllowed("https://eviltienda.dev", allowed))
	assert.False(t, isOriginAllowed("https://other.com", allowed))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ctxRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(requestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRequestSizeLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestSizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestMetricsBuilder(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetricsBuilder(reg)

	r := gin.New()
	r.Use(m.Build())
	r.GET("/products/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/products/1", "/products/2", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.counterVec.WithLabelValues("GET", "/products/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.counterVec.WithLabelValues("GET", "unmatched", "404")))
}
