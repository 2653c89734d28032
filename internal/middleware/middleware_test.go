package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/metrics"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signed(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, AdminFrom(c))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	valid := signed(t, testSecret, jwt.MapClaims{
		"sub":  "admin",
		"role": RoleAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "missing_authorization_header"},
		{"not bearer", "Basic abc", http.StatusUnauthorized, "invalid_authorization_header"},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, "invalid_token"},
		{"wrong secret", "Bearer " + signed(t, "other", jwt.MapClaims{"sub": "admin", "role": RoleAdmin}), http.StatusUnauthorized, "invalid_token"},
		{"expired", "Bearer " + signed(t, testSecret, jwt.MapClaims{"sub": "admin", "role": RoleAdmin, "exp": time.Now().Add(-time.Minute).Unix()}), http.StatusUnauthorized, "invalid_token"},
		{"wrong role", "Bearer " + signed(t, testSecret, jwt.MapClaims{"sub": "admin", "role": "customer"}), http.StatusUnauthorized, "invalid_token_payload"},
		{"valid", "Bearer " + valid, http.StatusOK, "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			protectedRouter().ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://shop.local")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := metrics.New(prometheus.NewRegistry())

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger, m))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	generated := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, generated)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))

	assert.Contains(t, buf.String(), "request_id=abc-123")
	assert.Contains(t, buf.String(), "route=/ping")
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/ping", "200")))
}
