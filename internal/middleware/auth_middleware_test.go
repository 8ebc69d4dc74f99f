package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
)

func newTestRouter(t *testing.T, exp time.Duration, roles ...string) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "gpp-portal-test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	group := router.Group("/protected", m.JWTAuth())
	if len(roles) > 0 {
		group.Use(m.RoleRequired(roles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString(ContextUserID),
			"role":   c.GetString(ContextSelectedRole),
		})
	})
	return router, jwtService
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, _ := newTestRouter(t, time.Hour)
	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	router, jwtService := newTestRouter(t, time.Hour)

	token, _, err := jwtService.GenerateToken("user-1", "someone@gppalanpur.in", "student")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")

	// A raw token without the Bearer prefix is also accepted
	w = doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthQueryToken(t *testing.T) {
	router, jwtService := newTestRouter(t, time.Hour)

	token, _, err := jwtService.GenerateToken("user-1", "someone@gppalanpur.in", "student")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected?token="+token, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router, jwtService := newTestRouter(t, -time.Minute)

	token, _, err := jwtService.GenerateToken("user-1", "someone@gppalanpur.in", "student")
	require.NoError(t, err)

	w := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTAuthGarbageToken(t *testing.T) {
	router, _ := newTestRouter(t, time.Hour)
	w := doRequest(router, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleRequired(t *testing.T) {
	router, jwtService := newTestRouter(t, time.Hour, models.RoleHOD, models.RolePrincipal)

	tests := []struct {
		role string
		want int
	}{
		{"hod", http.StatusOK},
		{"principal", http.StatusOK},
		// Admin passes every role gate
		{"admin", http.StatusOK},
		{"student", http.StatusForbidden},
		{"faculty", http.StatusForbidden},
	}
	for _, tt := range tests {
		token, _, err := jwtService.GenerateToken("user-1", "someone@gppalanpur.in", tt.role)
		require.NoError(t, err)

		w := doRequest(router, "Bearer "+token)
		assert.Equal(t, tt.want, w.Code, "role %s", tt.role)
	}
}
