package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

type stubAuthService struct {
	resp *dto.AuthResponse
	user *models.User
	err  error

	switchedRole string
}

var _ services.AuthService = (*stubAuthService)(nil)

func (s *stubAuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	return s.resp, s.err
}

func (s *stubAuthService) SwitchRole(ctx context.Context, userID, role string) (*dto.AuthResponse, error) {
	s.switchedRole = role
	return s.resp, s.err
}

func (s *stubAuthService) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.user, s.err
}

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAuthController(svc)

	router := gin.New()
	router.POST("/auth/signup", ctrl.Signup)
	router.POST("/auth/login", ctrl.Login)
	router.POST("/auth/switch-role", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		ctrl.SwitchRole(c)
	})
	router.GET("/auth/me", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		ctrl.GetCurrentUser(c)
	})
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	svc := &stubAuthService{resp: &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: "jwt-token"},
		User:  &models.User{ID: "user-1", Email: "someone@gppalanpur.in"},
	}}
	router := newAuthRouter(svc)

	w := postJSON(router, "/auth/login", `{"email":"someone@gppalanpur.in","password":"Secret@123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jwt-token")
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newAuthRouter(&stubAuthService{err: apperrors.ErrInvalidCredentials})

	w := postJSON(router, "/auth/login", `{"email":"someone@gppalanpur.in","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestLoginMalformedBody(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(router, "/auth/login", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup(t *testing.T) {
	svc := &stubAuthService{resp: &dto.AuthResponse{
		Token: dto.TokenResponse{AccessToken: "jwt-token"},
		User:  &models.User{ID: "user-2"},
	}}
	router := newAuthRouter(svc)

	body := `{"name":"John Doe","email":"john@gppalanpur.in","password":"Secret@123","departmentId":"8a1b6c4e-0f3d-4f6a-9c2e-5d7b8a9c0d1e"}`
	w := postJSON(router, "/auth/signup", body)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSwitchRole(t *testing.T) {
	svc := &stubAuthService{resp: &dto.AuthResponse{User: &models.User{ID: "user-1", SelectedRole: "jury"}}}
	router := newAuthRouter(svc)

	w := postJSON(router, "/auth/switch-role", `{"role":"jury"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jury", svc.switchedRole)
}

func TestSwitchRoleNotAssigned(t *testing.T) {
	router := newAuthRouter(&stubAuthService{err: apperrors.ErrInvalidRole})

	w := postJSON(router, "/auth/switch-role", `{"role":"admin"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetCurrentUser(t *testing.T) {
	svc := &stubAuthService{user: &models.User{ID: "user-1", Email: "someone@gppalanpur.in", Roles: []string{"student"}}}
	router := newAuthRouter(svc)

	req := httptest.NewRequest("GET", "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "someone@gppalanpur.in")
}
