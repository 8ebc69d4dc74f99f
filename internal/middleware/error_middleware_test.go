package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

func handleError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	HandleAPIError(c, err)
	return w
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"user not found", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", apperrors.ErrStudentNotFound), http.StatusNotFound},
		{"email exists", apperrors.ErrEmailAlreadyExists, http.StatusConflict},
		{"department has relations", apperrors.ErrDepartmentHasRelations, http.StatusConflict},
		{"validation failed", apperrors.ErrValidationFailed, http.StatusBadRequest},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"token expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"invalid role", apperrors.ErrInvalidRole, http.StatusForbidden},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := handleError(tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandleAPIErrorBody(t *testing.T) {
	w := handleError(apperrors.ErrProjectNotFound)
	assert.Contains(t, w.Body.String(), "RES_001")
	assert.Contains(t, w.Body.String(), "project not found")
}
