package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

type stubDepartmentService struct {
	department *models.Department
	stats      *models.DepartmentStats
	err        error
}

func (s *stubDepartmentService) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	return s.department, s.err
}

func (s *stubDepartmentService) GetDepartmentByID(ctx context.Context, id string) (*models.Department, error) {
	return s.department, s.err
}

func (s *stubDepartmentService) ListDepartments(ctx context.Context, q *dto.DepartmentListQuery) ([]*models.Department, *dto.PaginationInfo, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return []*models.Department{s.department}, &dto.PaginationInfo{Page: 1, Limit: 10, Total: 1, TotalPages: 1}, nil
}

func (s *stubDepartmentService) UpdateDepartment(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	return s.department, s.err
}

func (s *stubDepartmentService) DeleteDepartment(ctx context.Context, id string) error {
	return s.err
}

func (s *stubDepartmentService) GetStats(ctx context.Context) (*models.DepartmentStats, error) {
	return s.stats, s.err
}

func (s *stubDepartmentService) ImportDepartments(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ImportSummary{Imported: 1}, nil
}

func (s *stubDepartmentService) ExportDepartments(ctx context.Context) (string, error) {
	return "Name,Code\nComputer Engineering,CE\n", s.err
}

func newDepartmentRouter(svc *stubDepartmentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewDepartmentController(svc)

	router := gin.New()
	router.POST("/departments", ctrl.CreateDepartment)
	router.GET("/departments", ctrl.ListDepartments)
	router.GET("/departments/stats", ctrl.GetStats)
	router.GET("/departments/export", ctrl.ExportDepartments)
	router.GET("/departments/:id", ctrl.GetDepartmentByID)
	router.DELETE("/departments/:id", ctrl.DeleteDepartment)
	return router
}

func TestCreateDepartment(t *testing.T) {
	svc := &stubDepartmentService{department: &models.Department{ID: "d-1", Name: "Computer Engineering", Code: "CE"}}
	router := newDepartmentRouter(svc)

	body := `{"name":"Computer Engineering","code":"CE"}`
	req := httptest.NewRequest("POST", "/departments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
}

func TestCreateDepartmentMissingFields(t *testing.T) {
	router := newDepartmentRouter(&stubDepartmentService{})

	req := httptest.NewRequest("POST", "/departments", strings.NewReader(`{"name":"No Code"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VAL_001")
}

func TestGetDepartmentByIDNotFound(t *testing.T) {
	router := newDepartmentRouter(&stubDepartmentService{err: apperrors.ErrDepartmentNotFound})

	req := httptest.NewRequest("GET", "/departments/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "RES_001")
}

func TestListDepartments(t *testing.T) {
	svc := &stubDepartmentService{department: &models.Department{ID: "d-1", Name: "Computer Engineering", Code: "CE"}}
	router := newDepartmentRouter(svc)

	req := httptest.NewRequest("GET", "/departments?page=1&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, int64(1), resp.Pagination.Total)
}

func TestGetDepartmentStats(t *testing.T) {
	svc := &stubDepartmentService{stats: &models.DepartmentStats{TotalDepartments: 6, ActiveDepartments: 5}}
	router := newDepartmentRouter(svc)

	req := httptest.NewRequest("GET", "/departments/stats", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "totalDepartments")
}

func TestDeleteDepartmentConflict(t *testing.T) {
	router := newDepartmentRouter(&stubDepartmentService{err: apperrors.ErrDepartmentHasRelations})

	req := httptest.NewRequest("DELETE", "/departments/d-1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestExportDepartmentsCSV(t *testing.T) {
	router := newDepartmentRouter(&stubDepartmentService{})

	req := httptest.NewRequest("GET", "/departments/export", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "departments_export.csv")
	assert.Contains(t, w.Body.String(), "Computer Engineering,CE")
}
