package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// FacultyController handles faculty member operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{facultyService: facultyService}
}

// CreateFaculty handles faculty creation
// @Summary Create a faculty member
// @Description Creates a faculty record and provisions a linked user account
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateFacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=models.Faculty} "Faculty created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Employee ID or email already exists"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	faculty, err := c.facultyService.CreateFaculty(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(faculty, "Faculty created successfully"))
}

// GetFacultyByID retrieves a faculty member
// @Summary Get faculty by ID
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty retrieved"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	faculty, err := c.facultyService.GetFacultyByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty, ""))
}

// ListFaculty retrieves faculty members with pagination and filters
// @Summary List faculty
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param departmentId query string false "Filter by department"
// @Param designation query string false "Filter by designation"
// @Param search query string false "Search in name and employee ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Faculty} "Faculty retrieved"
// @Router /faculty [get]
func (c *FacultyController) ListFaculty(ctx *gin.Context) {
	var q dto.FacultyListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	faculty, pagination, err := c.facultyService.ListFaculty(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(faculty, *pagination))
}

// UpdateFaculty applies changes to a faculty member
// @Summary Update faculty
// @Tags faculty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Param request body dto.UpdateFacultyRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Faculty} "Faculty updated"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	faculty, err := c.facultyService.UpdateFaculty(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(faculty, "Faculty updated successfully"))
}

// DeleteFaculty removes a faculty member and its user account
// @Summary Delete faculty
// @Tags faculty
// @Produce json
// @Security BearerAuth
// @Param id path string true "Faculty ID"
// @Success 200 {object} dto.SuccessResponse "Faculty deleted"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	if err := c.facultyService.DeleteFaculty(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Faculty deleted successfully"))
}

// ImportFaculty imports faculty from an uploaded CSV file
// @Summary Import faculty from CSV
// @Description Parses a CSV upload and creates or updates faculty records
// @Tags faculty
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid CSV file"
// @Router /faculty/import [post]
func (c *FacultyController) ImportFaculty(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("missing file upload"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.ErrInvalidCSV)
		return
	}
	defer file.Close()

	summary, err := c.facultyService.ImportFaculty(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Faculty imported"))
}

// ExportFaculty downloads all faculty as CSV
// @Summary Export faculty to CSV
// @Tags faculty
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV content"
// @Router /faculty/export [get]
func (c *FacultyController) ExportFaculty(ctx *gin.Context) {
	content, err := c.facultyService.ExportFaculty(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="faculty_export.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(content))
}
