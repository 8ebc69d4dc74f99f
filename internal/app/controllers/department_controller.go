package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// DepartmentController handles department-related operations
type DepartmentController struct {
	departmentService services.DepartmentService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService services.DepartmentService) *DepartmentController {
	return &DepartmentController{departmentService: departmentService}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Description Creates a department. Name and code must be unique.
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=models.Department} "Department created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	department, err := c.departmentService.CreateDepartment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(department, "Department created successfully"))
}

// GetDepartmentByID retrieves a department
// @Summary Get department by ID
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department retrieved"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	department, err := c.departmentService.GetDepartmentByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(department, ""))
}

// ListDepartments retrieves departments with pagination
// @Summary List departments
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search in name and code"
// @Success 200 {object} dto.APIResponse{data=[]models.Department} "Departments retrieved"
// @Router /departments [get]
func (c *DepartmentController) ListDepartments(ctx *gin.Context) {
	var q dto.DepartmentListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	departments, pagination, err := c.departmentService.ListDepartments(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(departments, *pagination))
}

// UpdateDepartment applies changes to a department
// @Summary Update department
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Department} "Department updated"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Name or code already in use"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	department, err := c.departmentService.UpdateDepartment(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(department, "Department updated successfully"))
}

// DeleteDepartment removes a department
// @Summary Delete department
// @Description Deletes a department without assigned faculty or students
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Department ID"
// @Success 200 {object} dto.SuccessResponse "Department deleted"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department has associated data"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	if err := c.departmentService.DeleteDepartment(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Department deleted successfully"))
}

// GetStats returns institute-wide department statistics
// @Summary Department statistics
// @Description Aggregates department, faculty and student counts
// @Tags departments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DepartmentStats} "Statistics retrieved"
// @Router /departments/stats [get]
func (c *DepartmentController) GetStats(ctx *gin.Context) {
	stats, err := c.departmentService.GetStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// ImportDepartments imports departments from an uploaded CSV file
// @Summary Import departments from CSV
// @Description Parses a CSV upload and creates or updates department records
// @Tags departments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid CSV file"
// @Router /departments/import [post]
func (c *DepartmentController) ImportDepartments(ctx *gin.Context) {
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

	summary, err := c.departmentService.ImportDepartments(ctx, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Departments imported"))
}

// ExportDepartments downloads all departments as CSV
// @Summary Export departments to CSV
// @Tags departments
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV content"
// @Router /departments/export [get]
func (c *DepartmentController) ExportDepartments(ctx *gin.Context) {
	content, err := c.departmentService.ExportDepartments(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="departments_export.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(content))
}
