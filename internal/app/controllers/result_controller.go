package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// ResultController handles exam result operations
type ResultController struct {
	resultService services.ResultService
}

// NewResultController creates a new ResultController
func NewResultController(resultService services.ResultService) *ResultController {
	return &ResultController{resultService: resultService}
}

// ListResults retrieves results with pagination and filters
// @Summary List results
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param branchName query string false "Filter by branch"
// @Param semester query int false "Filter by semester"
// @Param academicYear query string false "Filter by academic year"
// @Param examId query int false "Filter by exam"
// @Param uploadBatch query string false "Filter by upload batch"
// @Param search query string false "Search in name and enrollment number"
// @Success 200 {object} dto.APIResponse{data=[]models.Result} "Results retrieved"
// @Router /results [get]
func (c *ResultController) ListResults(ctx *gin.Context) {
	var q dto.ResultListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	results, pagination, err := c.resultService.ListResults(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(results, *pagination))
}

// GetResultByID retrieves one result with its subjects
// @Summary Get result by ID
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path string true "Result ID"
// @Success 200 {object} dto.APIResponse{data=models.Result} "Result retrieved"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{id} [get]
func (c *ResultController) GetResultByID(ctx *gin.Context) {
	result, err := c.resultService.GetResultByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, ""))
}

// GetStudentResults retrieves all results of one student
// @Summary Get student results
// @Description Retrieves the full marksheet history for an enrollment number.
// @Description Students may only read their own results.
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param enrollmentNo path string true "Enrollment number"
// @Success 200 {object} dto.APIResponse{data=[]models.Result} "Results retrieved"
// @Failure 403 {object} dto.ErrorResponse "Not the caller's enrollment number"
// @Failure 404 {object} dto.ErrorResponse "No results found"
// @Router /results/student/{enrollmentNo} [get]
func (c *ResultController) GetStudentResults(ctx *gin.Context) {
	results, err := c.resultService.GetStudentResults(ctx, currentActor(ctx), ctx.Param("enrollmentNo"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(results, ""))
}

// ImportResults imports declared results from an uploaded CSV file
// @Summary Import results from CSV
// @Description Parses a results CSV and tags every row with a new upload batch ID
// @Tags results
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid CSV file"
// @Router /results/import [post]
func (c *ResultController) ImportResults(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("missing file upload"))
		return
	}

	summary, err := c.resultService.ImportResults(ctx, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Results imported"))
}

// ExportResults downloads all results as CSV
// @Summary Export results to CSV
// @Tags results
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV content"
// @Router /results/export [get]
func (c *ResultController) ExportResults(ctx *gin.Context) {
	content, err := c.resultService.ExportResults(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="results_export.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(content))
}

// DeleteResult removes one result
// @Summary Delete result
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param id path string true "Result ID"
// @Success 200 {object} dto.SuccessResponse "Result deleted"
// @Failure 404 {object} dto.ErrorResponse "Result not found"
// @Router /results/{id} [delete]
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	if err := c.resultService.DeleteResult(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Result deleted successfully"))
}

// ListBatches summarizes result upload batches
// @Summary List upload batches
// @Tags results
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.UploadBatch} "Batches retrieved"
// @Router /results/batches [get]
func (c *ResultController) ListBatches(ctx *gin.Context) {
	batches, err := c.resultService.ListBatches(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(batches, ""))
}

// DeleteBatch removes every result of one upload batch
// @Summary Delete upload batch
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param batchId path string true "Upload batch ID"
// @Success 200 {object} dto.APIResponse{data=dto.BatchDeleteSummary} "Batch deleted"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /results/batches/{batchId} [delete]
func (c *ResultController) DeleteBatch(ctx *gin.Context) {
	summary, err := c.resultService.DeleteBatch(ctx, ctx.Param("batchId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Upload batch deleted"))
}

// GetBranchAnalysis aggregates pass statistics per branch and semester
// @Summary Branch-wise result analysis
// @Description Aggregates pass rate, class buckets and average SPI/CPI per branch and semester
// @Tags results
// @Produce json
// @Security BearerAuth
// @Param academicYear query string false "Filter by academic year"
// @Param examId query int false "Filter by exam"
// @Success 200 {object} dto.APIResponse{data=[]models.BranchAnalysisRow} "Analysis retrieved"
// @Router /results/analysis [get]
func (c *ResultController) GetBranchAnalysis(ctx *gin.Context) {
	var q dto.BranchAnalysisQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	analysis, err := c.resultService.GetBranchAnalysis(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analysis, ""))
}
