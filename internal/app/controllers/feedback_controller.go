package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// FeedbackController handles teaching feedback analysis operations
type FeedbackController struct {
	feedbackService services.FeedbackService
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService services.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// GetSample downloads the feedback CSV upload template
// @Summary Sample feedback CSV
// @Description Returns the CSV template with one example row
// @Tags feedback
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "CSV content"
// @Router /feedback/sample [get]
func (c *FeedbackController) GetSample(ctx *gin.Context) {
	sample, err := c.feedbackService.SampleCSV()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="`+sample.FileName+`"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(sample.Content))
}

// AnalyzeCSV analyzes an uploaded feedback CSV
// @Summary Analyze feedback CSV
// @Description Computes per-subject, faculty, semester, branch and term statistics
// @Description over the uploaded rating rows and stores the analysis
// @Tags feedback
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 201 {object} dto.APIResponse{data=models.FeedbackAnalysis} "Analysis stored"
// @Failure 400 {object} dto.ErrorResponse "Invalid CSV file"
// @Router /feedback/analyze [post]
func (c *FeedbackController) AnalyzeCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("missing file upload"))
		return
	}

	analysis, err := c.feedbackService.AnalyzeCSV(ctx, currentUserID(ctx), fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(analysis, "Feedback analyzed successfully"))
}

// GetAnalysisByID retrieves a stored analysis
// @Summary Get analysis by ID
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {object} dto.APIResponse{data=models.FeedbackAnalysis} "Analysis retrieved"
// @Failure 404 {object} dto.ErrorResponse "Analysis not found"
// @Router /feedback/{id} [get]
func (c *FeedbackController) GetAnalysisByID(ctx *gin.Context) {
	analysis, err := c.feedbackService.GetAnalysisByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analysis, ""))
}

// ListAnalyses retrieves stored analyses with pagination
// @Summary List analyses
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=[]models.FeedbackAnalysis} "Analyses retrieved"
// @Router /feedback [get]
func (c *FeedbackController) ListAnalyses(ctx *gin.Context) {
	var q dto.FeedbackListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	analyses, pagination, err := c.feedbackService.ListAnalyses(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(analyses, *pagination))
}

// GetLaTeXReport downloads the LaTeX report of a stored analysis
// @Summary LaTeX feedback report
// @Tags feedback
// @Produce application/x-latex
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {string} string "LaTeX document"
// @Failure 404 {object} dto.ErrorResponse "Analysis not found"
// @Router /feedback/{id}/report/latex [get]
func (c *FeedbackController) GetLaTeXReport(ctx *gin.Context) {
	doc, err := c.feedbackService.LaTeXReport(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="feedback_report.tex"`)
	ctx.Data(http.StatusOK, "application/x-latex", []byte(doc))
}

// GetPDFReport downloads the report of a stored analysis. Without a PDF
// renderer available the LaTeX source is served instead.
// @Summary PDF feedback report
// @Description Serves the report document. Falls back to the LaTeX source
// @Description when no PDF renderer is available.
// @Tags feedback
// @Produce application/x-latex
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {string} string "Report document"
// @Failure 404 {object} dto.ErrorResponse "Analysis not found"
// @Router /feedback/{id}/report/pdf [get]
func (c *FeedbackController) GetPDFReport(ctx *gin.Context) {
	doc, err := c.feedbackService.LaTeXReport(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="feedback_report.tex"`)
	ctx.Data(http.StatusOK, "application/x-latex", []byte(doc))
}

// ExportReport downloads the per-subject summary of an analysis as CSV
// @Summary Export analysis report to CSV
// @Tags feedback
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {string} string "CSV content"
// @Failure 404 {object} dto.ErrorResponse "Analysis not found"
// @Router /feedback/{id}/report/csv [get]
func (c *FeedbackController) ExportReport(ctx *gin.Context) {
	content, err := c.feedbackService.ExportReportCSV(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="feedback_report.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(content))
}

// DeleteAnalysis removes a stored analysis
// @Summary Delete analysis
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Analysis ID"
// @Success 200 {object} dto.SuccessResponse "Analysis deleted"
// @Failure 404 {object} dto.ErrorResponse "Analysis not found"
// @Router /feedback/{id} [delete]
func (c *FeedbackController) DeleteAnalysis(ctx *gin.Context) {
	if err := c.feedbackService.DeleteAnalysis(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Analysis deleted successfully"))
}
