package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// ProjectController handles project and evaluation operations
type ProjectController struct {
	projectService services.ProjectService
}

// NewProjectController creates a new ProjectController
func NewProjectController(projectService services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService}
}

// CreateProject handles project registration
// @Summary Register a project
// @Description Registers a team project for an event while registration is open
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateProjectRequest true "Project information"
// @Success 201 {object} dto.APIResponse{data=models.Project} "Project created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 403 {object} dto.ErrorResponse "Registration closed or not a team member"
// @Router /projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	project, err := c.projectService.CreateProject(ctx, currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(project, "Project registered successfully"))
}

// GetProjectByID retrieves a project
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project retrieved"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProjectByID(ctx *gin.Context) {
	project, err := c.projectService.GetProjectByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(project, ""))
}

// ListProjects retrieves projects with pagination and filters
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param departmentId query string false "Filter by department"
// @Param eventId query string false "Filter by event"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param search query string false "Search in title"
// @Success 200 {object} dto.APIResponse{data=[]models.Project} "Projects retrieved"
// @Router /projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	var q dto.ProjectListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	projects, pagination, err := c.projectService.ListProjects(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(projects, *pagination))
}

// ListMyProjects retrieves the caller's team projects
// @Summary List my projects
// @Description Retrieves projects of every team the caller belongs to.
// @Description Evaluation details appear only after results are published.
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Project} "Projects retrieved"
// @Router /projects/my [get]
func (c *ProjectController) ListMyProjects(ctx *gin.Context) {
	projects, err := c.projectService.ListMyProjects(ctx, currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects, ""))
}

// ListForJury retrieves projects for jury evaluation
// @Summary List projects for jury
// @Description Retrieves projects of an event awaiting or holding an evaluation
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param eventId query string true "Event ID"
// @Param evaluationType query string false "department or central" default(department)
// @Param evaluated query bool false "Include already evaluated projects"
// @Success 200 {object} dto.APIResponse{data=[]models.Project} "Projects retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /projects/jury [get]
func (c *ProjectController) ListForJury(ctx *gin.Context) {
	kind := repositories.EvaluationKind(ctx.DefaultQuery("evaluationType", string(repositories.DeptEvaluation)))
	evaluated := ctx.Query("evaluated") == "true"

	projects, err := c.projectService.ListForJury(ctx, ctx.Query("eventId"), kind, evaluated)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects, ""))
}

// UpdateProject applies changes to a project
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Project updated"
// @Failure 403 {object} dto.ErrorResponse "Not a team member or registration closed"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [put]
func (c *ProjectController) UpdateProject(ctx *gin.Context) {
	var req dto.UpdateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	project, err := c.projectService.UpdateProject(ctx, currentActor(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(project, "Project updated successfully"))
}

// EvaluateDepartment records a department jury evaluation
// @Summary Department evaluation
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.EvaluationRequest true "Score and feedback"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Evaluation recorded"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id}/department-evaluation [post]
func (c *ProjectController) EvaluateDepartment(ctx *gin.Context) {
	c.evaluate(ctx, repositories.DeptEvaluation)
}

// EvaluateCentral records a central jury evaluation
// @Summary Central evaluation
// @Description Records the central expert evaluation. Requires a completed
// @Description department evaluation.
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body dto.EvaluationRequest true "Score and feedback"
// @Success 200 {object} dto.APIResponse{data=models.Project} "Evaluation recorded"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Failure 409 {object} dto.ErrorResponse "Department evaluation missing"
// @Router /projects/{id}/central-evaluation [post]
func (c *ProjectController) EvaluateCentral(ctx *gin.Context) {
	c.evaluate(ctx, repositories.CentralEvaluation)
}

func (c *ProjectController) evaluate(ctx *gin.Context, kind repositories.EvaluationKind) {
	var req dto.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	project, err := c.projectService.EvaluateProject(ctx, currentUserID(ctx), ctx.Param("id"), kind, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(project, "Evaluation recorded"))
}

// GetStatistics aggregates event project statistics
// @Summary Event project statistics
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param eventId query string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectStatistics} "Statistics retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /projects/statistics [get]
func (c *ProjectController) GetStatistics(ctx *gin.Context) {
	stats, err := c.projectService.GetStatistics(ctx, ctx.Query("eventId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(stats, ""))
}

// GetEventWinners lists the top projects per category
// @Summary Event winners
// @Description Lists the top three projects per category for a published event
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param eventId query string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.CategoryWinner} "Winners retrieved"
// @Failure 403 {object} dto.ErrorResponse "Results not published"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /projects/winners [get]
func (c *ProjectController) GetEventWinners(ctx *gin.Context) {
	winners, err := c.projectService.GetEventWinners(ctx, ctx.Query("eventId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(winners, ""))
}

// DeleteProject removes a project
// @Summary Delete project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} dto.SuccessResponse "Project deleted"
// @Failure 403 {object} dto.ErrorResponse "Not a team member or registration closed"
// @Failure 404 {object} dto.ErrorResponse "Project not found"
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(ctx *gin.Context) {
	if err := c.projectService.DeleteProject(ctx, currentActor(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Project deleted successfully"))
}

// ImportProjects imports projects from an uploaded CSV file
// @Summary Import projects from CSV
// @Description Parses a CSV upload and registers projects against existing teams and events
// @Tags projects
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.APIResponse{data=dto.ImportSummary} "Import summary"
// @Failure 400 {object} dto.ErrorResponse "Invalid CSV file"
// @Router /projects/import [post]
func (c *ProjectController) ImportProjects(ctx *gin.Context) {
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

	summary, err := c.projectService.ImportProjects(ctx, currentUserID(ctx), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary, "Projects imported"))
}

// ExportProjects downloads projects as CSV, optionally filtered by event
// @Summary Export projects to CSV
// @Tags projects
// @Produce text/csv
// @Security BearerAuth
// @Param eventId query string false "Event ID"
// @Success 200 {string} string "CSV content"
// @Router /projects/export [get]
func (c *ProjectController) ExportProjects(ctx *gin.Context) {
	content, err := c.projectService.ExportProjects(ctx, ctx.Query("eventId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="projects_export.csv"`)
	ctx.Data(http.StatusOK, "text/csv", []byte(content))
}
