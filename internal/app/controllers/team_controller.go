package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

// TeamController handles project team operations
type TeamController struct {
	teamService services.TeamService
}

// NewTeamController creates a new TeamController
func NewTeamController(teamService services.TeamService) *TeamController {
	return &TeamController{teamService: teamService}
}

// CreateTeam handles team creation
// @Summary Create a project team
// @Description Creates a team with up to four members and a single leader
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeamRequest true "Team information"
// @Success 201 {object} dto.APIResponse{data=models.ProjectTeam} "Team created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /project-teams [post]
func (c *TeamController) CreateTeam(ctx *gin.Context) {
	var req dto.CreateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	team, err := c.teamService.CreateTeam(ctx, currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(team, "Team created successfully"))
}

// GetTeamByID retrieves a team with its members
// @Summary Get team by ID
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectTeam} "Team retrieved"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /project-teams/{id} [get]
func (c *TeamController) GetTeamByID(ctx *gin.Context) {
	team, err := c.teamService.GetTeamByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team, ""))
}

// ListTeams retrieves teams with pagination
// @Summary List teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param eventId query string false "Filter by event"
// @Param departmentId query string false "Filter by department"
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectTeam} "Teams retrieved"
// @Router /project-teams [get]
func (c *TeamController) ListTeams(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)
	teams, pagination, err := c.teamService.ListTeams(ctx, ctx.Query("eventId"), ctx.Query("departmentId"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(teams, *pagination))
}

// ListMyTeams retrieves the caller's teams
// @Summary List my teams
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectTeam} "Teams retrieved"
// @Router /project-teams/my [get]
func (c *TeamController) ListMyTeams(ctx *gin.Context) {
	teams, err := c.teamService.ListMyTeams(ctx, currentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teams, ""))
}

// UpdateTeam applies changes to a team
// @Summary Update team
// @Tags teams
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param request body dto.UpdateTeamRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.ProjectTeam} "Team updated"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /project-teams/{id} [put]
func (c *TeamController) UpdateTeam(ctx *gin.Context) {
	var req dto.UpdateTeamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	team, err := c.teamService.UpdateTeam(ctx, currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team, "Team updated successfully"))
}

// SetLeader promotes a member to team leader
// @Summary Set team leader
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param memberId path string true "Member user ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectTeam} "Leader updated"
// @Failure 404 {object} dto.ErrorResponse "Team or member not found"
// @Router /project-teams/{id}/leader/{memberId} [patch]
func (c *TeamController) SetLeader(ctx *gin.Context) {
	team, err := c.teamService.SetLeader(ctx, ctx.Param("id"), ctx.Param("memberId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team, "Team leader updated"))
}

// RemoveMember removes a member from a team
// @Summary Remove team member
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Param memberId path string true "Member user ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectTeam} "Member removed"
// @Failure 404 {object} dto.ErrorResponse "Team or member not found"
// @Failure 409 {object} dto.ErrorResponse "Cannot remove the only leader"
// @Router /project-teams/{id}/members/{memberId} [delete]
func (c *TeamController) RemoveMember(ctx *gin.Context) {
	team, err := c.teamService.RemoveMember(ctx, ctx.Param("id"), ctx.Param("memberId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(team, "Team member removed"))
}

// DeleteTeam removes a team
// @Summary Delete team
// @Tags teams
// @Produce json
// @Security BearerAuth
// @Param id path string true "Team ID"
// @Success 200 {object} dto.SuccessResponse "Team deleted"
// @Failure 404 {object} dto.ErrorResponse "Team not found"
// @Router /project-teams/{id} [delete]
func (c *TeamController) DeleteTeam(ctx *gin.Context) {
	if err := c.teamService.DeleteTeam(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Team deleted successfully"))
}
