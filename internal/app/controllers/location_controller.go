package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
)

// LocationController handles stall location operations
type LocationController struct {
	locationService services.LocationService
}

// NewLocationController creates a new LocationController
func NewLocationController(locationService services.LocationService) *LocationController {
	return &LocationController{locationService: locationService}
}

// CreateLocation handles single location creation
// @Summary Create a stall location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLocationRequest true "Location information"
// @Success 201 {object} dto.APIResponse{data=models.ProjectLocation} "Location created"
// @Failure 409 {object} dto.ErrorResponse "Location ID already exists"
// @Router /project-locations [post]
func (c *LocationController) CreateLocation(ctx *gin.Context) {
	var req dto.CreateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	location, err := c.locationService.CreateLocation(ctx, currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(location, "Location created successfully"))
}

// CreateBatch creates a contiguous run of locations
// @Summary Create locations in batch
// @Description Creates one location per position between start and end within a section
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchLocationRequest true "Batch parameters"
// @Success 201 {object} dto.APIResponse{data=[]models.ProjectLocation} "Locations created"
// @Failure 400 {object} dto.ErrorResponse "Invalid position range"
// @Router /project-locations/batch [post]
func (c *LocationController) CreateBatch(ctx *gin.Context) {
	var req dto.BatchLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	locations, err := c.locationService.CreateBatch(ctx, currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(locations, "Locations created successfully"))
}

// GetLocationByID retrieves a location
// @Summary Get location by ID
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectLocation} "Location retrieved"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /project-locations/{id} [get]
func (c *LocationController) GetLocationByID(ctx *gin.Context) {
	location, err := c.locationService.GetLocationByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(location, ""))
}

// ListLocations retrieves locations with pagination and filters
// @Summary List locations
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param eventId query string false "Filter by event"
// @Param section query string false "Filter by section"
// @Param departmentId query string false "Filter by department"
// @Param isAssigned query bool false "Filter by assignment state"
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectLocation} "Locations retrieved"
// @Router /project-locations [get]
func (c *LocationController) ListLocations(ctx *gin.Context) {
	var q dto.LocationListQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	locations, pagination, err := c.locationService.ListLocations(ctx, &q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(locations, *pagination))
}

// UpdateLocation applies changes to a location
// @Summary Update location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.ProjectLocation} "Location updated"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /project-locations/{id} [put]
func (c *LocationController) UpdateLocation(ctx *gin.Context) {
	var req dto.UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	location, err := c.locationService.UpdateLocation(ctx, currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(location, "Location updated successfully"))
}

// AssignProject places a project on a location
// @Summary Assign project to location
// @Tags locations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Param request body dto.AssignLocationRequest true "Project to assign"
// @Success 200 {object} dto.APIResponse{data=models.ProjectLocation} "Project assigned"
// @Failure 404 {object} dto.ErrorResponse "Location or project not found"
// @Failure 409 {object} dto.ErrorResponse "Location already assigned"
// @Router /project-locations/{id}/assign [patch]
func (c *LocationController) AssignProject(ctx *gin.Context) {
	var req dto.AssignLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	location, err := c.locationService.AssignProject(ctx, currentUserID(ctx), ctx.Param("id"), req.ProjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(location, "Project assigned to location"))
}

// UnassignProject removes the project from a location
// @Summary Unassign project from location
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectLocation} "Project unassigned"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Router /project-locations/{id}/unassign [patch]
func (c *LocationController) UnassignProject(ctx *gin.Context) {
	location, err := c.locationService.UnassignProject(ctx, currentUserID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(location, "Project unassigned from location"))
}

// DeleteLocation removes an unassigned location
// @Summary Delete location
// @Tags locations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Location ID"
// @Success 200 {object} dto.SuccessResponse "Location deleted"
// @Failure 404 {object} dto.ErrorResponse "Location not found"
// @Failure 409 {object} dto.ErrorResponse "Location has a project assigned"
// @Router /project-locations/{id} [delete]
func (c *LocationController) DeleteLocation(ctx *gin.Context) {
	if err := c.locationService.DeleteLocation(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Location deleted successfully"))
}
