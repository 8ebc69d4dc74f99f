package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/services"
	"github.com/milavdabgar/gpp-portal/internal/middleware"
)

// EventController handles project event operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// CreateEvent handles event creation
// @Summary Create a project event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.ProjectEvent} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /project-events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	event, err := c.eventService.CreateEvent(ctx, currentUserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event, "Event created successfully"))
}

// GetEventByID retrieves an event with its schedule
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.ProjectEvent} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /project-events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	event, err := c.eventService.GetEventByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, ""))
}

// ListEvents retrieves all events
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectEvent} "Events retrieved"
// @Router /project-events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx, false)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// ListActiveEvents retrieves only active events
// @Summary List active events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.ProjectEvent} "Active events retrieved"
// @Router /project-events/active [get]
func (c *EventController) ListActiveEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx, true)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events, ""))
}

// UpdateEvent applies changes to an event
// @Summary Update event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.ProjectEvent} "Event updated"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /project-events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, currentUserID(ctx), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Event updated successfully"))
}

// UpdateSchedule replaces an event's schedule
// @Summary Update event schedule
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body dto.ScheduleUpdateRequest true "New schedule"
// @Success 200 {object} dto.APIResponse{data=models.ProjectEvent} "Schedule updated"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /project-events/{id}/schedule [patch]
func (c *EventController) UpdateSchedule(ctx *gin.Context) {
	var req dto.ScheduleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	event, err := c.eventService.UpdateSchedule(ctx, currentUserID(ctx), ctx.Param("id"), req.Schedule)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event, "Schedule updated successfully"))
}

// PublishResults toggles result publication for an event
// @Summary Publish or withhold event results
// @Description Makes evaluation scores and winners visible once the event day has passed
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param publish query bool true "Publish flag"
// @Success 200 {object} dto.SuccessResponse "Publication state updated"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Event has not taken place yet"
// @Router /project-events/{id}/publish [patch]
func (c *EventController) PublishResults(ctx *gin.Context) {
	publish := ctx.DefaultQuery("publish", "true") == "true"
	if err := c.eventService.PublishResults(ctx, currentUserID(ctx), ctx.Param("id"), publish); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	message := "Event results published"
	if !publish {
		message = "Event results withheld"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, message))
}

// DeleteEvent removes an event
// @Summary Delete event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} dto.SuccessResponse "Event deleted"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /project-events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	if err := c.eventService.DeleteEvent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Event deleted successfully"))
}
