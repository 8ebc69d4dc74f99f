package services

import (
	"context"
	"strings"
	"time"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/validation"
)

// EventService defines the interface for project event operations
type EventService interface {
	CreateEvent(ctx context.Context, actorID string, req *dto.CreateEventRequest) (*models.ProjectEvent, error)
	GetEventByID(ctx context.Context, id string) (*models.ProjectEvent, error)
	ListEvents(ctx context.Context, activeOnly bool) ([]*models.ProjectEvent, error)
	UpdateEvent(ctx context.Context, actorID, id string, req *dto.UpdateEventRequest) (*models.ProjectEvent, error)
	UpdateSchedule(ctx context.Context, actorID, id string, schedule []models.EventSchedule) (*models.ProjectEvent, error)
	PublishResults(ctx context.Context, actorID, id string, publish bool) error
	DeleteEvent(ctx context.Context, id string) error
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo      *repositories.EventRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo *repositories.EventRepository, departmentRepo *repositories.DepartmentRepository) EventService {
	return &eventServiceImpl{
		eventRepo:      eventRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateEvent creates a project event after window validation
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actorID string, req *dto.CreateEventRequest) (*models.ProjectEvent, error) {
	if !validation.IsValidAcademicYear(req.AcademicYear) {
		return nil, apperrors.NewValidationError("academic year must match YYYY-YY")
	}
	if req.RegistrationEnd.Before(req.RegistrationStart) {
		return nil, apperrors.NewValidationError("registration end must be after registration start")
	}
	if req.EventDate.Before(req.RegistrationStart) {
		return nil, apperrors.NewValidationError("event date must be after registration opens")
	}

	for _, deptID := range req.DepartmentIDs {
		if _, err := s.departmentRepo.GetByID(ctx, deptID); err != nil {
			return nil, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	status := req.Status
	if status == "" {
		status = models.EventUpcoming
	}

	event := &models.ProjectEvent{
		Name:              strings.TrimSpace(req.Name),
		Description:       req.Description,
		AcademicYear:      req.AcademicYear,
		EventDate:         req.EventDate,
		RegistrationStart: req.RegistrationStart,
		RegistrationEnd:   req.RegistrationEnd,
		IsActive:          isActive,
		Status:            status,
		Schedule:          req.Schedule,
		DepartmentIDs:     req.DepartmentIDs,
		CreatedBy:         actorID,
		UpdatedBy:         actorID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEventByID retrieves an event
func (s *eventServiceImpl) GetEventByID(ctx context.Context, id string) (*models.ProjectEvent, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// ListEvents retrieves all or only active events
func (s *eventServiceImpl) ListEvents(ctx context.Context, activeOnly bool) ([]*models.ProjectEvent, error) {
	return s.eventRepo.List(ctx, activeOnly)
}

// UpdateEvent applies the provided changes to an event
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, actorID, id string, req *dto.UpdateEventRequest) (*models.ProjectEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.AcademicYear != nil {
		if !validation.IsValidAcademicYear(*req.AcademicYear) {
			return nil, apperrors.NewValidationError("academic year must match YYYY-YY")
		}
		event.AcademicYear = *req.AcademicYear
	}
	if req.EventDate != nil {
		event.EventDate = *req.EventDate
	}
	if req.RegistrationStart != nil {
		event.RegistrationStart = *req.RegistrationStart
	}
	if req.RegistrationEnd != nil {
		event.RegistrationEnd = *req.RegistrationEnd
	}
	if event.RegistrationEnd.Before(event.RegistrationStart) {
		return nil, apperrors.NewValidationError("registration end must be after registration start")
	}
	if req.IsActive != nil {
		event.IsActive = *req.IsActive
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.PublishResults != nil {
		event.PublishResults = *req.PublishResults
	}
	if req.DepartmentIDs != nil {
		for _, deptID := range req.DepartmentIDs {
			if _, err := s.departmentRepo.GetByID(ctx, deptID); err != nil {
				return nil, err
			}
		}
		event.DepartmentIDs = req.DepartmentIDs
	}
	if req.Schedule != nil {
		event.Schedule = req.Schedule
	}
	event.UpdatedBy = actorID

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateSchedule replaces the agenda of an event
func (s *eventServiceImpl) UpdateSchedule(ctx context.Context, actorID, id string, schedule []models.EventSchedule) (*models.ProjectEvent, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	event.Schedule = schedule
	event.UpdatedBy = actorID
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// PublishResults toggles result visibility once the event date has passed
func (s *eventServiceImpl) PublishResults(ctx context.Context, actorID, id string, publish bool) error {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if publish && time.Now().Before(event.EventDate) {
		return apperrors.NewBadRequestError("results cannot be published before the event date")
	}
	return s.eventRepo.SetPublishResults(ctx, id, publish, actorID)
}

// DeleteEvent removes an event
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	return s.eventRepo.Delete(ctx, id)
}
