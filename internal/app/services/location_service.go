package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

// LocationService defines the interface for stall location operations
type LocationService interface {
	CreateLocation(ctx context.Context, actorID string, req *dto.CreateLocationRequest) (*models.ProjectLocation, error)
	CreateBatch(ctx context.Context, actorID string, req *dto.BatchLocationRequest) ([]*models.ProjectLocation, error)
	GetLocationByID(ctx context.Context, id string) (*models.ProjectLocation, error)
	ListLocations(ctx context.Context, q *dto.LocationListQuery) ([]*models.ProjectLocation, *dto.PaginationInfo, error)
	UpdateLocation(ctx context.Context, actorID, id string, req *dto.UpdateLocationRequest) (*models.ProjectLocation, error)
	AssignProject(ctx context.Context, actorID, locationID, projectID string) (*models.ProjectLocation, error)
	UnassignProject(ctx context.Context, actorID, locationID string) (*models.ProjectLocation, error)
	DeleteLocation(ctx context.Context, id string) error
}

// locationServiceImpl implements the LocationService interface
type locationServiceImpl struct {
	locationRepo *repositories.LocationRepository
	projectRepo  *repositories.ProjectRepository
	eventRepo    *repositories.EventRepository
}

// NewLocationService creates a new location service instance
func NewLocationService(locationRepo *repositories.LocationRepository, projectRepo *repositories.ProjectRepository, eventRepo *repositories.EventRepository) LocationService {
	return &locationServiceImpl{
		locationRepo: locationRepo,
		projectRepo:  projectRepo,
		eventRepo:    eventRepo,
	}
}

// CreateLocation adds a single stall location to an event
func (s *locationServiceImpl) CreateLocation(ctx context.Context, actorID string, req *dto.CreateLocationRequest) (*models.ProjectLocation, error) {
	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	location := &models.ProjectLocation{
		LocationID:   strings.ToUpper(strings.TrimSpace(req.LocationID)),
		Section:      strings.ToUpper(strings.TrimSpace(req.Section)),
		Position:     req.Position,
		DepartmentID: req.DepartmentID,
		EventID:      req.EventID,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}
	if err := s.locationRepo.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// CreateBatch adds a contiguous run of locations within a section
func (s *locationServiceImpl) CreateBatch(ctx context.Context, actorID string, req *dto.BatchLocationRequest) ([]*models.ProjectLocation, error) {
	if req.EndPosition < req.StartPosition {
		return nil, apperrors.NewValidationError("end position must not precede start position")
	}
	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	section := strings.ToUpper(strings.TrimSpace(req.Section))
	var created []*models.ProjectLocation
	for pos := req.StartPosition; pos <= req.EndPosition; pos++ {
		location := &models.ProjectLocation{
			Section:      section,
			Position:     pos,
			DepartmentID: req.DepartmentID,
			EventID:      req.EventID,
			CreatedBy:    actorID,
			UpdatedBy:    actorID,
		}
		if err := s.locationRepo.Create(ctx, location); err != nil {
			return created, fmt.Errorf("stopped at position %d: %w", pos, err)
		}
		created = append(created, location)
	}
	return created, nil
}

// GetLocationByID retrieves a location
func (s *locationServiceImpl) GetLocationByID(ctx context.Context, id string) (*models.ProjectLocation, error) {
	return s.locationRepo.GetByID(ctx, id)
}

// ListLocations retrieves locations with pagination metadata
func (s *locationServiceImpl) ListLocations(ctx context.Context, q *dto.LocationListQuery) ([]*models.ProjectLocation, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	locations, total, err := s.locationRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return locations, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// UpdateLocation applies the provided changes to a location
func (s *locationServiceImpl) UpdateLocation(ctx context.Context, actorID, id string, req *dto.UpdateLocationRequest) (*models.ProjectLocation, error) {
	location, err := s.locationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Section != nil {
		location.Section = strings.ToUpper(strings.TrimSpace(*req.Section))
	}
	if req.Position != nil {
		location.Position = *req.Position
	}
	if req.Section != nil || req.Position != nil {
		location.LocationID = fmt.Sprintf("%s-%02d", location.Section, location.Position)
	}
	if req.DepartmentID != nil {
		location.DepartmentID = req.DepartmentID
	}
	location.UpdatedBy = actorID

	if err := s.locationRepo.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

// AssignProject places a project on a free location and records the
// assignment on the project itself.
func (s *locationServiceImpl) AssignProject(ctx context.Context, actorID, locationID, projectID string) (*models.ProjectLocation, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.LocationID != nil && *project.LocationID != locationID {
		return nil, apperrors.NewConflictError("project is already assigned to another location")
	}

	if err := s.locationRepo.Assign(ctx, locationID, projectID, actorID); err != nil {
		return nil, err
	}
	if err := s.projectRepo.SetLocation(ctx, projectID, &locationID, actorID); err != nil {
		return nil, err
	}
	return s.locationRepo.GetByID(ctx, locationID)
}

// UnassignProject removes the project from a location
func (s *locationServiceImpl) UnassignProject(ctx context.Context, actorID, locationID string) (*models.ProjectLocation, error) {
	location, err := s.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location.ProjectID != nil {
		if err := s.projectRepo.SetLocation(ctx, *location.ProjectID, nil, actorID); err != nil {
			return nil, err
		}
	}
	if err := s.locationRepo.Unassign(ctx, locationID, actorID); err != nil {
		return nil, err
	}
	return s.locationRepo.GetByID(ctx, locationID)
}

// DeleteLocation removes an unassigned location
func (s *locationServiceImpl) DeleteLocation(ctx context.Context, id string) error {
	return s.locationRepo.Delete(ctx, id)
}
