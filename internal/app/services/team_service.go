package services

import (
	"context"
	"strings"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

// MaxTeamSize caps the number of members per project team.
const MaxTeamSize = 4

// TeamService defines the interface for project team operations
type TeamService interface {
	CreateTeam(ctx context.Context, actorID string, req *dto.CreateTeamRequest) (*models.ProjectTeam, error)
	GetTeamByID(ctx context.Context, id string) (*models.ProjectTeam, error)
	ListTeams(ctx context.Context, eventID, departmentID string, page, limit int) ([]*models.ProjectTeam, *dto.PaginationInfo, error)
	ListMyTeams(ctx context.Context, userID string) ([]*models.ProjectTeam, error)
	UpdateTeam(ctx context.Context, actorID, id string, req *dto.UpdateTeamRequest) (*models.ProjectTeam, error)
	SetLeader(ctx context.Context, teamID, memberID string) (*models.ProjectTeam, error)
	RemoveMember(ctx context.Context, teamID, memberID string) (*models.ProjectTeam, error)
	DeleteTeam(ctx context.Context, id string) error
}

// teamServiceImpl implements the TeamService interface
type teamServiceImpl struct {
	teamRepo       *repositories.TeamRepository
	eventRepo      *repositories.EventRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewTeamService creates a new team service instance
func NewTeamService(teamRepo *repositories.TeamRepository, eventRepo *repositories.EventRepository, departmentRepo *repositories.DepartmentRepository) TeamService {
	return &teamServiceImpl{
		teamRepo:       teamRepo,
		eventRepo:      eventRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateTeam registers a team for an event. The creator becomes the leader
// when no leader is flagged.
func (s *teamServiceImpl) CreateTeam(ctx context.Context, actorID string, req *dto.CreateTeamRequest) (*models.ProjectTeam, error) {
	if len(req.Members) > MaxTeamSize {
		return nil, apperrors.NewValidationError("a team may have at most 4 members")
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}
	if _, err := s.eventRepo.GetByID(ctx, req.EventID); err != nil {
		return nil, err
	}

	members := toMembers(req.Members)
	if err := validateLeaders(members); err != nil {
		return nil, err
	}

	team := &models.ProjectTeam{
		Name:         strings.TrimSpace(req.Name),
		DepartmentID: req.DepartmentID,
		EventID:      req.EventID,
		Members:      members,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, team.ID)
}

// GetTeamByID retrieves a team with its members
func (s *teamServiceImpl) GetTeamByID(ctx context.Context, id string) (*models.ProjectTeam, error) {
	return s.teamRepo.GetByID(ctx, id)
}

// ListTeams retrieves teams with pagination metadata
func (s *teamServiceImpl) ListTeams(ctx context.Context, eventID, departmentID string, page, limit int) ([]*models.ProjectTeam, *dto.PaginationInfo, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)
	teams, total, err := s.teamRepo.List(ctx, eventID, departmentID, offset, size)
	if err != nil {
		return nil, nil, err
	}
	return teams, helpers.NewPaginationInfo(total, page, size), nil
}

// ListMyTeams retrieves the teams the caller belongs to
func (s *teamServiceImpl) ListMyTeams(ctx context.Context, userID string) ([]*models.ProjectTeam, error) {
	return s.teamRepo.ListByMember(ctx, userID)
}

// UpdateTeam applies the provided changes to a team
func (s *teamServiceImpl) UpdateTeam(ctx context.Context, actorID, id string, req *dto.UpdateTeamRequest) (*models.ProjectTeam, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		team.Name = strings.TrimSpace(*req.Name)
	}
	if req.Members != nil {
		if len(req.Members) > MaxTeamSize {
			return nil, apperrors.NewValidationError("a team may have at most 4 members")
		}
		members := toMembers(req.Members)
		if err := validateLeaders(members); err != nil {
			return nil, err
		}
		team.Members = members
	} else {
		team.Members = nil
	}
	team.UpdatedBy = actorID

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, id)
}

// SetLeader promotes one member to leader and demotes the rest
func (s *teamServiceImpl) SetLeader(ctx context.Context, teamID, memberID string) (*models.ProjectTeam, error) {
	if err := s.teamRepo.SetLeader(ctx, teamID, memberID); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, teamID)
}

// RemoveMember removes a member. The last leader cannot be removed.
func (s *teamServiceImpl) RemoveMember(ctx context.Context, teamID, memberID string) (*models.ProjectTeam, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	for _, m := range team.Members {
		if m.ID == memberID && m.IsLeader && team.LeaderCount() == 1 {
			return nil, apperrors.NewBadRequestError("assign another leader before removing this member")
		}
	}
	if err := s.teamRepo.RemoveMember(ctx, teamID, memberID); err != nil {
		return nil, err
	}
	return s.teamRepo.GetByID(ctx, teamID)
}

// DeleteTeam removes a team
func (s *teamServiceImpl) DeleteTeam(ctx context.Context, id string) error {
	return s.teamRepo.Delete(ctx, id)
}

func toMembers(reqs []dto.TeamMemberRequest) []models.TeamMember {
	members := make([]models.TeamMember, 0, len(reqs))
	for _, m := range reqs {
		role := m.Role
		if role == "" {
			role = "member"
		}
		members = append(members, models.TeamMember{
			UserID:       m.UserID,
			Name:         m.Name,
			EnrollmentNo: m.EnrollmentNo,
			Role:         role,
			IsLeader:     m.IsLeader,
		})
	}
	return members
}

func validateLeaders(members []models.TeamMember) error {
	leaders := 0
	for _, m := range members {
		if m.IsLeader {
			leaders++
		}
	}
	if leaders > 1 {
		return apperrors.NewValidationError("a team may have only one leader")
	}
	return nil
}
