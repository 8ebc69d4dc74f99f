package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

// ProjectService defines the interface for project operations
type ProjectService interface {
	CreateProject(ctx context.Context, actorID string, req *dto.CreateProjectRequest) (*models.Project, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context, q *dto.ProjectListQuery) ([]*models.Project, *dto.PaginationInfo, error)
	ListMyProjects(ctx context.Context, userID string) ([]*models.Project, error)
	ListForJury(ctx context.Context, eventID string, kind repositories.EvaluationKind, evaluated bool) ([]*models.Project, error)
	UpdateProject(ctx context.Context, actor *Actor, id string, req *dto.UpdateProjectRequest) (*models.Project, error)
	EvaluateProject(ctx context.Context, juryID, id string, kind repositories.EvaluationKind, req *dto.EvaluationRequest) (*models.Project, error)
	GetStatistics(ctx context.Context, eventID string) (*models.ProjectStatistics, error)
	GetEventWinners(ctx context.Context, eventID string) ([]*models.CategoryWinner, error)
	DeleteProject(ctx context.Context, actor *Actor, id string) error

	ImportProjects(ctx context.Context, actorID string, r io.Reader) (*dto.ImportSummary, error)
	ExportProjects(ctx context.Context, eventID string) (string, error)
}

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID string
	Role   string
}

// IsStaff reports whether the actor holds an administrative role.
func (a *Actor) IsStaff() bool {
	switch a.Role {
	case models.RoleAdmin, models.RolePrincipal, models.RoleHOD:
		return true
	}
	return false
}

// winnersPerCategory is how many ranked projects each category award lists.
const winnersPerCategory = 3

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	projectRepo    *repositories.ProjectRepository
	teamRepo       *repositories.TeamRepository
	eventRepo      *repositories.EventRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewProjectService creates a new project service instance
func NewProjectService(projectRepo *repositories.ProjectRepository, teamRepo *repositories.TeamRepository, eventRepo *repositories.EventRepository, departmentRepo *repositories.DepartmentRepository) ProjectService {
	return &projectServiceImpl{
		projectRepo:    projectRepo,
		teamRepo:       teamRepo,
		eventRepo:      eventRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateProject registers a project for an event. The caller must belong
// to the submitting team and the event's registration window must be open.
func (s *projectServiceImpl) CreateProject(ctx context.Context, actorID string, req *dto.CreateProjectRequest) (*models.Project, error) {
	event, err := s.eventRepo.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, err
	}
	if !event.RegistrationOpen(time.Now()) {
		return nil, apperrors.NewForbiddenError("registration for this event is closed")
	}

	team, err := s.teamRepo.GetByID(ctx, req.TeamID)
	if err != nil {
		return nil, err
	}
	if !teamHasMember(team, actorID) {
		return nil, apperrors.ErrPermissionDenied
	}

	project := &models.Project{
		Title:        req.Title,
		Category:     req.Category,
		Abstract:     req.Abstract,
		Status:       models.ProjectSubmitted,
		DepartmentID: req.DepartmentID,
		TeamID:       req.TeamID,
		EventID:      req.EventID,
		Requirements: req.Requirements,
		Guide:        req.Guide,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProjectByID retrieves a project
func (s *projectServiceImpl) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// ListProjects retrieves projects with pagination metadata
func (s *projectServiceImpl) ListProjects(ctx context.Context, q *dto.ProjectListQuery) ([]*models.Project, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	projects, total, err := s.projectRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return projects, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// ListMyProjects retrieves the projects of every team the user belongs to.
// Evaluation details are stripped until the event publishes its results.
func (s *projectServiceImpl) ListMyProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	teams, err := s.teamRepo.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []*models.Project{}, nil
	}

	teamIDs := make([]string, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}
	projects, err := s.projectRepo.ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	published := map[string]bool{}
	for _, p := range projects {
		show, ok := published[p.EventID]
		if !ok {
			event, err := s.eventRepo.GetByID(ctx, p.EventID)
			if err != nil {
				return nil, err
			}
			show = event.PublishResults
			published[p.EventID] = show
		}
		if !show {
			p.DeptEvaluation = nil
			p.CentralEvaluation = nil
		}
	}
	return projects, nil
}

// ListForJury retrieves projects awaiting or holding an evaluation of the
// given kind within an event.
func (s *projectServiceImpl) ListForJury(ctx context.Context, eventID string, kind repositories.EvaluationKind, evaluated bool) ([]*models.Project, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.projectRepo.ListForJury(ctx, eventID, kind, evaluated)
}

// UpdateProject applies the provided changes. Students may only edit
// projects of teams they belong to, and only while registration is open.
func (s *projectServiceImpl) UpdateProject(ctx context.Context, actor *Actor, id string, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(ctx, actor, project); err != nil {
		return nil, err
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.Abstract != nil {
		project.Abstract = *req.Abstract
	}
	if req.Status != nil {
		if !actor.IsStaff() {
			return nil, apperrors.NewForbiddenError("only staff may change project status")
		}
		project.Status = *req.Status
	}
	if req.Requirements != nil {
		project.Requirements = *req.Requirements
	}
	if req.Guide != nil {
		project.Guide = *req.Guide
	}
	project.UpdatedBy = actor.UserID

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// EvaluateProject records a department or central jury evaluation
func (s *projectServiceImpl) EvaluateProject(ctx context.Context, juryID, id string, kind repositories.EvaluationKind, req *dto.EvaluationRequest) (*models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Central juries evaluate only after the department round.
	if kind == repositories.CentralEvaluation {
		if project.DeptEvaluation == nil || !project.DeptEvaluation.Completed {
			return nil, apperrors.NewConflictError("department evaluation must be completed first")
		}
	}
	if err := s.projectRepo.SaveEvaluation(ctx, id, kind, req.Score, req.Feedback, juryID); err != nil {
		return nil, err
	}
	return s.projectRepo.GetByID(ctx, id)
}

// GetStatistics aggregates project counts and scores for an event
func (s *projectServiceImpl) GetStatistics(ctx context.Context, eventID string) (*models.ProjectStatistics, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.projectRepo.GetStatistics(ctx, eventID)
}

// GetEventWinners returns the ranked top projects per category for a
// completed event. Results are withheld until the event publishes them.
func (s *projectServiceImpl) GetEventWinners(ctx context.Context, eventID string) ([]*models.CategoryWinner, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !event.PublishResults {
		return nil, apperrors.NewForbiddenError("event results have not been published")
	}
	return s.projectRepo.GetCategoryWinners(ctx, eventID, winnersPerCategory)
}

// DeleteProject removes a project
func (s *projectServiceImpl) DeleteProject(ctx context.Context, actor *Actor, id string) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(ctx, actor, project); err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, id)
}

// authorizeOwner permits staff, and team members while registration is open.
func (s *projectServiceImpl) authorizeOwner(ctx context.Context, actor *Actor, project *models.Project) error {
	if actor.IsStaff() {
		return nil
	}

	team, err := s.teamRepo.GetByID(ctx, project.TeamID)
	if err != nil {
		return err
	}
	if !teamHasMember(team, actor.UserID) {
		return apperrors.ErrPermissionDenied
	}

	event, err := s.eventRepo.GetByID(ctx, project.EventID)
	if err != nil {
		return err
	}
	if !event.RegistrationOpen(time.Now()) {
		return apperrors.NewForbiddenError("registration for this event is closed")
	}
	return nil
}

// ImportProjects loads project rows from a CSV file. Teams and events are
// referenced by ID, departments by code. The registration window is not
// enforced so staff can backfill event data.
func (s *projectServiceImpl) ImportProjects(ctx context.Context, actorID string, r io.Reader) (*dto.ImportSummary, error) {
	table, err := helpers.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	deptByCode := map[string]string{}
	knownTeams := map[string]bool{}
	knownEvents := map[string]bool{}

	for i, row := range table.Rows {
		rowNum := i + 2

		title := firstNonEmpty(table.Field(row, "title"), table.Field(row, "Project Title"))
		teamID := table.Field(row, "team_id")
		eventID := table.Field(row, "event_id")
		if title == "" || teamID == "" || eventID == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: missing title, team ID or event ID", rowNum))
			continue
		}

		if !knownTeams[teamID] {
			if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: team %s not found", rowNum, teamID))
				continue
			}
			knownTeams[teamID] = true
		}
		if !knownEvents[eventID] {
			if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: event %s not found", rowNum, eventID))
				continue
			}
			knownEvents[eventID] = true
		}

		deptCode := firstNonEmpty(table.Field(row, "department_code"), table.Field(row, "Department"))
		departmentID, ok := deptByCode[deptCode]
		if !ok {
			dept, err := s.departmentRepo.GetByCode(ctx, deptCode)
			if err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: department %q not found", rowNum, deptCode))
				continue
			}
			departmentID = dept.ID
			deptByCode[deptCode] = dept.ID
		}

		status := firstNonEmpty(table.Field(row, "status"), models.ProjectSubmitted)
		project := &models.Project{
			Title:        title,
			Category:     table.Field(row, "category"),
			Abstract:     table.Field(row, "abstract"),
			Status:       status,
			DepartmentID: departmentID,
			TeamID:       teamID,
			EventID:      eventID,
			Requirements: models.ProjectRequirements{
				Power:      table.Field(row, "power_required") == "true",
				Internet:   table.Field(row, "internet_required") == "true",
				OtherNeeds: table.Field(row, "other_requirements"),
			},
			Guide: models.ProjectGuide{
				Name:         table.Field(row, "guide_name"),
				DepartmentID: departmentID,
				ContactNo:    table.Field(row, "guide_contact"),
			},
			CreatedBy: actorID,
			UpdatedBy: actorID,
		}
		if err := s.projectRepo.Create(ctx, project); err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		summary.Imported++
	}
	return summary, nil
}

// ExportProjects renders projects as CSV text, optionally filtered by event
func (s *projectServiceImpl) ExportProjects(ctx context.Context, eventID string) (string, error) {
	headers := []string{
		"Title", "Category", "Abstract", "Status", "Department", "Team", "Event",
		"Guide Name", "Guide Contact", "Department Score", "Central Score",
	}

	q := &dto.ProjectListQuery{Page: 1, Limit: helpers.MaxPageSize, EventID: eventID, SortBy: "created_at", SortOrder: "asc"}
	deptNames := map[string]string{}
	teamNames := map[string]string{}
	eventNames := map[string]string{}
	var rows [][]string
	for {
		offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
		projects, total, err := s.projectRepo.List(ctx, q, offset, limit)
		if err != nil {
			return "", err
		}
		for _, p := range projects {
			deptName, ok := deptNames[p.DepartmentID]
			if !ok {
				if dept, err := s.departmentRepo.GetByID(ctx, p.DepartmentID); err == nil {
					deptName = dept.Name
				}
				deptNames[p.DepartmentID] = deptName
			}
			teamName, ok := teamNames[p.TeamID]
			if !ok {
				if team, err := s.teamRepo.GetByID(ctx, p.TeamID); err == nil {
					teamName = team.Name
				}
				teamNames[p.TeamID] = teamName
			}
			eventName, ok := eventNames[p.EventID]
			if !ok {
				if event, err := s.eventRepo.GetByID(ctx, p.EventID); err == nil {
					eventName = event.Name
				}
				eventNames[p.EventID] = eventName
			}

			rows = append(rows, []string{
				p.Title, p.Category, p.Abstract, p.Status, deptName, teamName, eventName,
				p.Guide.Name, p.Guide.ContactNo,
				evaluationScore(p.DeptEvaluation), evaluationScore(p.CentralEvaluation),
			})
		}
		if int64(q.Page*limit) >= total {
			break
		}
		q.Page++
	}

	return helpers.WriteCSV(headers, rows)
}

func evaluationScore(eval *models.ProjectEvaluation) string {
	if eval == nil || !eval.Completed || eval.Score == nil {
		return ""
	}
	return strconv.FormatFloat(*eval.Score, 'f', 2, 64)
}

func teamHasMember(team *models.ProjectTeam, userID string) bool {
	for _, m := range team.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
