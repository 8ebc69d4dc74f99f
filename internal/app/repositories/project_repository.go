package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// EvaluationKind selects which jury evaluation of a project is addressed.
type EvaluationKind string

const (
	DeptEvaluation    EvaluationKind = "department"
	CentralEvaluation EvaluationKind = "central"
)

// ProjectRepository handles database operations for projects
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, category, abstract, status, department_id, team_id, event_id, location_id,
	req_power, req_internet, req_special_space, req_other,
	guide_user_id, guide_name, guide_department_id, guide_contact,
	dept_eval_completed, dept_eval_score, dept_eval_feedback, dept_eval_jury_id, dept_eval_at,
	central_eval_completed, central_eval_score, central_eval_feedback, central_eval_jury_id, central_eval_at,
	created_by, updated_by, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	var dept, central models.ProjectEvaluation
	err := row.Scan(
		&p.ID, &p.Title, &p.Category, &p.Abstract, &p.Status, &p.DepartmentID, &p.TeamID, &p.EventID, &p.LocationID,
		&p.Requirements.Power, &p.Requirements.Internet, &p.Requirements.SpecialSpace, &p.Requirements.OtherNeeds,
		&p.Guide.UserID, &p.Guide.Name, &p.Guide.DepartmentID, &p.Guide.ContactNo,
		&dept.Completed, &dept.Score, &dept.Feedback, &dept.JuryID, &dept.EvaluatedAt,
		&central.Completed, &central.Score, &central.Feedback, &central.JuryID, &central.EvaluatedAt,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("error scanning project: %w", err)
	}
	p.DeptEvaluation = &dept
	p.CentralEvaluation = &central
	return &p, nil
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO projects (id, title, category, abstract, status, department_id, team_id, event_id,
			req_power, req_internet, req_special_space, req_other,
			guide_user_id, guide_name, guide_department_id, guide_contact,
			created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		p.ID, p.Title, p.Category, p.Abstract, p.Status, p.DepartmentID, p.TeamID, p.EventID,
		p.Requirements.Power, p.Requirements.Internet, p.Requirements.SpecialSpace, p.Requirements.OtherNeeds,
		p.Guide.UserID, p.Guide.Name, p.Guide.DepartmentID, p.Guide.ContactNo,
		p.CreatedBy, p.UpdatedBy,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by identifier
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	return scanProject(r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// List retrieves projects matching the filter with pagination
func (r *ProjectRepository) List(ctx context.Context, q *dto.ProjectListQuery, offset uint64, limit int) ([]*models.Project, int64, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.DepartmentID != "" {
		conditions = append(conditions, "department_id = "+arg(q.DepartmentID))
	}
	if q.EventID != "" {
		conditions = append(conditions, "event_id = "+arg(q.EventID))
	}
	if q.Category != "" {
		conditions = append(conditions, "category = "+arg(q.Category))
	}
	if q.Status != "" {
		conditions = append(conditions, "status = "+arg(q.Status))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(title ILIKE %s OR abstract ILIKE %s)", p, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting projects: %w", err)
	}

	orderBy := sortColumn(q.SortBy, map[string]string{
		"created_at": "created_at",
		"title":      "title",
		"category":   "category",
	}, "created_at")

	query := fmt.Sprintf(`SELECT %s FROM projects%s ORDER BY %s %s OFFSET %d LIMIT %d`,
		projectColumns, where, orderBy, sortOrder(q.SortOrder), offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, 0, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListByTeams retrieves projects belonging to any of the given teams
func (r *ProjectRepository) ListByTeams(ctx context.Context, teamIDs []string) ([]*models.Project, error) {
	if len(teamIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE team_id = ANY($1) ORDER BY created_at DESC`, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing team projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// ListForJury retrieves projects of an event pending the given evaluation kind
func (r *ProjectRepository) ListForJury(ctx context.Context, eventID string, kind EvaluationKind, evaluated bool) ([]*models.Project, error) {
	col := "dept_eval_completed"
	if kind == CentralEvaluation {
		col = "central_eval_completed"
	}
	query := fmt.Sprintf(`SELECT %s FROM projects WHERE event_id = $1 AND %s = $2 ORDER BY created_at`,
		projectColumns, col)

	rows, err := r.db.Query(ctx, query, eventID, evaluated)
	if err != nil {
		return nil, fmt.Errorf("error listing jury projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// Update persists the mutable fields of a project
func (r *ProjectRepository) Update(ctx context.Context, p *models.Project) error {
	query := `
		UPDATE projects
		SET title = $1, category = $2, abstract = $3, status = $4,
		    req_power = $5, req_internet = $6, req_special_space = $7, req_other = $8,
		    guide_user_id = $9, guide_name = $10, guide_department_id = $11, guide_contact = $12,
		    updated_by = $13, updated_at = CURRENT_TIMESTAMP
		WHERE id = $14
	`
	cmdTag, err := r.db.Exec(ctx, query,
		p.Title, p.Category, p.Abstract, p.Status,
		p.Requirements.Power, p.Requirements.Internet, p.Requirements.SpecialSpace, p.Requirements.OtherNeeds,
		p.Guide.UserID, p.Guide.Name, p.Guide.DepartmentID, p.Guide.ContactNo,
		p.UpdatedBy, p.ID)
	if err != nil {
		return fmt.Errorf("error updating project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// SetLocation records the location assignment on a project
func (r *ProjectRepository) SetLocation(ctx context.Context, projectID string, locationID *string, updatedBy string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE projects SET location_id = $1, updated_by = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`, locationID, updatedBy, projectID)
	if err != nil {
		return fmt.Errorf("error setting project location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// SaveEvaluation records a completed jury evaluation
func (r *ProjectRepository) SaveEvaluation(ctx context.Context, projectID string, kind EvaluationKind, score float64, feedback, juryID string) error {
	var query string
	if kind == CentralEvaluation {
		query = `
			UPDATE projects
			SET central_eval_completed = TRUE, central_eval_score = $1, central_eval_feedback = $2,
			    central_eval_jury_id = $3, central_eval_at = $4, updated_at = CURRENT_TIMESTAMP
			WHERE id = $5`
	} else {
		query = `
			UPDATE projects
			SET dept_eval_completed = TRUE, dept_eval_score = $1, dept_eval_feedback = $2,
			    dept_eval_jury_id = $3, dept_eval_at = $4, updated_at = CURRENT_TIMESTAMP
			WHERE id = $5`
	}
	cmdTag, err := r.db.Exec(ctx, query, score, feedback, juryID, time.Now(), projectID)
	if err != nil {
		return fmt.Errorf("error saving evaluation: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting project: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

// GetStatistics aggregates project counts and scores for an event
func (r *ProjectRepository) GetStatistics(ctx context.Context, eventID string) (*models.ProjectStatistics, error) {
	stats := &models.ProjectStatistics{ByDepartment: map[string]int64{}}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE dept_eval_completed),
		       COUNT(*) FILTER (WHERE NOT dept_eval_completed),
		       COALESCE(AVG(dept_eval_score) FILTER (WHERE dept_eval_completed), 0)
		FROM projects WHERE event_id = $1`, eventID).
		Scan(&stats.Total, &stats.Evaluated, &stats.Pending, &stats.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("error aggregating project stats: %w", err)
	}

	deptRows, err := r.db.Query(ctx, `
		SELECT d.name, COUNT(*)
		FROM projects p JOIN departments d ON d.id = p.department_id
		WHERE p.event_id = $1 GROUP BY d.name`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating department counts: %w", err)
	}
	defer deptRows.Close()
	for deptRows.Next() {
		var name string
		var count int64
		if err := deptRows.Scan(&name, &count); err != nil {
			return nil, err
		}
		stats.ByDepartment[name] = count
	}
	if err := deptRows.Err(); err != nil {
		return nil, err
	}

	catRows, err := r.db.Query(ctx, `
		SELECT category, COUNT(*) FROM projects WHERE event_id = $1 GROUP BY category ORDER BY category`, eventID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating category counts: %w", err)
	}
	defer catRows.Close()
	for catRows.Next() {
		var c models.ProjectCountsByCategory
		if err := catRows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		stats.ByCategory = append(stats.ByCategory, c)
	}
	return stats, catRows.Err()
}

// GetCategoryWinners returns the top projects per category by final score.
// The final score is the central evaluation when present, otherwise the
// department evaluation.
func (r *ProjectRepository) GetCategoryWinners(ctx context.Context, eventID string, perCategory int) ([]*models.CategoryWinner, error) {
	query := `
		SELECT ` + projectColumns + `,
		       COALESCE(central_eval_score, dept_eval_score, 0) AS final_score,
		       ROW_NUMBER() OVER (PARTITION BY category ORDER BY COALESCE(central_eval_score, dept_eval_score, 0) DESC) AS rank
		FROM projects
		WHERE event_id = $1 AND (central_eval_completed OR dept_eval_completed)
		ORDER BY category, rank
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("error computing category winners: %w", err)
	}
	defer rows.Close()

	var winners []*models.CategoryWinner
	for rows.Next() {
		var p models.Project
		var dept, central models.ProjectEvaluation
		var score float64
		var rank int
		err := rows.Scan(
			&p.ID, &p.Title, &p.Category, &p.Abstract, &p.Status, &p.DepartmentID, &p.TeamID, &p.EventID, &p.LocationID,
			&p.Requirements.Power, &p.Requirements.Internet, &p.Requirements.SpecialSpace, &p.Requirements.OtherNeeds,
			&p.Guide.UserID, &p.Guide.Name, &p.Guide.DepartmentID, &p.Guide.ContactNo,
			&dept.Completed, &dept.Score, &dept.Feedback, &dept.JuryID, &dept.EvaluatedAt,
			&central.Completed, &central.Score, &central.Feedback, &central.JuryID, &central.EvaluatedAt,
			&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
			&score, &rank,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning winner: %w", err)
		}
		if rank > perCategory {
			continue
		}
		p.DeptEvaluation = &dept
		p.CentralEvaluation = &central
		winners = append(winners, &models.CategoryWinner{
			Category: p.Category,
			Rank:     rank,
			Project:  &p,
			Score:    score,
		})
	}
	return winners, rows.Err()
}
