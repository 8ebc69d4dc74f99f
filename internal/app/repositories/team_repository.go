package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

// TeamRepository handles database operations for project teams
type TeamRepository struct {
	db *pgxpool.Pool
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *pgxpool.Pool) *TeamRepository {
	return &TeamRepository{db: db}
}

const teamColumns = `id, name, department_id, event_id, created_by, updated_by, created_at, updated_at`

func scanTeam(row pgx.Row) (*models.ProjectTeam, error) {
	var t models.ProjectTeam
	err := row.Scan(&t.ID, &t.Name, &t.DepartmentID, &t.EventID,
		&t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeamNotFound
		}
		return nil, fmt.Errorf("error scanning team: %w", err)
	}
	return &t, nil
}

// Create inserts a new team with its members
func (r *TeamRepository) Create(ctx context.Context, t *models.ProjectTeam) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO project_teams (id, name, department_id, event_id, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		t.ID, t.Name, t.DepartmentID, t.EventID, t.CreatedBy, t.UpdatedBy,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating team: %w", err)
	}

	return r.replaceMembers(ctx, t.ID, t.Members)
}

// GetByID retrieves a team with its members
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.ProjectTeam, error) {
	t, err := scanTeam(r.db.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM project_teams WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadMembers(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List retrieves teams filtered by event and department
func (r *TeamRepository) List(ctx context.Context, eventID, departmentID string, offset uint64, limit int) ([]*models.ProjectTeam, int64, error) {
	where := " WHERE 1=1"
	var args []interface{}
	if eventID != "" {
		args = append(args, eventID)
		where += fmt.Sprintf(" AND event_id = $%d", len(args))
	}
	if departmentID != "" {
		args = append(args, departmentID)
		where += fmt.Sprintf(" AND department_id = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM project_teams`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting teams: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM project_teams%s ORDER BY created_at DESC OFFSET %d LIMIT %d`,
		teamColumns, where, offset, limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.ProjectTeam
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, 0, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, t := range teams {
		if err := r.loadMembers(ctx, t); err != nil {
			return nil, 0, err
		}
	}
	return teams, total, nil
}

// ListByMember retrieves the teams a user belongs to
func (r *TeamRepository) ListByMember(ctx context.Context, userID string) ([]*models.ProjectTeam, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.name, t.department_id, t.event_id, t.created_by, t.updated_by, t.created_at, t.updated_at
		FROM project_teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = $1
		ORDER BY t.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing member teams: %w", err)
	}
	defer rows.Close()

	var teams []*models.ProjectTeam
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, t := range teams {
		if err := r.loadMembers(ctx, t); err != nil {
			return nil, err
		}
	}
	return teams, nil
}

// Update persists the mutable fields of a team
func (r *TeamRepository) Update(ctx context.Context, t *models.ProjectTeam) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE project_teams SET name = $1, updated_by = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`, t.Name, t.UpdatedBy, t.ID)
	if err != nil {
		return fmt.Errorf("error updating team: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeamNotFound
	}

	if t.Members != nil {
		return r.replaceMembers(ctx, t.ID, t.Members)
	}
	return nil
}

// SetLeader marks a single member as the team leader
func (r *TeamRepository) SetLeader(ctx context.Context, teamID, memberID string) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM team_members WHERE id = $1 AND team_id = $2)`,
		memberID, teamID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking team member: %w", err)
	}
	if !exists {
		return apperrors.ErrTeamMemberNotFound
	}

	if _, err := r.db.Exec(ctx,
		`UPDATE team_members SET is_leader = (id = $1) WHERE team_id = $2`,
		memberID, teamID); err != nil {
		return fmt.Errorf("error setting team leader: %w", err)
	}
	return nil
}

// RemoveMember deletes one member from a team
func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, memberID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM team_members WHERE id = $1 AND team_id = $2`, memberID, teamID)
	if err != nil {
		return fmt.Errorf("error removing team member: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeamMemberNotFound
	}
	return nil
}

// Delete removes a team and its members
func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM project_teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting team: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) loadMembers(ctx context.Context, t *models.ProjectTeam) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, team_id, user_id, name, enrollment_no, member_role, is_leader
		FROM team_members WHERE team_id = $1 ORDER BY is_leader DESC, name`, t.ID)
	if err != nil {
		return fmt.Errorf("error loading team members: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Name, &m.EnrollmentNo, &m.Role, &m.IsLeader); err != nil {
			return err
		}
		t.Members = append(t.Members, m)
	}
	return rows.Err()
}

func (r *TeamRepository) replaceMembers(ctx context.Context, teamID string, members []models.TeamMember) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM team_members WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("error clearing team members: %w", err)
	}
	for _, m := range members {
		_, err := r.db.Exec(ctx, `
			INSERT INTO team_members (id, team_id, user_id, name, enrollment_no, member_role, is_leader)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			uuid.NewString(), teamID, m.UserID, m.Name, m.EnrollmentNo, m.Role, m.IsLeader)
		if err != nil {
			return fmt.Errorf("error inserting team member: %w", err)
		}
	}
	return nil
}
