package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/dberrors"
)

// LocationRepository handles database operations for stall locations
type LocationRepository struct {
	db *pgxpool.Pool
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *pgxpool.Pool) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `id, location_id, section, position, department_id, event_id, project_id,
	is_assigned, created_by, updated_by, created_at, updated_at`

func scanLocation(row pgx.Row) (*models.ProjectLocation, error) {
	var l models.ProjectLocation
	err := row.Scan(
		&l.ID, &l.LocationID, &l.Section, &l.Position, &l.DepartmentID, &l.EventID, &l.ProjectID,
		&l.IsAssigned, &l.CreatedBy, &l.UpdatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLocationNotFound
		}
		return nil, fmt.Errorf("error scanning location: %w", err)
	}
	return &l, nil
}

// Create inserts a new location
func (r *LocationRepository) Create(ctx context.Context, l *models.ProjectLocation) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.LocationID == "" {
		l.LocationID = fmt.Sprintf("%s-%02d", strings.ToUpper(l.Section), l.Position)
	}
	query := `
		INSERT INTO project_locations (id, location_id, section, position, department_id, event_id, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		l.ID, l.LocationID, l.Section, l.Position, l.DepartmentID, l.EventID, l.CreatedBy, l.UpdatedBy,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrLocationTaken
		}
		return fmt.Errorf("error creating location: %w", err)
	}
	return nil
}

// GetByID retrieves a location by identifier
func (r *LocationRepository) GetByID(ctx context.Context, id string) (*models.ProjectLocation, error) {
	return scanLocation(r.db.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM project_locations WHERE id = $1`, id))
}

// List retrieves locations matching the filter with pagination
func (r *LocationRepository) List(ctx context.Context, q *dto.LocationListQuery, offset uint64, limit int) ([]*models.ProjectLocation, int64, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.EventID != "" {
		conditions = append(conditions, "event_id = "+arg(q.EventID))
	}
	if q.Section != "" {
		conditions = append(conditions, "UPPER(section) = UPPER("+arg(q.Section)+")")
	}
	if q.DepartmentID != "" {
		conditions = append(conditions, "department_id = "+arg(q.DepartmentID))
	}
	if q.IsAssigned != nil {
		conditions = append(conditions, "is_assigned = "+arg(*q.IsAssigned))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM project_locations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting locations: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM project_locations%s ORDER BY section, position OFFSET %d LIMIT %d`,
		locationColumns, where, offset, limit)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing locations: %w", err)
	}
	defer rows.Close()

	var locations []*models.ProjectLocation
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, 0, err
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return locations, total, nil
}

// Update persists the mutable fields of a location
func (r *LocationRepository) Update(ctx context.Context, l *models.ProjectLocation) error {
	query := `
		UPDATE project_locations
		SET location_id = $1, section = $2, position = $3, department_id = $4,
		    updated_by = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`
	cmdTag, err := r.db.Exec(ctx, query,
		l.LocationID, l.Section, l.Position, l.DepartmentID, l.UpdatedBy, l.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrLocationTaken
		}
		return fmt.Errorf("error updating location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLocationNotFound
	}
	return nil
}

// Assign links a project to a free location
func (r *LocationRepository) Assign(ctx context.Context, locationID, projectID, updatedBy string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE project_locations
		SET project_id = $1, is_assigned = TRUE, updated_by = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND NOT is_assigned`,
		projectID, updatedBy, locationID)
	if err != nil {
		return fmt.Errorf("error assigning location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		l, getErr := r.GetByID(ctx, locationID)
		if getErr != nil {
			return getErr
		}
		if l.IsAssigned {
			return apperrors.ErrLocationTaken
		}
		return apperrors.ErrLocationNotFound
	}
	return nil
}

// Unassign frees a location
func (r *LocationRepository) Unassign(ctx context.Context, locationID, updatedBy string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE project_locations
		SET project_id = NULL, is_assigned = FALSE, updated_by = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2`, updatedBy, locationID)
	if err != nil {
		return fmt.Errorf("error unassigning location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLocationNotFound
	}
	return nil
}

// Delete removes an unassigned location
func (r *LocationRepository) Delete(ctx context.Context, id string) error {
	l, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l.IsAssigned {
		return apperrors.ErrLocationAssigned
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM project_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLocationNotFound
	}
	return nil
}
