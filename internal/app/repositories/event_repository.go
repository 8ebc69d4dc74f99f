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

// EventRepository handles database operations for project events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, description, academic_year, event_date, registration_start,
	registration_end, is_active, status, publish_results, created_by, updated_by, created_at, updated_at`

func scanEvent(row pgx.Row) (*models.ProjectEvent, error) {
	var e models.ProjectEvent
	err := row.Scan(
		&e.ID, &e.Name, &e.Description, &e.AcademicYear, &e.EventDate, &e.RegistrationStart,
		&e.RegistrationEnd, &e.IsActive, &e.Status, &e.PublishResults,
		&e.CreatedBy, &e.UpdatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, fmt.Errorf("error scanning event: %w", err)
	}
	return &e, nil
}

// Create inserts a new event with its schedule and department links
func (r *EventRepository) Create(ctx context.Context, e *models.ProjectEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	query := `
		INSERT INTO project_events (id, name, description, academic_year, event_date,
			registration_start, registration_end, is_active, status, publish_results, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		e.ID, e.Name, e.Description, e.AcademicYear, e.EventDate,
		e.RegistrationStart, e.RegistrationEnd, e.IsActive, e.Status, e.PublishResults,
		e.CreatedBy, e.UpdatedBy,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating event: %w", err)
	}

	if err := r.replaceSchedule(ctx, e.ID, e.Schedule); err != nil {
		return err
	}
	return r.replaceDepartments(ctx, e.ID, e.DepartmentIDs)
}

// GetByID retrieves an event with its schedule and department links
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.ProjectEvent, error) {
	e, err := scanEvent(r.db.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM project_events WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadRelations(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// List retrieves all events, optionally only active ones
func (r *EventRepository) List(ctx context.Context, activeOnly bool) ([]*models.ProjectEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM project_events`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY event_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	defer rows.Close()

	var events []*models.ProjectEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, e := range events {
		if err := r.loadRelations(ctx, e); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// Update persists the mutable fields of an event
func (r *EventRepository) Update(ctx context.Context, e *models.ProjectEvent) error {
	query := `
		UPDATE project_events
		SET name = $1, description = $2, academic_year = $3, event_date = $4,
		    registration_start = $5, registration_end = $6, is_active = $7, status = $8,
		    publish_results = $9, updated_by = $10, updated_at = CURRENT_TIMESTAMP
		WHERE id = $11
	`
	cmdTag, err := r.db.Exec(ctx, query,
		e.Name, e.Description, e.AcademicYear, e.EventDate,
		e.RegistrationStart, e.RegistrationEnd, e.IsActive, e.Status,
		e.PublishResults, e.UpdatedBy, e.ID)
	if err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}

	if e.Schedule != nil {
		if err := r.replaceSchedule(ctx, e.ID, e.Schedule); err != nil {
			return err
		}
	}
	if e.DepartmentIDs != nil {
		return r.replaceDepartments(ctx, e.ID, e.DepartmentIDs)
	}
	return nil
}

// SetPublishResults toggles public visibility of event results
func (r *EventRepository) SetPublishResults(ctx context.Context, id string, publish bool, updatedBy string) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE project_events SET publish_results = $1, updated_by = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3`, publish, updatedBy, id)
	if err != nil {
		return fmt.Errorf("error updating publish flag: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM project_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) loadRelations(ctx context.Context, e *models.ProjectEvent) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_id, slot_time, activity, location, coordinator_user_id, coordinator_name, notes
		FROM event_schedules WHERE event_id = $1 ORDER BY slot_time`, e.ID)
	if err != nil {
		return fmt.Errorf("error loading schedule: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s models.EventSchedule
		if err := rows.Scan(&s.ID, &s.EventID, &s.Time, &s.Activity, &s.Location,
			&s.Coordinator.UserID, &s.Coordinator.Name, &s.Notes); err != nil {
			return err
		}
		e.Schedule = append(e.Schedule, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	deptRows, err := r.db.Query(ctx,
		`SELECT department_id FROM event_departments WHERE event_id = $1`, e.ID)
	if err != nil {
		return fmt.Errorf("error loading event departments: %w", err)
	}
	defer deptRows.Close()
	for deptRows.Next() {
		var id string
		if err := deptRows.Scan(&id); err != nil {
			return err
		}
		e.DepartmentIDs = append(e.DepartmentIDs, id)
	}
	return deptRows.Err()
}

func (r *EventRepository) replaceSchedule(ctx context.Context, eventID string, schedule []models.EventSchedule) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM event_schedules WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("error clearing schedule: %w", err)
	}
	for _, s := range schedule {
		_, err := r.db.Exec(ctx, `
			INSERT INTO event_schedules (id, event_id, slot_time, activity, location, coordinator_user_id, coordinator_name, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.NewString(), eventID, s.Time, s.Activity, s.Location,
			s.Coordinator.UserID, s.Coordinator.Name, s.Notes)
		if err != nil {
			return fmt.Errorf("error inserting schedule item: %w", err)
		}
	}
	return nil
}

func (r *EventRepository) replaceDepartments(ctx context.Context, eventID string, departmentIDs []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM event_departments WHERE event_id = $1`, eventID); err != nil {
		return fmt.Errorf("error clearing event departments: %w", err)
	}
	for _, deptID := range departmentIDs {
		_, err := r.db.Exec(ctx, `
			INSERT INTO event_departments (event_id, department_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, eventID, deptID)
		if err != nil {
			return fmt.Errorf("error linking event department: %w", err)
		}
	}
	return nil
}
