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

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

const departmentColumns = `id, name, code, description, hod_id, established_date, is_active, created_at, updated_at`

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.HODID,
		&d.EstablishedDate, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error scanning department: %w", err)
	}
	return &d, nil
}

// Create inserts a new department
func (r *DepartmentRepository) Create(ctx context.Context, d *models.Department) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	query := `
		INSERT INTO departments (id, name, code, description, hod_id, established_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		d.ID, d.Name, d.Code, d.Description, d.HODID, d.EstablishedDate, d.IsActive,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}
	return nil
}

// GetByID retrieves a department by identifier
func (r *DepartmentRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	return scanDepartment(r.db.QueryRow(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id))
}

// GetByCode retrieves a department by its short code
func (r *DepartmentRepository) GetByCode(ctx context.Context, code string) (*models.Department, error) {
	return scanDepartment(r.db.QueryRow(ctx,
		`SELECT `+departmentColumns+` FROM departments WHERE UPPER(code) = UPPER($1)`, code))
}

// ExistsByNameOrCode checks whether another department uses the name or code
func (r *DepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code, excludeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE (name = $1 OR UPPER(code) = UPPER($2)) AND id != $3)`,
		name, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// List retrieves departments matching the filter with pagination
func (r *DepartmentRepository) List(ctx context.Context, q *dto.DepartmentListQuery, offset uint64, limit int) ([]*models.Department, int64, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR code ILIKE %s)", p, p))
	}
	if q.IsActive != nil {
		conditions = append(conditions, "is_active = "+arg(*q.IsActive))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM departments`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting departments: %w", err)
	}

	orderBy := sortColumn(q.SortBy, map[string]string{
		"name":       "name",
		"code":       "code",
		"created_at": "created_at",
	}, "name")

	query := fmt.Sprintf(`SELECT %s FROM departments%s ORDER BY %s %s OFFSET %d LIMIT %d`,
		departmentColumns, where, orderBy, sortOrder(q.SortOrder), offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return departments, total, nil
}

// Update persists the mutable fields of a department
func (r *DepartmentRepository) Update(ctx context.Context, d *models.Department) error {
	query := `
		UPDATE departments
		SET name = $1, code = $2, description = $3, hod_id = $4,
		    established_date = $5, is_active = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
	`
	cmdTag, err := r.db.Exec(ctx, query,
		d.Name, d.Code, d.Description, d.HODID, d.EstablishedDate, d.IsActive, d.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// Delete removes a department. Departments with faculty or students are kept.
func (r *DepartmentRepository) Delete(ctx context.Context, id string) error {
	var hasRelations bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM faculty WHERE department_id = $1)
		    OR EXISTS(SELECT 1 FROM students WHERE department_id = $1)`,
		id).Scan(&hasRelations)
	if err != nil {
		return fmt.Errorf("error checking department relations: %w", err)
	}
	if hasRelations {
		return apperrors.ErrDepartmentHasRelations
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrDepartmentHasRelations
		}
		return fmt.Errorf("error deleting department: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}
	return nil
}

// GetStats aggregates department, faculty and student counts
func (r *DepartmentRepository) GetStats(ctx context.Context) (*models.DepartmentStats, error) {
	var stats models.DepartmentStats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM departments),
			(SELECT COUNT(*) FROM departments WHERE is_active),
			(SELECT COUNT(*) FROM faculty),
			(SELECT COUNT(*) FROM students)`).
		Scan(&stats.TotalDepartments, &stats.ActiveDepartments, &stats.TotalFaculty, &stats.TotalStudents)
	if err != nil {
		return nil, fmt.Errorf("error aggregating department stats: %w", err)
	}
	return &stats, nil
}
