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

// FacultyRepository handles database operations for faculty records
type FacultyRepository struct {
	db *pgxpool.Pool
}

// NewFacultyRepository creates a new faculty repository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{db: db}
}

const facultyColumns = `id, user_id, employee_id, department_id, designation, specializations,
	joining_date, status, experience_years, experience_details, created_at, updated_at`

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var f models.Faculty
	err := row.Scan(
		&f.ID, &f.UserID, &f.EmployeeID, &f.DepartmentID, &f.Designation, &f.Specializations,
		&f.JoiningDate, &f.Status, &f.ExperienceYears, &f.ExperienceDetails, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		return nil, fmt.Errorf("error scanning faculty: %w", err)
	}
	return &f, nil
}

// Create inserts a new faculty record with its qualifications
func (r *FacultyRepository) Create(ctx context.Context, f *models.Faculty) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	query := `
		INSERT INTO faculty (id, user_id, employee_id, department_id, designation, specializations,
			joining_date, status, experience_years, experience_details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		f.ID, f.UserID, f.EmployeeID, f.DepartmentID, f.Designation, f.Specializations,
		f.JoiningDate, f.Status, f.ExperienceYears, f.ExperienceDetails,
	).Scan(&f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "faculty_employee_id_key") {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		return fmt.Errorf("error creating faculty: %w", err)
	}

	return r.replaceQualifications(ctx, f.ID, f.Qualifications)
}

// GetByID retrieves a faculty record with its qualifications
func (r *FacultyRepository) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	f, err := scanFaculty(r.db.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadQualifications(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetByUserID retrieves the faculty record linked to a user account
func (r *FacultyRepository) GetByUserID(ctx context.Context, userID string) (*models.Faculty, error) {
	f, err := scanFaculty(r.db.QueryRow(ctx,
		`SELECT `+facultyColumns+` FROM faculty WHERE user_id = $1`, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadQualifications(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List retrieves faculty matching the filter with pagination
func (r *FacultyRepository) List(ctx context.Context, q *dto.FacultyListQuery, offset uint64, limit int) ([]*models.Faculty, int64, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.DepartmentID != "" {
		conditions = append(conditions, "f.department_id = "+arg(q.DepartmentID))
	}
	if q.Status != "" {
		conditions = append(conditions, "f.status = "+arg(q.Status))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(u.name ILIKE %s OR f.employee_id ILIKE %s OR f.designation ILIKE %s)", p, p, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	base := ` FROM faculty f JOIN users u ON u.id = f.user_id` + where

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+base, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting faculty: %w", err)
	}

	orderBy := sortColumn(q.SortBy, map[string]string{
		"joining_date": "f.joining_date",
		"name":         "u.name",
		"employee_id":  "f.employee_id",
	}, "f.joining_date")

	query := fmt.Sprintf(`
		SELECT f.id, f.user_id, f.employee_id, f.department_id, f.designation, f.specializations,
		       f.joining_date, f.status, f.experience_years, f.experience_details, f.created_at, f.updated_at,
		       u.name, u.email
		%s ORDER BY %s %s OFFSET %d LIMIT %d`,
		base, orderBy, sortOrder(q.SortOrder), offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing faculty: %w", err)
	}
	defer rows.Close()

	var list []*models.Faculty
	for rows.Next() {
		var f models.Faculty
		var user models.User
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.EmployeeID, &f.DepartmentID, &f.Designation, &f.Specializations,
			&f.JoiningDate, &f.Status, &f.ExperienceYears, &f.ExperienceDetails, &f.CreatedAt, &f.UpdatedAt,
			&user.Name, &user.Email,
		); err != nil {
			return nil, 0, err
		}
		user.ID = f.UserID
		f.User = &user
		list = append(list, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

// Update persists the mutable fields of a faculty record
func (r *FacultyRepository) Update(ctx context.Context, f *models.Faculty) error {
	query := `
		UPDATE faculty
		SET department_id = $1, designation = $2, specializations = $3, joining_date = $4,
		    status = $5, experience_years = $6, experience_details = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
	`
	cmdTag, err := r.db.Exec(ctx, query,
		f.DepartmentID, f.Designation, f.Specializations, f.JoiningDate,
		f.Status, f.ExperienceYears, f.ExperienceDetails, f.ID)
	if err != nil {
		return fmt.Errorf("error updating faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return r.replaceQualifications(ctx, f.ID, f.Qualifications)
}

// Delete removes a faculty record
func (r *FacultyRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM faculty WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting faculty: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}
	return nil
}

func (r *FacultyRepository) loadQualifications(ctx context.Context, f *models.Faculty) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, faculty_id, degree, field, institution, year
		FROM faculty_qualifications WHERE faculty_id = $1 ORDER BY year DESC`, f.ID)
	if err != nil {
		return fmt.Errorf("error loading qualifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q models.FacultyQualification
		if err := rows.Scan(&q.ID, &q.FacultyID, &q.Degree, &q.Field, &q.Institution, &q.Year); err != nil {
			return err
		}
		f.Qualifications = append(f.Qualifications, q)
	}
	return rows.Err()
}

func (r *FacultyRepository) replaceQualifications(ctx context.Context, facultyID string, quals []models.FacultyQualification) error {
	if quals == nil {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM faculty_qualifications WHERE faculty_id = $1`, facultyID); err != nil {
		return fmt.Errorf("error clearing qualifications: %w", err)
	}
	for _, q := range quals {
		_, err := r.db.Exec(ctx, `
			INSERT INTO faculty_qualifications (id, faculty_id, degree, field, institution, year)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.NewString(), facultyID, q.Degree, q.Field, q.Institution, q.Year)
		if err != nil {
			return fmt.Errorf("error inserting qualification: %w", err)
		}
	}
	return nil
}
