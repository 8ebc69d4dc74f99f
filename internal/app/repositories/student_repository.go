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

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, user_id, department_id, first_name, middle_name, last_name, full_name,
	enrollment_no, personal_email, institutional_email, batch, semester, status, admission_year,
	convo_year, gender, category, aadhar_no, shift, is_complete, term_close, is_cancel, is_pass_all,
	created_at, updated_at`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.DepartmentID, &s.FirstName, &s.MiddleName, &s.LastName, &s.FullName,
		&s.EnrollmentNo, &s.PersonalEmail, &s.InstitutionalEmail, &s.Batch, &s.Semester, &s.Status,
		&s.AdmissionYear, &s.ConvoYear, &s.Gender, &s.Category, &s.AadharNo, &s.Shift,
		&s.IsComplete, &s.TermClose, &s.IsCancel, &s.IsPassAll, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return &s, nil
}

// Create inserts a new student with its sub-records
func (r *StudentRepository) Create(ctx context.Context, s *models.Student) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	query := `
		INSERT INTO students (id, user_id, department_id, first_name, middle_name, last_name, full_name,
			enrollment_no, personal_email, institutional_email, batch, semester, status, admission_year,
			convo_year, gender, category, aadhar_no, shift, is_complete, term_close, is_cancel, is_pass_all)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		s.ID, s.UserID, s.DepartmentID, s.FirstName, s.MiddleName, s.LastName, s.FullName,
		s.EnrollmentNo, s.PersonalEmail, s.InstitutionalEmail, s.Batch, s.Semester, s.Status,
		s.AdmissionYear, s.ConvoYear, s.Gender, s.Category, s.AadharNo, s.Shift,
		s.IsComplete, s.TermClose, s.IsCancel, s.IsPassAll,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_no_key") {
			return apperrors.ErrEnrollmentAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrInstitutionalEmailExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return r.saveSubRecords(ctx, s)
}

// GetByID retrieves a student with all sub-records
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSubRecords(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByEnrollmentNo retrieves a student by enrollment number
func (r *StudentRepository) GetByEnrollmentNo(ctx context.Context, enrollmentNo string) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE enrollment_no = $1`, enrollmentNo))
	if err != nil {
		return nil, err
	}
	if err := r.loadSubRecords(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetByUserID retrieves the student record linked to a user account
func (r *StudentRepository) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	s, err := scanStudent(r.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))
	if err != nil {
		return nil, err
	}
	if err := r.loadSubRecords(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves students matching the filter with pagination
func (r *StudentRepository) List(ctx context.Context, q *dto.StudentListQuery, offset uint64, limit int) ([]*models.Student, int64, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.DepartmentID != "" {
		conditions = append(conditions, "department_id = "+arg(q.DepartmentID))
	}
	if q.Semester > 0 {
		conditions = append(conditions, "semester = "+arg(q.Semester))
	}
	if q.Batch != "" {
		conditions = append(conditions, "batch = "+arg(q.Batch))
	}
	if q.Status != "" {
		conditions = append(conditions, "status = "+arg(q.Status))
	}
	if q.Category != "" {
		conditions = append(conditions, "category = "+arg(q.Category))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE %s OR enrollment_no ILIKE %s OR institutional_email ILIKE %s)", p, p, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	orderBy := sortColumn(q.SortBy, map[string]string{
		"enrollment_no": "enrollment_no",
		"full_name":     "full_name",
		"semester":      "semester",
		"created_at":    "created_at",
	}, "enrollment_no")

	query := fmt.Sprintf(`SELECT %s FROM students%s ORDER BY %s %s OFFSET %d LIMIT %d`,
		studentColumns, where, orderBy, sortOrder(q.SortOrder), offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// ListUnlinked retrieves students without a user account
func (r *StudentRepository) ListUnlinked(ctx context.Context) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("error listing unlinked students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

// LinkUser attaches a user account to a student record
func (r *StudentRepository) LinkUser(ctx context.Context, studentID, userID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE students SET user_id = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		userID, studentID)
	if err != nil {
		return fmt.Errorf("error linking student user: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Update persists the mutable fields of a student
func (r *StudentRepository) Update(ctx context.Context, s *models.Student) error {
	query := `
		UPDATE students
		SET department_id = $1, first_name = $2, middle_name = $3, last_name = $4, full_name = $5,
		    personal_email = $6, batch = $7, semester = $8, status = $9, convo_year = $10,
		    gender = $11, category = $12, aadhar_no = $13, shift = $14,
		    is_complete = $15, term_close = $16, is_cancel = $17, is_pass_all = $18,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $19
	`
	cmdTag, err := r.db.Exec(ctx, query,
		s.DepartmentID, s.FirstName, s.MiddleName, s.LastName, s.FullName,
		s.PersonalEmail, s.Batch, s.Semester, s.Status, s.ConvoYear,
		s.Gender, s.Category, s.AadharNo, s.Shift,
		s.IsComplete, s.TermClose, s.IsCancel, s.IsPassAll, s.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return r.saveSubRecords(ctx, s)
}

// Delete removes a student and its sub-records
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

func (r *StudentRepository) loadSubRecords(ctx context.Context, s *models.Student) error {
	var g models.StudentGuardian
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, name, relation, contact, occupation
		FROM student_guardians WHERE student_id = $1`, s.ID).
		Scan(&g.ID, &g.StudentID, &g.Name, &g.Relation, &g.Contact, &g.Occupation)
	if err == nil {
		s.Guardian = &g
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error loading guardian: %w", err)
	}

	var c models.StudentContact
	err = r.db.QueryRow(ctx, `
		SELECT id, student_id, mobile, email, address, city, state, pincode
		FROM student_contacts WHERE student_id = $1`, s.ID).
		Scan(&c.ID, &c.StudentID, &c.Mobile, &c.Email, &c.Address, &c.City, &c.State, &c.Pincode)
	if err == nil {
		s.Contact = &c
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error loading contact: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, degree, institution, board, percentage, year_of_passing
		FROM student_education WHERE student_id = $1 ORDER BY year_of_passing DESC`, s.ID)
	if err != nil {
		return fmt.Errorf("error loading education: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e models.StudentEducation
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Degree, &e.Institution, &e.Board, &e.Percentage, &e.YearOfPassing); err != nil {
			return err
		}
		s.Education = append(s.Education, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var st models.StudentSemesterStatus
	err = r.db.QueryRow(ctx, `
		SELECT id, student_id, sem1, sem2, sem3, sem4, sem5, sem6, sem7, sem8
		FROM student_semester_status WHERE student_id = $1`, s.ID).
		Scan(&st.ID, &st.StudentID, &st.Sem1, &st.Sem2, &st.Sem3, &st.Sem4, &st.Sem5, &st.Sem6, &st.Sem7, &st.Sem8)
	if err == nil {
		s.SemesterStatus = &st
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("error loading semester status: %w", err)
	}

	return nil
}

func (r *StudentRepository) saveSubRecords(ctx context.Context, s *models.Student) error {
	if s.Guardian != nil {
		_, err := r.db.Exec(ctx, `
			INSERT INTO student_guardians (id, student_id, name, relation, contact, occupation)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (student_id) DO UPDATE
			SET name = $3, relation = $4, contact = $5, occupation = $6`,
			uuid.NewString(), s.ID, s.Guardian.Name, s.Guardian.Relation, s.Guardian.Contact, s.Guardian.Occupation)
		if err != nil {
			return fmt.Errorf("error saving guardian: %w", err)
		}
	}

	if s.Contact != nil {
		_, err := r.db.Exec(ctx, `
			INSERT INTO student_contacts (id, student_id, mobile, email, address, city, state, pincode)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (student_id) DO UPDATE
			SET mobile = $3, email = $4, address = $5, city = $6, state = $7, pincode = $8`,
			uuid.NewString(), s.ID, s.Contact.Mobile, s.Contact.Email, s.Contact.Address,
			s.Contact.City, s.Contact.State, s.Contact.Pincode)
		if err != nil {
			return fmt.Errorf("error saving contact: %w", err)
		}
	}

	if s.Education != nil {
		if _, err := r.db.Exec(ctx, `DELETE FROM student_education WHERE student_id = $1`, s.ID); err != nil {
			return fmt.Errorf("error clearing education: %w", err)
		}
		for _, e := range s.Education {
			_, err := r.db.Exec(ctx, `
				INSERT INTO student_education (id, student_id, degree, institution, board, percentage, year_of_passing)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				uuid.NewString(), s.ID, e.Degree, e.Institution, e.Board, e.Percentage, e.YearOfPassing)
			if err != nil {
				return fmt.Errorf("error inserting education: %w", err)
			}
		}
	}

	if s.SemesterStatus != nil {
		st := s.SemesterStatus
		_, err := r.db.Exec(ctx, `
			INSERT INTO student_semester_status (id, student_id, sem1, sem2, sem3, sem4, sem5, sem6, sem7, sem8)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (student_id) DO UPDATE
			SET sem1 = $3, sem2 = $4, sem3 = $5, sem4 = $6, sem5 = $7, sem6 = $8, sem7 = $9, sem8 = $10`,
			uuid.NewString(), s.ID, st.Sem1, st.Sem2, st.Sem3, st.Sem4, st.Sem5, st.Sem6, st.Sem7, st.Sem8)
		if err != nil {
			return fmt.Errorf("error saving semester status: %w", err)
		}
	}

	return nil
}
