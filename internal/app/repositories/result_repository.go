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

// ResultRepository handles database operations for exam results
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

const resultColumns = `id, student_id, enrollment_no, student_name, exam, exam_id, semester,
	branch_name, branch_code, academic_year, institute_code, result_status, spi, cpi, cgpa,
	total_credits, earned_credits, current_backlog, total_backlog, trials, remark,
	declaration_date, upload_batch, created_at, updated_at`

func scanResult(row pgx.Row) (*models.Result, error) {
	var res models.Result
	err := row.Scan(
		&res.ID, &res.StudentID, &res.EnrollmentNo, &res.StudentName, &res.Exam, &res.ExamID, &res.Semester,
		&res.BranchName, &res.BranchCode, &res.AcademicYear, &res.InstituteCode, &res.ResultStatus,
		&res.SPI, &res.CPI, &res.CGPA, &res.TotalCredits, &res.EarnedCredits,
		&res.CurrentBacklog, &res.TotalBacklog, &res.Trials, &res.Remark,
		&res.DeclarationDate, &res.UploadBatch, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResultNotFound
		}
		return nil, fmt.Errorf("error scanning result: %w", err)
	}
	return &res, nil
}

// Create inserts a result row with its subjects. Duplicate rows for the same
// exam attempt are reported via apperrors.ErrResultAlreadyExists.
func (r *ResultRepository) Create(ctx context.Context, res *models.Result) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	query := `
		INSERT INTO results (id, student_id, enrollment_no, student_name, exam, exam_id, semester,
			branch_name, branch_code, academic_year, institute_code, result_status, spi, cpi, cgpa,
			total_credits, earned_credits, current_backlog, total_backlog, trials, remark,
			declaration_date, upload_batch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		res.ID, res.StudentID, res.EnrollmentNo, res.StudentName, res.Exam, res.ExamID, res.Semester,
		res.BranchName, res.BranchCode, res.AcademicYear, res.InstituteCode, res.ResultStatus,
		res.SPI, res.CPI, res.CGPA, res.TotalCredits, res.EarnedCredits,
		res.CurrentBacklog, res.TotalBacklog, res.Trials, res.Remark,
		res.DeclarationDate, res.UploadBatch,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResultAlreadyExists
		}
		return fmt.Errorf("error creating result: %w", err)
	}

	for _, sub := range res.Subjects {
		_, err := r.db.Exec(ctx, `
			INSERT INTO result_subjects (id, result_id, code, name, credits, grade, is_backlog,
				theory_ese_grade, theory_pa_grade, theory_total_grade,
				practical_pa_grade, practical_viva_grade, practical_total_grade)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			uuid.NewString(), res.ID, sub.Code, sub.Name, sub.Credits, sub.Grade, sub.IsBacklog,
			sub.TheoryESE, sub.TheoryPA, sub.TheoryTotal,
			sub.PracticalPA, sub.PracticalViva, sub.PracticalTotal)
		if err != nil {
			return fmt.Errorf("error inserting result subject: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a result with its subjects
func (r *ResultRepository) GetByID(ctx context.Context, id string) (*models.Result, error) {
	res, err := scanResult(r.db.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSubjects(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListByEnrollment retrieves all results of one student ordered by semester
func (r *ResultRepository) ListByEnrollment(ctx context.Context, enrollmentNo string) ([]*models.Result, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resultColumns+` FROM results WHERE enrollment_no = $1 ORDER BY semester, trials`, enrollmentNo)
	if err != nil {
		return nil, fmt.Errorf("error listing student results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, res := range results {
		if err := r.loadSubjects(ctx, res); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// List retrieves results matching the filter with pagination
func (r *ResultRepository) List(ctx context.Context, q *dto.ResultListQuery, offset uint64, limit int) ([]*models.Result, int64, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.BranchName != "" {
		conditions = append(conditions, "branch_name = "+arg(q.BranchName))
	}
	if q.Semester > 0 {
		conditions = append(conditions, "semester = "+arg(q.Semester))
	}
	if q.AcademicYear != "" {
		conditions = append(conditions, "academic_year = "+arg(q.AcademicYear))
	}
	if q.ExamID > 0 {
		conditions = append(conditions, "exam_id = "+arg(q.ExamID))
	}
	if q.UploadBatch != "" {
		conditions = append(conditions, "upload_batch = "+arg(q.UploadBatch))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(student_name ILIKE %s OR enrollment_no ILIKE %s)", p, p))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM results`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting results: %w", err)
	}

	orderBy := sortColumn(q.SortBy, map[string]string{
		"created_at":    "created_at",
		"enrollment_no": "enrollment_no",
		"spi":           "spi",
		"semester":      "semester",
	}, "created_at")

	query := fmt.Sprintf(`SELECT %s FROM results%s ORDER BY %s %s OFFSET %d LIMIT %d`,
		resultColumns, where, orderBy, sortOrder(q.SortOrder), offset, limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing results: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for _, res := range results {
		if err := r.loadSubjects(ctx, res); err != nil {
			return nil, 0, err
		}
	}
	return results, total, nil
}

// Delete removes one result row
func (r *ResultRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting result: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResultNotFound
	}
	return nil
}

// ListBatches summarizes upload batches, newest first
func (r *ResultRepository) ListBatches(ctx context.Context) ([]*models.UploadBatch, error) {
	rows, err := r.db.Query(ctx, `
		SELECT upload_batch, COUNT(*), MAX(created_at)
		FROM results GROUP BY upload_batch ORDER BY MAX(created_at) DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing upload batches: %w", err)
	}
	defer rows.Close()

	var batches []*models.UploadBatch
	for rows.Next() {
		var b models.UploadBatch
		if err := rows.Scan(&b.BatchID, &b.Count, &b.LatestUpload); err != nil {
			return nil, err
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// DeleteBatch removes every result imported in one batch
func (r *ResultRepository) DeleteBatch(ctx context.Context, batchID string) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM results WHERE upload_batch = $1`, batchID)
	if err != nil {
		return 0, fmt.Errorf("error deleting upload batch: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return 0, apperrors.ErrBatchNotFound
	}
	return cmdTag.RowsAffected(), nil
}

// GetBranchAnalysis aggregates pass statistics per branch and semester
func (r *ResultRepository) GetBranchAnalysis(ctx context.Context, q *dto.BranchAnalysisQuery) ([]*models.BranchAnalysisRow, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if q.AcademicYear != "" {
		conditions = append(conditions, "academic_year = "+arg(q.AcademicYear))
	}
	if q.ExamID > 0 {
		conditions = append(conditions, "exam_id = "+arg(q.ExamID))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
		SELECT branch_name, semester,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE UPPER(result_status) = 'PASS'),
		       COUNT(*) FILTER (WHERE spi >= 8.5),
		       COUNT(*) FILTER (WHERE spi >= 7.5 AND spi < 8.5),
		       COUNT(*) FILTER (WHERE spi >= 6.5 AND spi < 7.5),
		       ROUND((COUNT(*) FILTER (WHERE UPPER(result_status) = 'PASS'))::numeric * 100 / COUNT(*), 2),
		       ROUND(AVG(spi)::numeric, 2),
		       ROUND(AVG(cpi)::numeric, 2)
		FROM results` + where + `
		GROUP BY branch_name, semester
		ORDER BY branch_name, semester`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error computing branch analysis: %w", err)
	}
	defer rows.Close()

	var analysis []*models.BranchAnalysisRow
	for rows.Next() {
		var row models.BranchAnalysisRow
		if err := rows.Scan(&row.BranchName, &row.Semester, &row.TotalStudents,
			&row.PassCount, &row.DistinctionCount, &row.FirstClassCount, &row.SecondClassCount,
			&row.PassPercent, &row.AvgSPI, &row.AvgCPI); err != nil {
			return nil, err
		}
		analysis = append(analysis, &row)
	}
	return analysis, rows.Err()
}

func (r *ResultRepository) loadSubjects(ctx context.Context, res *models.Result) error {
	rows, err := r.db.Query(ctx, `
		SELECT id, result_id, code, name, credits, grade, is_backlog,
		       theory_ese_grade, theory_pa_grade, theory_total_grade,
		       practical_pa_grade, practical_viva_grade, practical_total_grade
		FROM result_subjects WHERE result_id = $1 ORDER BY code`, res.ID)
	if err != nil {
		return fmt.Errorf("error loading result subjects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s models.ResultSubject
		if err := rows.Scan(&s.ID, &s.ResultID, &s.Code, &s.Name, &s.Credits, &s.Grade, &s.IsBacklog,
			&s.TheoryESE, &s.TheoryPA, &s.TheoryTotal,
			&s.PracticalPA, &s.PracticalViva, &s.PracticalTotal); err != nil {
			return err
		}
		res.Subjects = append(res.Subjects, s)
	}
	return rows.Err()
}
