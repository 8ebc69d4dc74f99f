package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/filestore"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
	"github.com/milavdabgar/gpp-portal/internal/pkg/logger"
)

// ResultService defines the interface for exam result operations
type ResultService interface {
	GetResultByID(ctx context.Context, id string) (*models.Result, error)
	ListResults(ctx context.Context, q *dto.ResultListQuery) ([]*models.Result, *dto.PaginationInfo, error)
	GetStudentResults(ctx context.Context, actor *Actor, enrollmentNo string) ([]*models.Result, error)
	ImportResults(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ImportSummary, error)
	ExportResults(ctx context.Context) (string, error)
	DeleteResult(ctx context.Context, id string) error
	ListBatches(ctx context.Context) ([]*models.UploadBatch, error)
	DeleteBatch(ctx context.Context, batchID string) (*dto.BatchDeleteSummary, error)
	GetBranchAnalysis(ctx context.Context, q *dto.BranchAnalysisQuery) ([]*models.BranchAnalysisRow, error)
}

// resultServiceImpl implements the ResultService interface
type resultServiceImpl struct {
	resultRepo  *repositories.ResultRepository
	studentRepo *repositories.StudentRepository
	store       filestore.Store
}

// NewResultService creates a new result service instance
func NewResultService(resultRepo *repositories.ResultRepository, studentRepo *repositories.StudentRepository, store filestore.Store) ResultService {
	return &resultServiceImpl{
		resultRepo:  resultRepo,
		studentRepo: studentRepo,
		store:       store,
	}
}

// GetResultByID retrieves one result with its subjects
func (s *resultServiceImpl) GetResultByID(ctx context.Context, id string) (*models.Result, error) {
	return s.resultRepo.GetByID(ctx, id)
}

// ListResults retrieves results with pagination metadata
func (s *resultServiceImpl) ListResults(ctx context.Context, q *dto.ResultListQuery) ([]*models.Result, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	results, total, err := s.resultRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return results, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// GetStudentResults retrieves all results of one student. Students may only
// read their own marksheet; staff may read any.
func (s *resultServiceImpl) GetStudentResults(ctx context.Context, actor *Actor, enrollmentNo string) ([]*models.Result, error) {
	if actor.Role == models.RoleStudent {
		student, err := s.studentRepo.GetByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, apperrors.ErrPermissionDenied
		}
		if student.EnrollmentNo != enrollmentNo {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	results, err := s.resultRepo.ListByEnrollment(ctx, enrollmentNo)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperrors.ErrResultNotFound
	}
	return results, nil
}

// ImportResults parses a declared-results CSV, tags every row with a fresh
// upload batch ID and archives the original file.
func (s *resultServiceImpl) ImportResults(ctx context.Context, fileHeader *multipart.FileHeader) (*dto.ImportSummary, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.ErrInvalidCSV
	}
	defer file.Close()

	table, err := helpers.ReadCSV(file)
	if err != nil {
		return nil, err
	}
	if !table.HasColumn("enrollment_no") || !table.HasColumn("name") || !table.HasColumn("semester") {
		return nil, apperrors.NewBadRequestError("invalid CSV format, required columns missing")
	}

	if _, err := s.store.SaveUpload(fileHeader, "results"); err != nil {
		logger.Warn().Err(err).Str("file", fileHeader.Filename).Msg("Failed to archive results upload")
	}

	batchID := uuid.NewString()
	summary := &dto.ImportSummary{UploadBatch: batchID}

	for i, row := range table.Rows {
		res, err := s.rowToResult(ctx, table, row)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		res.UploadBatch = batchID

		if err := s.resultRepo.Create(ctx, res); err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d (%s): %v", i+2, res.EnrollmentNo, err))
			continue
		}
		summary.Imported++
	}

	logger.Info().Str("batch", batchID).Int("imported", summary.Imported).
		Int("skipped", summary.Skipped).Msg("Result import completed")
	return summary, nil
}

// ExportResults renders every stored result as CSV text
func (s *resultServiceImpl) ExportResults(ctx context.Context) (string, error) {
	results, _, err := s.resultRepo.List(ctx, &dto.ResultListQuery{SortBy: "enrollment_no", SortOrder: "asc"}, 0, exportPageSize)
	if err != nil {
		return "", err
	}

	headers := []string{
		"ID", "Enrollment No", "Name", "Exam", "Semester",
		"Branch", "SPI", "CPI", "Result", "Declaration Date",
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		declared := ""
		if r.DeclarationDate != nil {
			declared = r.DeclarationDate.Format(time.RFC3339)
		}
		rows = append(rows, []string{
			r.ID,
			r.EnrollmentNo,
			r.StudentName,
			r.Exam,
			strconv.Itoa(r.Semester),
			r.BranchName,
			strconv.FormatFloat(r.SPI, 'f', 2, 64),
			strconv.FormatFloat(r.CPI, 'f', 2, 64),
			r.ResultStatus,
			declared,
		})
	}
	return helpers.WriteCSV(headers, rows)
}

// DeleteResult removes one result
func (s *resultServiceImpl) DeleteResult(ctx context.Context, id string) error {
	return s.resultRepo.Delete(ctx, id)
}

// ListBatches summarizes upload batches, newest first
func (s *resultServiceImpl) ListBatches(ctx context.Context) ([]*models.UploadBatch, error) {
	return s.resultRepo.ListBatches(ctx)
}

// DeleteBatch removes every result imported in one batch
func (s *resultServiceImpl) DeleteBatch(ctx context.Context, batchID string) (*dto.BatchDeleteSummary, error) {
	deleted, err := s.resultRepo.DeleteBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("batch", batchID).Int64("deleted", deleted).Msg("Deleted result upload batch")
	return &dto.BatchDeleteSummary{DeletedCount: deleted}, nil
}

// GetBranchAnalysis aggregates pass statistics per branch and semester
func (s *resultServiceImpl) GetBranchAnalysis(ctx context.Context, q *dto.BranchAnalysisQuery) ([]*models.BranchAnalysisRow, error) {
	return s.resultRepo.GetBranchAnalysis(ctx, q)
}

const exportPageSize = 100000

func (s *resultServiceImpl) rowToResult(ctx context.Context, table *helpers.CSVTable, row []string) (*models.Result, error) {
	enrollment := table.Field(row, "enrollment_no")
	name := table.Field(row, "name")
	if enrollment == "" || name == "" {
		return nil, fmt.Errorf("missing enrollment number or name")
	}
	semester := table.IntField(row, "semester", 0)
	if semester < 1 || semester > 8 {
		return nil, fmt.Errorf("invalid semester %q", table.Field(row, "semester"))
	}

	res := &models.Result{
		EnrollmentNo:   enrollment,
		StudentName:    name,
		Exam:           firstNonEmpty(table.Field(row, "exam"), table.Field(row, "extype")),
		Semester:       semester,
		BranchName:     table.Field(row, "branch_name"),
		ResultStatus:   table.Field(row, "result"),
		SPI:            table.FloatField(row, "spi", 0),
		CPI:            table.FloatField(row, "cpi", 0),
		TotalCredits:   table.FloatField(row, "total_credits", 0),
		EarnedCredits:  table.FloatField(row, "earned_credits", 0),
		CurrentBacklog: table.IntField(row, "current_backlog", 0),
		TotalBacklog:   table.IntField(row, "total_backlog", 0),
		Trials:         table.IntField(row, "trials", 1),
		BranchCode:     strPtrOrNil(table.Field(row, "branch_code")),
		AcademicYear:   strPtrOrNil(table.Field(row, "academic_year")),
		Remark:         strPtrOrNil(table.Field(row, "remark")),
	}
	if v := table.IntField(row, "exam_id", 0); v > 0 {
		res.ExamID = &v
	}
	if v := table.IntField(row, "instcode", 0); v > 0 {
		res.InstituteCode = &v
	}
	if v := table.FloatField(row, "cgpa", -1); v >= 0 {
		res.CGPA = &v
	}
	if raw := table.Field(row, "declaration_date"); raw != "" {
		if declared, err := parseDate(raw); err == nil {
			res.DeclarationDate = &declared
		}
	}

	// Link to a registered student record when one exists.
	if student, err := s.studentRepo.GetByEnrollmentNo(ctx, enrollment); err == nil {
		res.StudentID = &student.ID
	}

	res.Subjects = collectSubjects(table, row)
	return res, nil
}

// collectSubjects groups the grouped subject_<code> columns of one row
// into subject entries, reading the matching subject_name_<code>,
// subject_credits_<code> and subject_grade_<code> columns.
func collectSubjects(table *helpers.CSVTable, row []string) []models.ResultSubject {
	var subjects []models.ResultSubject
	for _, header := range table.Headers {
		h := helpers.NormalizeHeader(header)
		parts := strings.Split(h, "_")
		if len(parts) != 2 || parts[0] != "subject" {
			continue
		}
		code := parts[1]
		if table.Field(row, h) == "" {
			continue
		}
		sub := models.ResultSubject{
			Code:    strings.ToUpper(code),
			Name:    table.Field(row, "subject_name_"+code),
			Credits: table.FloatField(row, "subject_credits_"+code, 0),
			Grade:   strings.ToUpper(table.Field(row, "subject_grade_"+code)),
		}
		sub.IsBacklog = sub.Grade == "FF"
		subjects = append(subjects, sub)
	}
	return subjects
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "02-01-2006", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
