package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strconv"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/filestore"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
	"github.com/milavdabgar/gpp-portal/internal/pkg/logger"
	"github.com/milavdabgar/gpp-portal/internal/pkg/report"
)

// FeedbackService defines the interface for teaching feedback analysis
type FeedbackService interface {
	SampleCSV() (*dto.FeedbackSampleResponse, error)
	AnalyzeCSV(ctx context.Context, uploadedBy string, fileHeader *multipart.FileHeader) (*models.FeedbackAnalysis, error)
	GetAnalysisByID(ctx context.Context, id string) (*models.FeedbackAnalysis, error)
	ListAnalyses(ctx context.Context, q *dto.FeedbackListQuery) ([]*models.FeedbackAnalysis, *dto.PaginationInfo, error)
	DeleteAnalysis(ctx context.Context, id string) error
	LaTeXReport(ctx context.Context, id string) (string, error)
	ExportReportCSV(ctx context.Context, id string) (string, error)
}

// feedbackServiceImpl implements the FeedbackService interface
type feedbackServiceImpl struct {
	feedbackRepo *repositories.FeedbackRepository
	store        filestore.Store
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(feedbackRepo *repositories.FeedbackRepository, store filestore.Store) FeedbackService {
	return &feedbackServiceImpl{
		feedbackRepo: feedbackRepo,
		store:        store,
	}
}

var feedbackSampleHeaders = []string{
	"year", "term", "branch", "semester", "subject_code",
	"subject_name", "faculty_name", "total_responses",
	"q1_score", "q2_score", "q3_score", "q4_score",
	"q5_score", "q6_score", "q7_score", "q8_score",
	"q9_score", "q10_score", "q11_score", "q12_score",
}

// SampleCSV returns the upload template with one example row
func (s *feedbackServiceImpl) SampleCSV() (*dto.FeedbackSampleResponse, error) {
	content, err := helpers.WriteCSV(feedbackSampleHeaders, [][]string{{
		"2025", "Odd", "CSE", "5", "CS501",
		"Software Engineering", "Dr. John Doe", "45",
		"4.2", "4.0", "3.8", "4.1",
		"3.9", "4.3", "3.7", "4.2",
		"4.5", "4.0", "3.6", "4.4",
	}})
	if err != nil {
		return nil, err
	}
	return &dto.FeedbackSampleResponse{
		FileName: "sample_feedback.csv",
		Content:  content,
	}, nil
}

// AnalyzeCSV parses an uploaded feedback CSV, computes the statistical
// report and stores the analysis.
func (s *feedbackServiceImpl) AnalyzeCSV(ctx context.Context, uploadedBy string, fileHeader *multipart.FileHeader) (*models.FeedbackAnalysis, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.ErrInvalidCSV
	}
	defer file.Close()

	table, err := helpers.ReadCSV(file)
	if err != nil {
		return nil, err
	}
	for _, col := range []string{"year", "term", "branch", "semester", "subject_code", "subject_name", "faculty_name"} {
		if !table.HasColumn(col) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("missing required column: %s", col))
		}
	}

	if _, err := s.store.SaveUpload(fileHeader, "feedback"); err != nil {
		logger.Warn().Err(err).Str("file", fileHeader.Filename).Msg("Failed to archive feedback upload")
	}

	records := parseFeedbackRows(table)
	if len(records) == 0 {
		return nil, apperrors.NewBadRequestError("no usable feedback rows found")
	}

	analysis := &models.FeedbackAnalysis{
		OriginalFile: fileHeader.Filename,
		RecordCount:  len(records),
		Result:       buildFeedbackReport(records),
		UploadedBy:   uploadedBy,
	}
	if err := s.feedbackRepo.Create(ctx, analysis); err != nil {
		return nil, err
	}

	logger.Info().Str("analysis", analysis.ID).Int("records", len(records)).
		Msg("Feedback analysis stored")
	return analysis, nil
}

// GetAnalysisByID retrieves a stored analysis
func (s *feedbackServiceImpl) GetAnalysisByID(ctx context.Context, id string) (*models.FeedbackAnalysis, error) {
	return s.feedbackRepo.GetByID(ctx, id)
}

// ListAnalyses retrieves stored analyses with pagination metadata
func (s *feedbackServiceImpl) ListAnalyses(ctx context.Context, q *dto.FeedbackListQuery) ([]*models.FeedbackAnalysis, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	analyses, total, err := s.feedbackRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return analyses, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// DeleteAnalysis removes a stored analysis
func (s *feedbackServiceImpl) DeleteAnalysis(ctx context.Context, id string) error {
	return s.feedbackRepo.Delete(ctx, id)
}

// LaTeXReport renders a stored analysis as a LaTeX document
func (s *feedbackServiceImpl) LaTeXReport(ctx context.Context, id string) (string, error) {
	analysis, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	doc := report.BuildFeedbackLaTeX("Student Feedback Analysis Report", &analysis.Result)
	if _, err := s.store.SaveContent("feedback_report.tex", "reports", []byte(doc)); err != nil {
		logger.Warn().Err(err).Str("analysis", id).Msg("Failed to archive feedback report")
	}
	return doc, nil
}

// ExportReportCSV renders the per-subject summary of a stored analysis as CSV
func (s *feedbackServiceImpl) ExportReportCSV(ctx context.Context, id string) (string, error) {
	analysis, err := s.feedbackRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	headers := []string{"Subject Code", "Subject Name", "Faculty", "Responses", "Mean", "Median", "Std Dev", "Min", "Max", "Rating"}
	rows := make([][]string, 0, len(analysis.Result.Subjects))
	for _, sub := range analysis.Result.Subjects {
		rows = append(rows, []string{
			sub.SubjectCode,
			sub.SubjectName,
			sub.FacultyName,
			strconv.Itoa(sub.Summary.Count),
			strconv.FormatFloat(sub.Summary.Mean, 'f', 2, 64),
			strconv.FormatFloat(sub.Summary.Median, 'f', 2, 64),
			strconv.FormatFloat(sub.Summary.StdDev, 'f', 2, 64),
			strconv.FormatFloat(sub.Summary.Min, 'f', 2, 64),
			strconv.FormatFloat(sub.Summary.Max, 'f', 2, 64),
			report.RatingLabel(sub.Summary.Mean),
		})
	}
	return helpers.WriteCSV(headers, rows)
}

func parseFeedbackRows(table *helpers.CSVTable) []models.FeedbackRecord {
	var records []models.FeedbackRecord
	for _, row := range table.Rows {
		rec := models.FeedbackRecord{
			Year:        table.Field(row, "year"),
			Term:        table.Field(row, "term"),
			Branch:      table.Field(row, "branch"),
			Semester:    table.IntField(row, "semester", 0),
			TermStart:   table.Field(row, "term_start"),
			TermEnd:     table.Field(row, "term_end"),
			SubjectCode: table.Field(row, "subject_code"),
			SubjectName: table.Field(row, "subject_name"),
			FacultyName: table.Field(row, "faculty_name"),
		}
		if rec.SubjectCode == "" || rec.FacultyName == "" {
			continue
		}
		for q := 1; q <= models.FeedbackQuestionCount; q++ {
			rec.Scores = append(rec.Scores, table.FloatField(row, fmt.Sprintf("q%d_score", q), 0))
		}
		records = append(records, rec)
	}
	return records
}

var questionLabels = buildQuestionLabels()

func buildQuestionLabels() []string {
	labels := make([]string, models.FeedbackQuestionCount)
	for i := range labels {
		labels[i] = fmt.Sprintf("Q%d", i+1)
	}
	return labels
}

// buildFeedbackReport aggregates records per subject, faculty, semester,
// branch and term-year, plus an overall summary with question correlations.
func buildFeedbackReport(records []models.FeedbackRecord) models.FeedbackReport {
	var rep models.FeedbackReport

	bySubject := map[string][][]float64{}
	byFaculty := map[string][][]float64{}
	bySemester := map[string][][]float64{}
	byBranch := map[string][][]float64{}
	byTerm := map[string][][]float64{}

	subjectMeta := map[string]models.FeedbackRecord{}
	semesterMeta := map[string]models.FeedbackRecord{}
	termMeta := map[string]models.FeedbackRecord{}

	var allRows [][]float64
	for _, rec := range records {
		subjectKey := rec.SubjectCode + "|" + rec.FacultyName
		semesterKey := fmt.Sprintf("%s|%d", rec.Branch, rec.Semester)
		termKey := rec.Year + "|" + rec.Term

		bySubject[subjectKey] = append(bySubject[subjectKey], rec.Scores)
		byFaculty[rec.FacultyName] = append(byFaculty[rec.FacultyName], rec.Scores)
		bySemester[semesterKey] = append(bySemester[semesterKey], rec.Scores)
		byBranch[rec.Branch] = append(byBranch[rec.Branch], rec.Scores)
		byTerm[termKey] = append(byTerm[termKey], rec.Scores)
		allRows = append(allRows, rec.Scores)

		subjectMeta[subjectKey] = rec
		semesterMeta[semesterKey] = rec
		termMeta[termKey] = rec
	}

	for _, key := range sortedKeys(bySubject) {
		meta := subjectMeta[key]
		rep.Subjects = append(rep.Subjects, models.SubjectScore{
			SubjectCode: meta.SubjectCode,
			SubjectName: meta.SubjectName,
			FacultyName: meta.FacultyName,
			Summary:     summarize(bySubject[key]),
		})
	}
	for _, key := range sortedKeys(byFaculty) {
		rep.Faculty = append(rep.Faculty, models.FacultyScore{
			FacultyName: key,
			Summary:     summarize(byFaculty[key]),
		})
	}
	for _, key := range sortedKeys(bySemester) {
		meta := semesterMeta[key]
		rep.Semesters = append(rep.Semesters, models.SemesterScore{
			Branch:   meta.Branch,
			Semester: meta.Semester,
			Summary:  summarize(bySemester[key]),
		})
	}
	for _, key := range sortedKeys(byBranch) {
		rep.Branches = append(rep.Branches, models.BranchScore{
			Branch:  key,
			Summary: summarize(byBranch[key]),
		})
	}
	for _, key := range sortedKeys(byTerm) {
		meta := termMeta[key]
		rep.Terms = append(rep.Terms, models.TermYearScore{
			Year:    meta.Year,
			Term:    meta.Term,
			Summary: summarize(byTerm[key]),
		})
	}

	rep.Overall = summarize(allRows)
	rep.Correlations = correlate(allRows)
	return rep
}

// summarize computes the descriptive statistics of one score group.
func summarize(rows [][]float64) models.ScoreSummary {
	var flat []float64
	for _, row := range rows {
		flat = append(flat, row...)
	}
	min, max := report.MinMax(flat)
	questionMeans := report.QuestionMeans(rows, models.FeedbackQuestionCount)
	strengths, weaknesses := report.StrengthsWeaknesses(questionMeans, questionLabels)
	mean := report.Round2(report.Mean(flat))

	return models.ScoreSummary{
		Count:          len(rows),
		Mean:           mean,
		Median:         report.Round2(report.Median(flat)),
		StdDev:         report.Round2(report.StdDev(flat)),
		Min:            min,
		Max:            max,
		QuestionMeans:  questionMeans,
		Strengths:      strengths,
		Weaknesses:     weaknesses,
		Recommendation: report.Recommendation(mean, weaknesses),
	}
}

// correlate computes pairwise Pearson correlations between question
// columns. Pairs with negligible correlation are omitted.
func correlate(rows [][]float64) models.FeedbackCorrelations {
	if len(rows) < 2 {
		return models.FeedbackCorrelations{}
	}

	columns := make([][]float64, models.FeedbackQuestionCount)
	for _, row := range rows {
		for i := 0; i < models.FeedbackQuestionCount && i < len(row); i++ {
			columns[i] = append(columns[i], row[i])
		}
	}

	pairs := map[string]float64{}
	for i := 0; i < models.FeedbackQuestionCount; i++ {
		for j := i + 1; j < models.FeedbackQuestionCount; j++ {
			r := report.Round2(report.Pearson(columns[i], columns[j]))
			if r >= 0.5 || r <= -0.5 {
				pairs[fmt.Sprintf("Q%d-Q%d", i+1, j+1)] = r
			}
		}
	}
	if len(pairs) == 0 {
		return models.FeedbackCorrelations{}
	}
	return models.FeedbackCorrelations{QuestionPairs: pairs}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
