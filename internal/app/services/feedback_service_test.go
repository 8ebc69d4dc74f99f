package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

func scores(base float64) []float64 {
	out := make([]float64, models.FeedbackQuestionCount)
	for i := range out {
		out[i] = base
	}
	return out
}

func TestParseFeedbackRows(t *testing.T) {
	in := strings.Join([]string{
		"year,term,branch,semester,subject_code,subject_name,faculty_name,total_responses,q1_score,q2_score",
		"2025,Odd,CSE,5,CS501,Software Engineering,Dr. Jane Roe,45,4.2,3.8",
		"2025,Odd,CSE,5,,Unnamed,Dr. Jane Roe,45,4.0,4.0",
		"2025,Odd,ME,3,ME301,Thermodynamics,,45,4.0,4.0",
	}, "\n")

	table, err := helpers.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	records := parseFeedbackRows(table)
	// Rows missing subject code or faculty name are skipped
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "2025", rec.Year)
	assert.Equal(t, "CSE", rec.Branch)
	assert.Equal(t, 5, rec.Semester)
	assert.Equal(t, "CS501", rec.SubjectCode)
	assert.Equal(t, "Dr. Jane Roe", rec.FacultyName)
	require.Len(t, rec.Scores, models.FeedbackQuestionCount)
	assert.Equal(t, 4.2, rec.Scores[0])
	assert.Equal(t, 3.8, rec.Scores[1])
	// Missing question columns default to zero
	assert.Equal(t, 0.0, rec.Scores[2])
}

func TestSummarize(t *testing.T) {
	rows := [][]float64{scores(4), scores(5)}
	s := summarize(rows)

	assert.Equal(t, 2, s.Count)
	assert.Equal(t, 4.5, s.Mean)
	assert.Equal(t, 4.5, s.Median)
	assert.Equal(t, 4.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	require.Len(t, s.QuestionMeans, models.FeedbackQuestionCount)
	assert.Equal(t, 4.5, s.QuestionMeans[0])
	assert.Contains(t, s.Recommendation, "Excellent")
}

func TestBuildFeedbackReport(t *testing.T) {
	records := []models.FeedbackRecord{
		{Year: "2025", Term: "Odd", Branch: "CSE", Semester: 5, SubjectCode: "CS501", SubjectName: "Software Engineering", FacultyName: "Dr. Jane Roe", Scores: scores(4.4)},
		{Year: "2025", Term: "Odd", Branch: "CSE", Semester: 5, SubjectCode: "CS502", SubjectName: "Databases", FacultyName: "Dr. Jane Roe", Scores: scores(4.0)},
		{Year: "2025", Term: "Odd", Branch: "ME", Semester: 3, SubjectCode: "ME301", SubjectName: "Thermodynamics", FacultyName: "Prof. Alan Poe", Scores: scores(3.2)},
	}

	rep := buildFeedbackReport(records)

	require.Len(t, rep.Subjects, 3)
	require.Len(t, rep.Faculty, 2)
	require.Len(t, rep.Semesters, 2)
	require.Len(t, rep.Branches, 2)
	require.Len(t, rep.Terms, 1)

	// Keys are emitted in sorted order
	assert.Equal(t, "CS501", rep.Subjects[0].SubjectCode)
	assert.Equal(t, "Dr. Jane Roe", rep.Faculty[0].FacultyName)
	assert.Equal(t, "Prof. Alan Poe", rep.Faculty[1].FacultyName)

	// Faculty aggregation spans both of Dr. Roe's subjects
	assert.Equal(t, 2, rep.Faculty[0].Summary.Count)
	assert.Equal(t, 4.2, rep.Faculty[0].Summary.Mean)

	assert.Equal(t, 3, rep.Overall.Count)
	assert.Equal(t, "2025", rep.Terms[0].Year)
	assert.Equal(t, "Odd", rep.Terms[0].Term)
}

func TestCorrelate(t *testing.T) {
	// Fewer than two rows yields no correlations
	assert.Nil(t, correlate([][]float64{scores(4)}).QuestionPairs)

	// Q1 and Q2 move together, Q3 moves opposite to Q1
	rows := [][]float64{
		{1, 2, 9},
		{2, 4, 7},
		{3, 6, 5},
		{4, 8, 3},
	}
	pairs := correlate(rows).QuestionPairs
	require.NotNil(t, pairs)
	assert.Equal(t, 1.0, pairs["Q1-Q2"])
	assert.Equal(t, -1.0, pairs["Q1-Q3"])
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	assert.Equal(t, []string{"a", "b", "c"}, sortedKeys(m))
}
