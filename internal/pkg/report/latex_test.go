package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
)

func TestEscapeLaTeX(t *testing.T) {
	assert.Equal(t, `CS\_101 \& ME\_202`, EscapeLaTeX("CS_101 & ME_202"))
	assert.Equal(t, `100\%`, EscapeLaTeX("100%"))
	assert.Equal(t, `\{x\}`, EscapeLaTeX("{x}"))
	assert.Equal(t, "plain text", EscapeLaTeX("plain text"))
}

func TestBuildFeedbackLaTeX(t *testing.T) {
	rep := &models.FeedbackReport{
		Overall: models.ScoreSummary{
			Count:          45,
			Mean:           4.1,
			Median:         4.0,
			StdDev:         0.5,
			Min:            3.0,
			Max:            5.0,
			QuestionMeans:  []float64{4.2, 4.0, 4.1},
			Recommendation: "Overall rating Very Good (4.10). Maintain current practices.",
		},
		Subjects: []models.SubjectScore{
			{
				SubjectCode: "CS_501",
				SubjectName: "Software Engineering",
				FacultyName: "Dr. Jane Roe",
				Summary:     models.ScoreSummary{Count: 45, Mean: 4.1},
			},
		},
		Faculty: []models.FacultyScore{
			{FacultyName: "Dr. Jane Roe", Summary: models.ScoreSummary{Count: 45, Mean: 4.1, StdDev: 0.5}},
		},
		Semesters: []models.SemesterScore{
			{Branch: "CSE", Semester: 5, Summary: models.ScoreSummary{Count: 45, Mean: 4.1}},
		},
		Branches: []models.BranchScore{
			{Branch: "CSE", Summary: models.ScoreSummary{Count: 45, Mean: 4.1}},
		},
	}

	doc := BuildFeedbackLaTeX("Feedback Report", rep)

	assert.Contains(t, doc, `\documentclass`)
	assert.Contains(t, doc, `\title{Feedback Report}`)
	assert.Contains(t, doc, `\section{Overall Summary}`)
	assert.Contains(t, doc, `\section{Subject-wise Analysis}`)
	assert.Contains(t, doc, `\section{Recommendations}`)
	assert.Contains(t, doc, `\end{document}`)

	// Underscore in the subject code must be escaped
	assert.Contains(t, doc, `CS\_501`)
	assert.NotContains(t, doc, "CS_501 &")

	// Question chart renders one coordinate per question mean
	assert.Contains(t, doc, "(1,4.20)")
	assert.Contains(t, doc, "(3,4.10)")
}

func TestBuildFeedbackLaTeXNoQuestionMeans(t *testing.T) {
	doc := BuildFeedbackLaTeX("Empty", &models.FeedbackReport{})
	assert.NotContains(t, doc, `\begin{tikzpicture}`)
}
