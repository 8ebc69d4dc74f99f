package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

func TestCollectSubjects(t *testing.T) {
	in := strings.Join([]string{
		"enrollment_no,name,semester,subject_cs101,subject_name_cs101,subject_credits_cs101,subject_grade_cs101,subject_ma102,subject_name_ma102,subject_credits_ma102,subject_grade_ma102",
		"1234567890,John Doe,1,1,Programming,4,AB,1,Mathematics,3,ff",
		"9876543210,Jane Roe,1,1,Programming,4,AA,,,,",
	}, "\n")

	table, err := helpers.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	subjects := collectSubjects(table, table.Rows[0])
	require.Len(t, subjects, 2)

	assert.Equal(t, "CS101", subjects[0].Code)
	assert.Equal(t, "Programming", subjects[0].Name)
	assert.Equal(t, 4.0, subjects[0].Credits)
	assert.Equal(t, "AB", subjects[0].Grade)
	assert.False(t, subjects[0].IsBacklog)

	// Grade is upper-cased and FF marks a backlog
	assert.Equal(t, "MA102", subjects[1].Code)
	assert.Equal(t, "FF", subjects[1].Grade)
	assert.True(t, subjects[1].IsBacklog)

	// Empty marker column skips the subject
	subjects = collectSubjects(table, table.Rows[1])
	require.Len(t, subjects, 1)
	assert.Equal(t, "CS101", subjects[0].Code)
}

func TestCollectSubjectsIgnoresNonSubjectColumns(t *testing.T) {
	in := "enrollment_no,subject_name_cs101,extype\n1234567890,Programming,REGULAR\n"
	table, err := helpers.ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	// subject_name_cs101 alone is not a subject marker column
	assert.Empty(t, collectSubjects(table, table.Rows[0]))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-06-15", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"15-06-2025", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"15/06/2025", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)},
		{"2025-06-15T10:30:00Z", time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.want), "parseDate(%q) = %v", tt.in, got)
	}

	_, err := parseDate("June 15, 2025")
	assert.Error(t, err)
}
