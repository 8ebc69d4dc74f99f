package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
)

func TestReadCSV(t *testing.T) {
	in := "Enrollment_No, Name ,SEMESTER\n1234567890,John Doe,3\n9876543210,Jane Roe,5\n"

	table, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Header lookup is case-insensitive and trimmed
	assert.True(t, table.HasColumn("enrollment_no"))
	assert.True(t, table.HasColumn("Semester"))
	assert.False(t, table.HasColumn("branch"))

	assert.Equal(t, "John Doe", table.Field(table.Rows[0], "name"))
	assert.Equal(t, 5, table.IntField(table.Rows[1], "semester", 0))
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, apperrors.ErrInvalidCSV)
}

func TestFieldMissingColumn(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a,b\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, "", table.Field(table.Rows[0], "c"))
	assert.Equal(t, 7, table.IntField(table.Rows[0], "c", 7))
	assert.Equal(t, 1.5, table.FloatField(table.Rows[0], "c", 1.5))
}

func TestFieldShortRow(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("a,b,c\n1,2\n"))
	require.NoError(t, err)

	assert.Equal(t, "2", table.Field(table.Rows[0], "b"))
	assert.Equal(t, "", table.Field(table.Rows[0], "c"))
}

func TestWriteCSV(t *testing.T) {
	out, err := WriteCSV([]string{"id", "name"}, [][]string{
		{"1", "John"},
		{"2", "comma, separated"},
	})
	require.NoError(t, err)

	assert.Equal(t, "id,name\n1,John\n2,\"comma, separated\"\n", out)
}
