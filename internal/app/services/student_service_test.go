package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		in                  string
		first, middle, last string
	}{
		{"DOE JOHN ROBERT", "DOE", "JOHN", "ROBERT"},
		{"DOE JOHN", "DOE", "JOHN", ""},
		{"DOE", "DOE", "", ""},
		{"  DOE JOHN ROBERT JUNIOR ", "DOE", "JOHN", "ROBERT JUNIOR"},
		{"", "", "", ""},
	}
	for _, tt := range tests {
		first, middle, last := splitName(tt.in)
		assert.Equal(t, tt.first, first, tt.in)
		assert.Equal(t, tt.middle, middle, tt.in)
		assert.Equal(t, tt.last, last, tt.in)
	}
}

func TestDefaultSemesterStatus(t *testing.T) {
	status := defaultSemesterStatus()
	require.NotNil(t, status)
	assert.Equal(t, models.SemesterNotAttempted, status.Sem1)
	assert.Equal(t, models.SemesterNotAttempted, status.Sem8)
}

func TestStrPtrOrNil(t *testing.T) {
	assert.Nil(t, strPtrOrNil(""))
	p := strPtrOrNil("value")
	require.NotNil(t, p)
	assert.Equal(t, "value", *p)
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "a", firstNonEmpty("a", "b"))
	assert.Equal(t, "b", firstNonEmpty("", "b"))
	assert.Equal(t, "", firstNonEmpty("", ""))
	assert.Equal(t, "", firstNonEmpty())
}
