package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEnrollmentNo(t *testing.T) {
	assert.True(t, IsValidEnrollmentNo("1234567890"))
	assert.True(t, IsValidEnrollmentNo(" 123456789012 "))
	assert.False(t, IsValidEnrollmentNo("12345"))
	assert.False(t, IsValidEnrollmentNo("12345678901234"))
	assert.False(t, IsValidEnrollmentNo("12345ABC90"))
	assert.False(t, IsValidEnrollmentNo(""))
}

func TestIsValidDepartmentCode(t *testing.T) {
	assert.True(t, IsValidDepartmentCode("CE"))
	assert.True(t, IsValidDepartmentCode("ICT01"))
	assert.False(t, IsValidDepartmentCode("c"))
	assert.False(t, IsValidDepartmentCode("lowercase"))
	assert.False(t, IsValidDepartmentCode("TOOLONGCODE1"))
}

func TestIsValidEmployeeID(t *testing.T) {
	assert.True(t, IsValidEmployeeID("EMP-001"))
	assert.True(t, IsValidEmployeeID("f100"))
	assert.False(t, IsValidEmployeeID("ab"))
	assert.False(t, IsValidEmployeeID("has space"))
}

func TestIsValidAcademicYear(t *testing.T) {
	assert.True(t, IsValidAcademicYear("2024-25"))
	assert.False(t, IsValidAcademicYear("2024-2025"))
	assert.False(t, IsValidAcademicYear("24-25"))
}

func TestInstitutionalEmail(t *testing.T) {
	assert.Equal(t, "1234567890@gppalanpur.in", InstitutionalEmail("1234567890", "gppalanpur.in"))
}
