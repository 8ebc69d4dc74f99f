package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Enrollment number pattern - 10 to 12 digits
	EnrollmentPattern = `^\d{10,12}$`

	// Department code pattern - 2 to 10 uppercase letters or digits
	DepartmentCodePattern = `^[A-Z0-9]{2,10}$`

	// Employee identifier pattern - letters and digits, 3 to 20 chars
	EmployeeIDPattern = `^[A-Za-z0-9\-]{3,20}$`

	// Academic year pattern, e.g. 2024-25
	AcademicYearPattern = `^\d{4}-\d{2}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Enrollment     *regexp.Regexp
	DepartmentCode *regexp.Regexp
	EmployeeID     *regexp.Regexp
	AcademicYear   *regexp.Regexp
}{
	Enrollment:     regexp.MustCompile(EnrollmentPattern),
	DepartmentCode: regexp.MustCompile(DepartmentCodePattern),
	EmployeeID:     regexp.MustCompile(EmployeeIDPattern),
	AcademicYear:   regexp.MustCompile(AcademicYearPattern),
}

// IsValidEnrollmentNo reports whether s is a well-formed enrollment number.
func IsValidEnrollmentNo(s string) bool {
	return CompiledPatterns.Enrollment.MatchString(strings.TrimSpace(s))
}

// IsValidDepartmentCode reports whether s is a well-formed department code.
func IsValidDepartmentCode(s string) bool {
	return CompiledPatterns.DepartmentCode.MatchString(strings.TrimSpace(s))
}

// IsValidEmployeeID reports whether s is a well-formed employee identifier.
func IsValidEmployeeID(s string) bool {
	return CompiledPatterns.EmployeeID.MatchString(strings.TrimSpace(s))
}

// IsValidAcademicYear reports whether s matches the YYYY-YY form.
func IsValidAcademicYear(s string) bool {
	return CompiledPatterns.AcademicYear.MatchString(strings.TrimSpace(s))
}

// InstitutionalEmail derives the institutional address for an enrollment number.
func InstitutionalEmail(enrollmentNo, domain string) string {
	return strings.TrimSpace(enrollmentNo) + "@" + domain
}
