package dto

import "github.com/milavdabgar/gpp-portal/internal/app/models"

// CreateStudentRequest represents a new student record
type CreateStudentRequest struct {
	FirstName     *string `json:"firstName" binding:"omitempty"`
	MiddleName    *string `json:"middleName" binding:"omitempty"`
	LastName      *string `json:"lastName" binding:"omitempty"`
	FullName      *string `json:"fullName" binding:"omitempty"`
	EnrollmentNo  string  `json:"enrollmentNo" binding:"required"`
	PersonalEmail *string `json:"personalEmail" binding:"omitempty,email"`
	DepartmentID  string  `json:"departmentId" binding:"required,uuid"`
	Batch         *string `json:"batch" binding:"omitempty"`
	Semester      int     `json:"semester" binding:"required,min=1,max=8"`
	Status        string  `json:"status" binding:"omitempty,oneof=active inactive graduated transferred dropped"`
	AdmissionYear int     `json:"admissionYear" binding:"required,min=1990"`
	Gender        *string `json:"gender" binding:"omitempty"`
	Category      *string `json:"category" binding:"omitempty"`
	AadharNo      *string `json:"aadharNo" binding:"omitempty"`
	Shift         int     `json:"shift" binding:"omitempty,min=1,max=2"`

	Guardian  *models.StudentGuardian  `json:"guardian" binding:"omitempty"`
	Contact   *models.StudentContact   `json:"contact" binding:"omitempty"`
	Education []models.StudentEducation `json:"educationBackground" binding:"omitempty"`
}

// UpdateStudentRequest represents editable student fields
type UpdateStudentRequest struct {
	FirstName     *string `json:"firstName" binding:"omitempty"`
	MiddleName    *string `json:"middleName" binding:"omitempty"`
	LastName      *string `json:"lastName" binding:"omitempty"`
	FullName      *string `json:"fullName" binding:"omitempty"`
	PersonalEmail *string `json:"personalEmail" binding:"omitempty,email"`
	DepartmentID  *string `json:"departmentId" binding:"omitempty,uuid"`
	Batch         *string `json:"batch" binding:"omitempty"`
	Semester      *int    `json:"semester" binding:"omitempty,min=1,max=8"`
	Status        *string `json:"status" binding:"omitempty,oneof=active inactive graduated transferred dropped"`
	ConvoYear     *int    `json:"convoYear" binding:"omitempty"`
	Gender        *string `json:"gender" binding:"omitempty"`
	Category      *string `json:"category" binding:"omitempty"`
	AadharNo      *string `json:"aadharNo" binding:"omitempty"`
	Shift         *int    `json:"shift" binding:"omitempty,min=1,max=2"`
	IsComplete    *bool   `json:"isComplete" binding:"omitempty"`
	TermClose     *bool   `json:"termClose" binding:"omitempty"`
	IsCancel      *bool   `json:"isCancel" binding:"omitempty"`
	IsPassAll     *bool   `json:"isPassAll" binding:"omitempty"`

	Guardian       *models.StudentGuardian       `json:"guardian" binding:"omitempty"`
	Contact        *models.StudentContact        `json:"contact" binding:"omitempty"`
	Education      []models.StudentEducation     `json:"educationBackground" binding:"omitempty"`
	SemesterStatus *models.StudentSemesterStatus `json:"semesterStatus" binding:"omitempty"`
}

// StudentListQuery holds filter and paging parameters for student listing
type StudentListQuery struct {
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	DepartmentID string `form:"departmentId"`
	Semester     int    `form:"semester" binding:"omitempty,min=1,max=8"`
	Batch        string `form:"batch"`
	Status       string `form:"status"`
	Category     string `form:"category"`
	Search       string `form:"search"`
	SortBy       string `form:"sortBy,default=enrollment_no"`
	SortOrder    string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}
