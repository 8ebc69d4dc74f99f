package dto

import (
	"time"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
)

// CreateFacultyRequest represents a new faculty record with its user account
type CreateFacultyRequest struct {
	Name              string                        `json:"name" binding:"required"`
	Email             string                        `json:"email" binding:"required,email"`
	Password          string                        `json:"password" binding:"required,min=8"`
	EmployeeID        string                        `json:"employeeId" binding:"required"`
	DepartmentID      string                        `json:"departmentId" binding:"required,uuid"`
	Designation       string                        `json:"designation" binding:"required"`
	Specializations   []string                      `json:"specializations" binding:"omitempty"`
	JoiningDate       time.Time                     `json:"joiningDate" binding:"required"`
	Status            string                        `json:"status" binding:"omitempty,oneof=active inactive retired resigned"`
	ExperienceYears   float64                       `json:"experienceYears" binding:"omitempty,min=0"`
	ExperienceDetails *string                       `json:"experienceDetails" binding:"omitempty"`
	Qualifications    []models.FacultyQualification `json:"qualifications" binding:"omitempty"`
}

// UpdateFacultyRequest represents editable faculty fields
type UpdateFacultyRequest struct {
	Name              *string                       `json:"name" binding:"omitempty"`
	DepartmentID      *string                       `json:"departmentId" binding:"omitempty,uuid"`
	Designation       *string                       `json:"designation" binding:"omitempty"`
	Specializations   []string                      `json:"specializations" binding:"omitempty"`
	JoiningDate       *time.Time                    `json:"joiningDate" binding:"omitempty"`
	Status            *string                       `json:"status" binding:"omitempty,oneof=active inactive retired resigned"`
	ExperienceYears   *float64                      `json:"experienceYears" binding:"omitempty,min=0"`
	ExperienceDetails *string                       `json:"experienceDetails" binding:"omitempty"`
	Qualifications    []models.FacultyQualification `json:"qualifications" binding:"omitempty"`
}

// FacultyListQuery holds filter and paging parameters for faculty listing
type FacultyListQuery struct {
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	DepartmentID string `form:"departmentId"`
	Status       string `form:"status"`
	Search       string `form:"search"`
	SortBy       string `form:"sortBy,default=joining_date"`
	SortOrder    string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}
