package models

import "time"

// Department is an academic department. Name and code are unique.
type Department struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Code            string    `json:"code"`
	Description     string    `json:"description"`
	HODID           *string   `json:"hodId,omitempty"`
	EstablishedDate time.Time `json:"establishedDate"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DepartmentStats aggregates headcounts used by the admin dashboard.
type DepartmentStats struct {
	TotalDepartments  int64 `json:"totalDepartments"`
	ActiveDepartments int64 `json:"activeDepartments"`
	TotalFaculty      int64 `json:"totalFaculty"`
	TotalStudents     int64 `json:"totalStudents"`
}
