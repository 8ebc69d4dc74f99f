package models

import "time"

// Faculty is a teaching staff record linked one-to-one with a user account.
type Faculty struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	EmployeeID        string    `json:"employeeId"`
	DepartmentID      string    `json:"departmentId"`
	Designation       string    `json:"designation"`
	Specializations   []string  `json:"specializations"`
	JoiningDate       time.Time `json:"joiningDate"`
	Status            string    `json:"status"`
	ExperienceYears   int       `json:"experienceYears"`
	ExperienceDetails *string   `json:"experienceDetails,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	Qualifications []FacultyQualification `json:"qualifications"`

	// Attached user details when loaded with user data.
	User *User `json:"user,omitempty"`
}

// FacultyQualification is a degree held by a faculty member.
type FacultyQualification struct {
	ID          string `json:"id"`
	FacultyID   string `json:"-"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        int    `json:"year"`
}
