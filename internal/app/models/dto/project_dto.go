package dto

import (
	"time"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
)

// CreateProjectRequest represents a new project registration
type CreateProjectRequest struct {
	Title        string                     `json:"title" binding:"required"`
	Category     string                     `json:"category" binding:"required"`
	Abstract     string                     `json:"abstract" binding:"required"`
	DepartmentID string                     `json:"departmentId" binding:"required,uuid"`
	TeamID       string                     `json:"teamId" binding:"required,uuid"`
	EventID      string                     `json:"eventId" binding:"required,uuid"`
	Requirements models.ProjectRequirements `json:"requirements" binding:"required"`
	Guide        models.ProjectGuide        `json:"guide" binding:"required"`
}

// UpdateProjectRequest represents editable project fields
type UpdateProjectRequest struct {
	Title        *string                     `json:"title" binding:"omitempty"`
	Category     *string                     `json:"category" binding:"omitempty"`
	Abstract     *string                     `json:"abstract" binding:"omitempty"`
	Status       *string                     `json:"status" binding:"omitempty,oneof=draft submitted approved rejected completed"`
	Requirements *models.ProjectRequirements `json:"requirements" binding:"omitempty"`
	Guide        *models.ProjectGuide        `json:"guide" binding:"omitempty"`
}

// ProjectListQuery holds filter and paging parameters for project listing
type ProjectListQuery struct {
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	DepartmentID string `form:"departmentId"`
	EventID      string `form:"eventId"`
	Category     string `form:"category"`
	Status       string `form:"status"`
	Search       string `form:"search"`
	SortBy       string `form:"sortBy,default=created_at"`
	SortOrder    string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// EvaluationRequest represents a jury evaluation submission
type EvaluationRequest struct {
	Score    float64 `json:"score" binding:"required,min=0,max=100"`
	Feedback string  `json:"feedback" binding:"omitempty"`
}

// CreateTeamRequest represents a new project team
type CreateTeamRequest struct {
	Name         string              `json:"name" binding:"required"`
	DepartmentID string              `json:"departmentId" binding:"required,uuid"`
	EventID      string              `json:"eventId" binding:"required,uuid"`
	Members      []TeamMemberRequest `json:"members" binding:"omitempty,dive"`
}

// UpdateTeamRequest represents editable team fields
type UpdateTeamRequest struct {
	Name    *string             `json:"name" binding:"omitempty"`
	Members []TeamMemberRequest `json:"members" binding:"omitempty,dive"`
}

// TeamMemberRequest represents one member entry in a team payload
type TeamMemberRequest struct {
	UserID       string `json:"userId" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	EnrollmentNo string `json:"enrollmentNo" binding:"required"`
	Role         string `json:"role" binding:"omitempty"`
	IsLeader     bool   `json:"isLeader"`
}

// CreateEventRequest represents a new project event
type CreateEventRequest struct {
	Name              string                 `json:"name" binding:"required"`
	Description       string                 `json:"description" binding:"omitempty"`
	AcademicYear      string                 `json:"academicYear" binding:"required"`
	EventDate         time.Time              `json:"eventDate" binding:"required"`
	RegistrationStart time.Time              `json:"registrationStartDate" binding:"required"`
	RegistrationEnd   time.Time              `json:"registrationEndDate" binding:"required"`
	IsActive          *bool                  `json:"isActive" binding:"omitempty"`
	Status            string                 `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	DepartmentIDs     []string               `json:"departments" binding:"omitempty,dive,uuid"`
	Schedule          []models.EventSchedule `json:"schedule" binding:"omitempty"`
}

// UpdateEventRequest represents editable event fields
type UpdateEventRequest struct {
	Name              *string                `json:"name" binding:"omitempty"`
	Description       *string                `json:"description" binding:"omitempty"`
	AcademicYear      *string                `json:"academicYear" binding:"omitempty"`
	EventDate         *time.Time             `json:"eventDate" binding:"omitempty"`
	RegistrationStart *time.Time             `json:"registrationStartDate" binding:"omitempty"`
	RegistrationEnd   *time.Time             `json:"registrationEndDate" binding:"omitempty"`
	IsActive          *bool                  `json:"isActive" binding:"omitempty"`
	Status            *string                `json:"status" binding:"omitempty,oneof=upcoming ongoing completed cancelled"`
	PublishResults    *bool                  `json:"publishResults" binding:"omitempty"`
	DepartmentIDs     []string               `json:"departments" binding:"omitempty,dive,uuid"`
	Schedule          []models.EventSchedule `json:"schedule" binding:"omitempty"`
}

// ScheduleUpdateRequest replaces an event's schedule
type ScheduleUpdateRequest struct {
	Schedule []models.EventSchedule `json:"schedule" binding:"required"`
}

// CreateLocationRequest represents a new stall location
type CreateLocationRequest struct {
	LocationID   string  `json:"locationId" binding:"omitempty"`
	Section      string  `json:"section" binding:"required"`
	Position     int     `json:"position" binding:"required,min=1"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
	EventID      string  `json:"eventId" binding:"required,uuid"`
}

// BatchLocationRequest creates a contiguous run of locations in one section
type BatchLocationRequest struct {
	Section       string  `json:"section" binding:"required"`
	StartPosition int     `json:"startPosition" binding:"required,min=1"`
	EndPosition   int     `json:"endPosition" binding:"required,min=1"`
	DepartmentID  *string `json:"departmentId" binding:"omitempty,uuid"`
	EventID       string  `json:"eventId" binding:"required,uuid"`
}

// UpdateLocationRequest represents editable location fields
type UpdateLocationRequest struct {
	Section      *string `json:"section" binding:"omitempty"`
	Position     *int    `json:"position" binding:"omitempty,min=1"`
	DepartmentID *string `json:"departmentId" binding:"omitempty,uuid"`
}

// AssignLocationRequest assigns a project to a location
type AssignLocationRequest struct {
	ProjectID string `json:"projectId" binding:"required,uuid"`
}

// LocationListQuery holds filter and paging parameters for location listing
type LocationListQuery struct {
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	EventID      string `form:"eventId"`
	Section      string `form:"section"`
	DepartmentID string `form:"departmentId"`
	IsAssigned   *bool  `form:"isAssigned"`
}
