package models

import "time"

// Event lifecycle states.
const (
	EventUpcoming  = "upcoming"
	EventOngoing   = "ongoing"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// ProjectEvent is a project fair or exhibition with a registration window.
type ProjectEvent struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	AcademicYear      string          `json:"academicYear"`
	EventDate         time.Time       `json:"eventDate"`
	RegistrationStart time.Time       `json:"registrationStartDate"`
	RegistrationEnd   time.Time       `json:"registrationEndDate"`
	IsActive          bool            `json:"isActive"`
	Status            string          `json:"status"`
	PublishResults    bool            `json:"publishResults"`
	Schedule          []EventSchedule `json:"schedule,omitempty"`
	DepartmentIDs     []string        `json:"departments"`
	CreatedBy         string          `json:"createdBy"`
	UpdatedBy         string          `json:"updatedBy"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// EventSchedule is a single agenda item on an event day.
type EventSchedule struct {
	ID          string    `json:"-"`
	EventID     string    `json:"-"`
	Time        string    `json:"time"`
	Activity    string    `json:"activity"`
	Location    string    `json:"location"`
	Coordinator Organizer `json:"coordinator"`
	Notes       string    `json:"notes"`
}

// Organizer identifies the person responsible for a schedule slot.
type Organizer struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

// RegistrationOpen reports whether registration is open at the given time.
func (e *ProjectEvent) RegistrationOpen(now time.Time) bool {
	return e.IsActive && !now.Before(e.RegistrationStart) && !now.After(e.RegistrationEnd)
}
