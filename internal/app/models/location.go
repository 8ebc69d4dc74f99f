package models

import "time"

// ProjectLocation is a physical stall slot assignable to one project.
type ProjectLocation struct {
	ID           string    `json:"id"`
	LocationID   string    `json:"locationId"`
	Section      string    `json:"section"`
	Position     int       `json:"position"`
	DepartmentID *string   `json:"departmentId,omitempty"`
	EventID      string    `json:"eventId"`
	ProjectID    *string   `json:"projectId,omitempty"`
	IsAssigned   bool      `json:"isAssigned"`
	CreatedBy    string    `json:"createdBy"`
	UpdatedBy    string    `json:"updatedBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
