package models

import "time"

// ProjectTeam is a group of students working on a project.
type ProjectTeam struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	DepartmentID string       `json:"departmentId"`
	EventID      string       `json:"eventId"`
	Members      []TeamMember `json:"members"`
	CreatedBy    string       `json:"createdBy"`
	UpdatedBy    string       `json:"updatedBy"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TeamMember is a student entry within a project team.
type TeamMember struct {
	ID           string `json:"id"`
	TeamID       string `json:"-"`
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	EnrollmentNo string `json:"enrollmentNo"`
	Role         string `json:"role"`
	IsLeader     bool   `json:"isLeader"`
}

// LeaderCount returns the number of members flagged as leader.
func (t *ProjectTeam) LeaderCount() int {
	n := 0
	for _, m := range t.Members {
		if m.IsLeader {
			n++
		}
	}
	return n
}
