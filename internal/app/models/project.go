package models

import "time"

// Project submission states.
const (
	ProjectDraft     = "draft"
	ProjectSubmitted = "submitted"
	ProjectApproved  = "approved"
	ProjectRejected  = "rejected"
	ProjectCompleted = "completed"
)

// Project is a student project registered for an event.
type Project struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Category     string `json:"category"`
	Abstract     string `json:"abstract"`
	Status       string `json:"status"`
	DepartmentID string `json:"departmentId"`
	TeamID       string `json:"teamId"`
	EventID      string `json:"eventId"`
	LocationID   *string `json:"locationId,omitempty"`

	Requirements ProjectRequirements `json:"requirements"`
	Guide        ProjectGuide        `json:"guide"`

	DeptEvaluation    *ProjectEvaluation `json:"deptEvaluation,omitempty"`
	CentralEvaluation *ProjectEvaluation `json:"centralEvaluation,omitempty"`

	CreatedBy string    `json:"createdBy"`
	UpdatedBy string    `json:"updatedBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProjectRequirements captures the setup needs of a project stall.
type ProjectRequirements struct {
	Power        bool   `json:"power"`
	Internet     bool   `json:"internet"`
	SpecialSpace bool   `json:"specialSpace"`
	OtherNeeds   string `json:"otherRequirements"`
}

// ProjectGuide identifies the faculty guide of a project.
type ProjectGuide struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
	ContactNo    string `json:"contactNumber"`
}

// ProjectEvaluation is a completed department or central jury evaluation.
type ProjectEvaluation struct {
	Completed   bool       `json:"completed"`
	Score       *float64   `json:"score,omitempty"`
	Feedback    *string    `json:"feedback,omitempty"`
	JuryID      *string    `json:"juryId,omitempty"`
	EvaluatedAt *time.Time `json:"evaluatedAt,omitempty"`
}

// ProjectCountsByCategory is a category-wise project count for statistics.
type ProjectCountsByCategory struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ProjectStatistics aggregates event-wide project numbers.
type ProjectStatistics struct {
	Total              int64                     `json:"total"`
	Evaluated          int64                     `json:"evaluated"`
	Pending            int64                     `json:"pending"`
	AverageScore       float64                   `json:"averageScore"`
	ByDepartment       map[string]int64          `json:"departmentWise"`
	ByCategory         []ProjectCountsByCategory `json:"categoryWise"`
}

// CategoryWinner is a top-scoring project within a category.
type CategoryWinner struct {
	Category string    `json:"category"`
	Rank     int       `json:"rank"`
	Project  *Project  `json:"project"`
	Score    float64   `json:"score"`
}
