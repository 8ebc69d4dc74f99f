package models

import "time"

// Semester clearance states.
const (
	SemesterCleared      = "CLEARED"
	SemesterPending      = "PENDING"
	SemesterNotAttempted = "NOT_ATTEMPTED"
)

// Student lifecycle states.
const (
	StudentActive      = "active"
	StudentInactive    = "inactive"
	StudentGraduated   = "graduated"
	StudentTransferred = "transferred"
	StudentDropped     = "dropped"
)

// Student is an enrolled student record, optionally linked to a user account.
type Student struct {
	ID           string  `json:"id"`
	UserID       *string `json:"userId,omitempty"`
	DepartmentID string  `json:"departmentId"`

	FirstName          *string `json:"firstName,omitempty"`
	MiddleName         *string `json:"middleName,omitempty"`
	LastName           *string `json:"lastName,omitempty"`
	FullName           *string `json:"fullName,omitempty"`
	EnrollmentNo       string  `json:"enrollmentNo"`
	PersonalEmail      *string `json:"personalEmail,omitempty"`
	InstitutionalEmail string  `json:"institutionalEmail"`

	Batch         *string `json:"batch,omitempty"`
	Semester      int     `json:"semester"`
	Status        string  `json:"status"`
	AdmissionYear int     `json:"admissionYear"`
	ConvoYear     *int    `json:"convoYear,omitempty"`

	Gender   *string `json:"gender,omitempty"`
	Category *string `json:"category,omitempty"`
	AadharNo *string `json:"aadharNo,omitempty"`
	Shift    int     `json:"shift"`

	IsComplete bool `json:"isComplete"`
	TermClose  bool `json:"termClose"`
	IsCancel   bool `json:"isCancel"`
	IsPassAll  bool `json:"isPassAll"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Guardian       *StudentGuardian       `json:"guardian,omitempty"`
	Contact        *StudentContact        `json:"contact,omitempty"`
	Education      []StudentEducation     `json:"educationBackground,omitempty"`
	SemesterStatus *StudentSemesterStatus `json:"semesterStatus,omitempty"`

	// Attached user details when loaded with user data.
	User *User `json:"user,omitempty"`
}

// StudentGuardian holds guardian details for a student.
type StudentGuardian struct {
	ID         string `json:"-"`
	StudentID  string `json:"-"`
	Name       string `json:"name"`
	Relation   string `json:"relation"`
	Contact    string `json:"contact"`
	Occupation string `json:"occupation"`
}

// StudentContact holds contact details for a student.
type StudentContact struct {
	ID        string `json:"-"`
	StudentID string `json:"-"`
	Mobile    string `json:"mobile"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// StudentEducation is a prior education record of a student.
type StudentEducation struct {
	ID            string  `json:"-"`
	StudentID     string  `json:"-"`
	Degree        string  `json:"degree"`
	Institution   string  `json:"institution"`
	Board         string  `json:"board"`
	Percentage    float64 `json:"percentage"`
	YearOfPassing int     `json:"yearOfPassing"`
}

// StudentSemesterStatus tracks per-semester clearance for a student.
type StudentSemesterStatus struct {
	ID        string `json:"-"`
	StudentID string `json:"-"`
	Sem1      string `json:"sem1"`
	Sem2      string `json:"sem2"`
	Sem3      string `json:"sem3"`
	Sem4      string `json:"sem4"`
	Sem5      string `json:"sem5"`
	Sem6      string `json:"sem6"`
	Sem7      string `json:"sem7"`
	Sem8      string `json:"sem8"`
}

// SyncResult summarizes a student/user account synchronization run.
type SyncResult struct {
	Created int      `json:"created"`
	Linked  int      `json:"linked"`
	Errors  []string `json:"errors"`
}
