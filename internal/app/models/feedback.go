package models

import "time"

// FeedbackQuestionCount is the number of rating questions per feedback row.
const FeedbackQuestionCount = 12

// FeedbackRecord is one imported teaching-feedback rating row.
type FeedbackRecord struct {
	ID          string    `json:"id"`
	AnalysisID  string    `json:"-"`
	Year        string    `json:"year"`
	Term        string    `json:"term"`
	Branch      string    `json:"branch"`
	Semester    int       `json:"semester"`
	TermStart   string    `json:"termStart"`
	TermEnd     string    `json:"termEnd"`
	SubjectCode string    `json:"subjectCode"`
	SubjectName string    `json:"subjectName"`
	FacultyName string    `json:"facultyName"`
	Scores      []float64 `json:"scores"`
}

// FeedbackAnalysis is a stored analysis run over an uploaded feedback CSV.
type FeedbackAnalysis struct {
	ID           string         `json:"id"`
	OriginalFile string         `json:"originalFileName"`
	RecordCount  int            `json:"recordCount"`
	Result       FeedbackReport `json:"analysisResult"`
	UploadedBy   string         `json:"uploadedBy"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// FeedbackReport is the computed analysis over a feedback dataset.
type FeedbackReport struct {
	Subjects     []SubjectScore       `json:"subjectScores"`
	Faculty      []FacultyScore       `json:"facultyScores"`
	Semesters    []SemesterScore      `json:"semesterScores"`
	Branches     []BranchScore        `json:"branchScores"`
	Terms        []TermYearScore      `json:"termYearScores"`
	Overall      ScoreSummary         `json:"overall"`
	Correlations FeedbackCorrelations `json:"correlations"`
}

// SubjectScore aggregates feedback for one subject.
type SubjectScore struct {
	SubjectCode string       `json:"subjectCode"`
	SubjectName string       `json:"subjectName"`
	FacultyName string       `json:"facultyName"`
	Summary     ScoreSummary `json:"summary"`
}

// FacultyScore aggregates feedback for one faculty member.
type FacultyScore struct {
	FacultyName string       `json:"facultyName"`
	Summary     ScoreSummary `json:"summary"`
}

// SemesterScore aggregates feedback for one branch semester.
type SemesterScore struct {
	Branch   string       `json:"branch"`
	Semester int          `json:"semester"`
	Summary  ScoreSummary `json:"summary"`
}

// BranchScore aggregates feedback for one branch.
type BranchScore struct {
	Branch  string       `json:"branch"`
	Summary ScoreSummary `json:"summary"`
}

// TermYearScore aggregates feedback for one term of an academic year.
type TermYearScore struct {
	Year    string       `json:"year"`
	Term    string       `json:"term"`
	Summary ScoreSummary `json:"summary"`
}

// ScoreSummary bundles the descriptive statistics of a rating group.
type ScoreSummary struct {
	Count          int       `json:"count"`
	Mean           float64   `json:"mean"`
	Median         float64   `json:"median"`
	StdDev         float64   `json:"stdDev"`
	Min            float64   `json:"min"`
	Max            float64   `json:"max"`
	QuestionMeans  []float64 `json:"questionAverages"`
	Strengths      []string  `json:"strengths"`
	Weaknesses     []string  `json:"weaknesses"`
	Recommendation string    `json:"recommendation"`
}

// FeedbackCorrelations relates question scores across groupings.
type FeedbackCorrelations struct {
	QuestionPairs map[string]float64 `json:"questionPairs,omitempty"`
}
