package models

import "time"

// Result is one declared examination result row for a student.
type Result struct {
	ID             string  `json:"id"`
	StudentID      *string `json:"studentId,omitempty"`
	EnrollmentNo   string  `json:"enrollmentNo"`
	StudentName    string  `json:"name"`
	Exam           string  `json:"exam"`
	ExamID         *int    `json:"examId,omitempty"`
	Semester       int     `json:"semester"`
	BranchName     string  `json:"branchName"`
	BranchCode     *string `json:"branchCode,omitempty"`
	AcademicYear   *string `json:"academicYear,omitempty"`
	InstituteCode  *int    `json:"instCode,omitempty"`

	ResultStatus    string   `json:"result"`
	SPI             float64  `json:"spi"`
	CPI             float64  `json:"cpi"`
	CGPA            *float64 `json:"cgpa,omitempty"`
	TotalCredits    float64  `json:"totalCredits"`
	EarnedCredits   float64  `json:"earnedCredits"`
	CurrentBacklog  int      `json:"currentBacklog"`
	TotalBacklog    int      `json:"totalBacklog"`
	Trials          int      `json:"trials"`
	Remark          *string  `json:"remark,omitempty"`

	DeclarationDate *time.Time `json:"declarationDate,omitempty"`
	UploadBatch     string     `json:"uploadBatch"`
	Subjects        []ResultSubject `json:"subjects"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResultSubject is a per-subject grade line within a result.
type ResultSubject struct {
	ID          string  `json:"-"`
	ResultID    string  `json:"-"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Credits     float64 `json:"credits"`
	Grade       string  `json:"grade"`
	IsBacklog   bool    `json:"isBacklog"`
	TheoryESE   *string `json:"theoryEseGrade,omitempty"`
	TheoryPA    *string `json:"theoryPaGrade,omitempty"`
	TheoryTotal *string `json:"theoryTotalGrade,omitempty"`
	PracticalPA *string `json:"practicalPaGrade,omitempty"`
	PracticalViva  *string `json:"practicalVivaGrade,omitempty"`
	PracticalTotal *string `json:"practicalTotalGrade,omitempty"`
}

// UploadBatch summarizes one CSV import run of results.
type UploadBatch struct {
	BatchID      string    `json:"_id"`
	Count        int64     `json:"count"`
	LatestUpload time.Time `json:"latestUpload"`
}

// BranchAnalysisRow aggregates pass statistics per branch and semester.
type BranchAnalysisRow struct {
	BranchName       string  `json:"branchName"`
	Semester         int     `json:"semester"`
	TotalStudents    int64   `json:"totalStudents"`
	PassCount        int64   `json:"passCount"`
	DistinctionCount int64   `json:"distinctionCount"`
	FirstClassCount  int64   `json:"firstClassCount"`
	SecondClassCount int64   `json:"secondClassCount"`
	PassPercent      float64 `json:"passPercentage"`
	AvgSPI           float64 `json:"avgSpi"`
	AvgCPI           float64 `json:"avgCpi"`
}
