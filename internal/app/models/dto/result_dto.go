package dto

// ResultListQuery holds filter and paging parameters for result listing
type ResultListQuery struct {
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	BranchName   string `form:"branchName"`
	Semester     int    `form:"semester" binding:"omitempty,min=1,max=8"`
	AcademicYear string `form:"academicYear"`
	ExamID       int    `form:"examId" binding:"omitempty"`
	UploadBatch  string `form:"uploadBatch"`
	Search       string `form:"search"`
	SortBy       string `form:"sortBy,default=created_at"`
	SortOrder    string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

// BranchAnalysisQuery filters the branch-wise pass analysis
type BranchAnalysisQuery struct {
	AcademicYear string `form:"academicYear"`
	ExamID       int    `form:"examId" binding:"omitempty"`
}

// ImportSummary reports the outcome of a CSV import run
type ImportSummary struct {
	Imported    int      `json:"importedCount"`
	Skipped     int      `json:"skippedCount"`
	UploadBatch string   `json:"batchId,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

// BatchDeleteSummary reports the outcome of deleting an upload batch
type BatchDeleteSummary struct {
	DeletedCount int64 `json:"deletedCount"`
}
