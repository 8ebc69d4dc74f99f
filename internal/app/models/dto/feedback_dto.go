package dto

// FeedbackListQuery holds paging parameters for stored feedback analyses
type FeedbackListQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,min=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
}

// FeedbackSampleResponse returns a sample CSV for the feedback upload format
type FeedbackSampleResponse struct {
	FileName string `json:"fileName"`
	Content  string `json:"content"`
}
