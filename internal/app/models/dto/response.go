package dto

import "time"

// APIResponse is the standard success envelope for API endpoints.
type APIResponse struct {
	Status     string          `json:"status" example:"success"`
	Message    string          `json:"message,omitempty" example:"Operation completed successfully"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
	Timestamp  time.Time       `json:"timestamp" example:"2025-06-01T12:01:05Z"`
}

// PaginationInfo carries pagination metadata for list endpoints.
type PaginationInfo struct {
	Page       int   `json:"page" example:"1"`
	Limit      int   `json:"limit" example:"10"`
	Total      int64 `json:"total" example:"42"`
	TotalPages int   `json:"totalPages" example:"5"`
}

// SuccessResponse represents a plain success message response.
type SuccessResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}

// NewSuccessResponse creates a standard success envelope with data.
func NewSuccessResponse(data interface{}, message string) APIResponse {
	return APIResponse{
		Status:    "success",
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewPaginatedResponse creates a standard success envelope carrying a page of data.
func NewPaginatedResponse(data interface{}, pagination PaginationInfo) APIResponse {
	return APIResponse{
		Status:     "success",
		Data:       data,
		Pagination: &pagination,
		Timestamp:  time.Now(),
	}
}
