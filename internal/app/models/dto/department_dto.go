package dto

import "time"

// CreateDepartmentRequest represents a new department
type CreateDepartmentRequest struct {
	Name            string     `json:"name" binding:"required"`
	Code            string     `json:"code" binding:"required,min=2,max=10"`
	Description     string     `json:"description" binding:"omitempty"`
	HODID           *string    `json:"hodId" binding:"omitempty,uuid"`
	EstablishedDate *time.Time `json:"establishedDate" binding:"omitempty"`
	IsActive        *bool      `json:"isActive" binding:"omitempty"`
}

// UpdateDepartmentRequest represents editable department fields
type UpdateDepartmentRequest struct {
	Name            *string    `json:"name" binding:"omitempty"`
	Code            *string    `json:"code" binding:"omitempty,min=2,max=10"`
	Description     *string    `json:"description" binding:"omitempty"`
	HODID           *string    `json:"hodId" binding:"omitempty,uuid"`
	EstablishedDate *time.Time `json:"establishedDate" binding:"omitempty"`
	IsActive        *bool      `json:"isActive" binding:"omitempty"`
}

// DepartmentListQuery holds filter and paging parameters for department listing
type DepartmentListQuery struct {
	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Search    string `form:"search"`
	IsActive  *bool  `form:"isActive"`
	SortBy    string `form:"sortBy,default=name"`
	SortOrder string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}
