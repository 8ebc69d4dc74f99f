package dto

// CreateUserRequest represents an admin-created user account
type CreateUserRequest struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	DepartmentID *string  `json:"departmentId" binding:"omitempty,uuid"`
	Roles        []string `json:"roles" binding:"required,min=1"`
}

// UpdateUserRequest represents editable user fields
type UpdateUserRequest struct {
	Name         *string  `json:"name" binding:"omitempty"`
	Email        *string  `json:"email" binding:"omitempty,email"`
	Password     *string  `json:"password" binding:"omitempty,min=8"`
	DepartmentID *string  `json:"departmentId" binding:"omitempty,uuid"`
	Roles        []string `json:"roles" binding:"omitempty,min=1"`
}

// UserListQuery holds filter and paging parameters for user listing
type UserListQuery struct {
	Page         int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit        int    `form:"limit,default=10" binding:"omitempty,min=1,max=100"`
	Role         string `form:"role"`
	DepartmentID string `form:"departmentId"`
	Search       string `form:"search"`
	SortBy       string `form:"sortBy,default=name"`
	SortOrder    string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}

// CreateRoleRequest represents a new role definition
type CreateRoleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Permissions []string `json:"permissions" binding:"required"`
}

// UpdateRoleRequest represents editable role fields
type UpdateRoleRequest struct {
	Description *string  `json:"description" binding:"omitempty"`
	Permissions []string `json:"permissions" binding:"omitempty"`
}
