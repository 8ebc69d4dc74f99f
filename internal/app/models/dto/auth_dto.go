package dto

import "github.com/milavdabgar/gpp-portal/internal/app/models"

// SignupRequest represents a self-service account registration
type SignupRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	DepartmentID string `json:"departmentId" binding:"required,uuid"`
}

// LoginRequest represents login credentials with an optional role selection
type LoginRequest struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	SelectedRole string `json:"selectedRole" binding:"omitempty"`
}

// SwitchRoleRequest selects another of the caller's assigned roles
type SwitchRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  *models.User  `json:"user"`
}
