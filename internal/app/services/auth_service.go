package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
	"github.com/milavdabgar/gpp-portal/internal/pkg/logger"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	SwitchRole(ctx context.Context, userID, role string) (*dto.AuthResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
	jwtService     *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo *repositories.UserRepository, departmentRepo *repositories.DepartmentRepository, jwtService *auth.JWTService) AuthService {
	return &authServiceImpl{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		jwtService:     jwtService,
	}
}

// Signup registers a self-service account with the student role
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Password:     hashed,
		DepartmentID: &req.DepartmentID,
		Roles:        []string{models.RoleStudent},
		SelectedRole: models.RoleStudent,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("userId", user.ID).Str("email", user.Email).Msg("User registered")
	return s.issueToken(user)
}

// Login verifies credentials and issues an access token. When a role is
// requested it must be one of the user's assigned roles.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if req.SelectedRole != "" {
		if !user.HasRole(req.SelectedRole) {
			return nil, apperrors.ErrInvalidRole
		}
		if user.SelectedRole != req.SelectedRole {
			user.SelectedRole = req.SelectedRole
			if err := s.userRepo.UpdateSelectedRole(ctx, user.ID, req.SelectedRole); err != nil {
				return nil, err
			}
		}
	}

	logger.Info().Str("userId", user.ID).Str("role", user.SelectedRole).Msg("User logged in")
	return s.issueToken(user)
}

// SwitchRole changes the active role and issues a fresh token
func (s *authServiceImpl) SwitchRole(ctx context.Context, userID, role string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.HasRole(role) {
		return nil, apperrors.ErrInvalidRole
	}

	if err := s.userRepo.UpdateSelectedRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.SelectedRole = role

	logger.Info().Str("userId", userID).Str("role", role).Msg("User switched role")
	return s.issueToken(user)
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *authServiceImpl) GetCurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, user.SelectedRole)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: user,
	}, nil
}
