package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
)

// UserService defines the interface for user administration operations
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, q *dto.UserListQuery) ([]*models.User, *dto.PaginationInfo, error)
	UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	ImportUsers(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
	ExportUsers(ctx context.Context) (string, error)

	CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*models.Role, error)
	GetRoles(ctx context.Context) ([]*models.Role, error)
	UpdateRole(ctx context.Context, name string, req *dto.UpdateRoleRequest) (*models.Role, error)
	DeleteRole(ctx context.Context, name string) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	userRepo       *repositories.UserRepository
	roleRepo       *repositories.RoleRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewUserService creates a new user service instance
func NewUserService(userRepo *repositories.UserRepository, roleRepo *repositories.RoleRepository, departmentRepo *repositories.DepartmentRepository) UserService {
	return &userServiceImpl{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateUser creates a user account with explicit role assignments
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	if err := s.validateRoles(ctx, req.Roles); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     hashed,
		DepartmentID: req.DepartmentID,
		Roles:        req.Roles,
		SelectedRole: req.Roles[0],
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user account
func (s *userServiceImpl) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves users matching the filter with pagination metadata
func (s *userServiceImpl) ListUsers(ctx context.Context, q *dto.UserListQuery) ([]*models.User, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	users, total, err := s.userRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return users, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// UpdateUser applies the provided changes to a user account
func (s *userServiceImpl) UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}
	if req.DepartmentID != nil {
		user.DepartmentID = req.DepartmentID
	}
	if req.Roles != nil {
		if err := s.validateRoles(ctx, req.Roles); err != nil {
			return nil, err
		}
		user.Roles = req.Roles
		if !user.HasRole(user.SelectedRole) {
			user.SelectedRole = req.Roles[0]
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user account
func (s *userServiceImpl) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// ImportUsers loads user rows from a CSV file. Existing accounts are
// matched by email and updated. New accounts get the mailbox name as
// the initial password.
func (s *userServiceImpl) ImportUsers(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	table, err := helpers.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	deptByCode := map[string]*string{}

	for i, row := range table.Rows {
		rowNum := i + 2

		email := strings.ToLower(firstNonEmpty(table.Field(row, "email"), table.Field(row, "Email Address")))
		name := firstNonEmpty(table.Field(row, "name"), table.Field(row, "Full Name"))
		if email == "" || name == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: missing name or email", rowNum))
			continue
		}

		roles := splitList(strings.ToLower(table.Field(row, "roles")))
		if len(roles) == 0 {
			roles = []string{models.RoleStudent}
		}
		if err := s.validateRoles(ctx, roles); err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		var departmentID *string
		if deptCode := table.Field(row, "department_code"); deptCode != "" {
			id, ok := deptByCode[deptCode]
			if !ok {
				dept, err := s.departmentRepo.GetByCode(ctx, deptCode)
				if err != nil {
					summary.Skipped++
					summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: department %q not found", rowNum, deptCode))
					continue
				}
				id = &dept.ID
				deptByCode[deptCode] = id
			}
			departmentID = id
		}

		user, err := s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			user.Name = name
			user.Roles = roles
			user.DepartmentID = departmentID
			if !user.HasRole(user.SelectedRole) {
				user.SelectedRole = roles[0]
			}
			if err := s.userRepo.Update(ctx, user); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		case errors.Is(err, apperrors.ErrUserNotFound):
			password := table.Field(row, "password")
			if password == "" {
				password, _, _ = strings.Cut(email, "@")
			}
			hashed, err := auth.HashPassword(password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			user := &models.User{
				Name:         name,
				Email:        email,
				Password:     hashed,
				DepartmentID: departmentID,
				Roles:        roles,
				SelectedRole: roles[0],
			}
			if err := s.userRepo.Create(ctx, user); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		default:
			return nil, err
		}
		summary.Imported++
	}
	return summary, nil
}

// ExportUsers renders all user accounts as CSV text. Passwords are
// never exported.
func (s *userServiceImpl) ExportUsers(ctx context.Context) (string, error) {
	headers := []string{"Name", "Email", "Department Code", "Roles", "Selected Role", "Created At"}

	q := &dto.UserListQuery{Page: 1, Limit: helpers.MaxPageSize, SortBy: "name", SortOrder: "asc"}
	deptCodes := map[string]string{}
	var rows [][]string
	for {
		offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
		users, total, err := s.userRepo.List(ctx, q, offset, limit)
		if err != nil {
			return "", err
		}
		for _, u := range users {
			deptCode := ""
			if u.DepartmentID != nil {
				code, ok := deptCodes[*u.DepartmentID]
				if !ok {
					if dept, err := s.departmentRepo.GetByID(ctx, *u.DepartmentID); err == nil {
						code = dept.Code
					}
					deptCodes[*u.DepartmentID] = code
				}
				deptCode = code
			}
			rows = append(rows, []string{
				u.Name, u.Email, deptCode,
				strings.Join(u.Roles, "; "), u.SelectedRole,
				u.CreatedAt.Format("2006-01-02"),
			})
		}
		if int64(q.Page*limit) >= total {
			break
		}
		q.Page++
	}

	return helpers.WriteCSV(headers, rows)
}

// CreateRole defines a new role
func (s *userServiceImpl) CreateRole(ctx context.Context, req *dto.CreateRoleRequest) (*models.Role, error) {
	role := &models.Role{
		Name:        strings.ToLower(strings.TrimSpace(req.Name)),
		Description: req.Description,
		Permissions: req.Permissions,
	}
	if role.Name == "" {
		return nil, apperrors.NewValidationError("role name cannot be empty")
	}
	if err := s.roleRepo.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GetRoles lists all role definitions
func (s *userServiceImpl) GetRoles(ctx context.Context) ([]*models.Role, error) {
	return s.roleRepo.GetAll(ctx)
}

// UpdateRole applies changes to a role definition
func (s *userServiceImpl) UpdateRole(ctx context.Context, name string, req *dto.UpdateRoleRequest) (*models.Role, error) {
	role, err := s.roleRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		role.Description = *req.Description
	}
	if req.Permissions != nil {
		role.Permissions = req.Permissions
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role definition. Built-in roles are protected.
func (s *userServiceImpl) DeleteRole(ctx context.Context, name string) error {
	for _, builtin := range models.DefaultRoles {
		if builtin == name {
			return apperrors.NewForbiddenError("built-in roles cannot be deleted")
		}
	}
	return s.roleRepo.Delete(ctx, name)
}

func (s *userServiceImpl) validateRoles(ctx context.Context, roles []string) error {
	for _, role := range roles {
		if _, err := s.roleRepo.GetByName(ctx, role); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrRoleNotFound, role)
		}
	}
	return nil
}
