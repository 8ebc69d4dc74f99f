package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/milavdabgar/gpp-portal/internal/app/models"
	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/app/repositories"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
	"github.com/milavdabgar/gpp-portal/internal/pkg/validation"
)

// DepartmentService defines the interface for department operations
type DepartmentService interface {
	CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error)
	GetDepartmentByID(ctx context.Context, id string) (*models.Department, error)
	ListDepartments(ctx context.Context, q *dto.DepartmentListQuery) ([]*models.Department, *dto.PaginationInfo, error)
	UpdateDepartment(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*models.Department, error)
	DeleteDepartment(ctx context.Context, id string) error
	GetStats(ctx context.Context) (*models.DepartmentStats, error)

	ImportDepartments(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
	ExportDepartments(ctx context.Context) (string, error)
}

// departmentServiceImpl implements the DepartmentService interface
type departmentServiceImpl struct {
	departmentRepo *repositories.DepartmentRepository
	userRepo       *repositories.UserRepository
}

// NewDepartmentService creates a new department service instance
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository, userRepo *repositories.UserRepository) DepartmentService {
	return &departmentServiceImpl{
		departmentRepo: departmentRepo,
		userRepo:       userRepo,
	}
}

// CreateDepartment creates a new department after uniqueness checks
func (s *departmentServiceImpl) CreateDepartment(ctx context.Context, req *dto.CreateDepartmentRequest) (*models.Department, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if !validation.IsValidDepartmentCode(code) {
		return nil, apperrors.NewValidationError("department code must be 2-10 uppercase letters or digits")
	}

	exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, strings.TrimSpace(req.Name), code, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDepartmentAlreadyExists
	}

	if req.HODID != nil {
		if err := s.validateHOD(ctx, *req.HODID); err != nil {
			return nil, err
		}
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	var established time.Time
	if req.EstablishedDate != nil {
		established = *req.EstablishedDate
	}

	department := &models.Department{
		Name:            strings.TrimSpace(req.Name),
		Code:            code,
		Description:     req.Description,
		HODID:           req.HODID,
		EstablishedDate: established,
		IsActive:        isActive,
	}
	if err := s.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// GetDepartmentByID retrieves a department
func (s *departmentServiceImpl) GetDepartmentByID(ctx context.Context, id string) (*models.Department, error) {
	return s.departmentRepo.GetByID(ctx, id)
}

// ListDepartments retrieves departments with pagination metadata
func (s *departmentServiceImpl) ListDepartments(ctx context.Context, q *dto.DepartmentListQuery) ([]*models.Department, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	departments, total, err := s.departmentRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return departments, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// UpdateDepartment applies the provided changes to a department
func (s *departmentServiceImpl) UpdateDepartment(ctx context.Context, id string, req *dto.UpdateDepartmentRequest) (*models.Department, error) {
	department, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		department.Name = strings.TrimSpace(*req.Name)
	}
	if req.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*req.Code))
		if !validation.IsValidDepartmentCode(code) {
			return nil, apperrors.NewValidationError("department code must be 2-10 uppercase letters or digits")
		}
		department.Code = code
	}
	if req.Name != nil || req.Code != nil {
		exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code, department.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrDepartmentAlreadyExists
		}
	}
	if req.Description != nil {
		department.Description = *req.Description
	}
	if req.HODID != nil {
		if err := s.validateHOD(ctx, *req.HODID); err != nil {
			return nil, err
		}
		department.HODID = req.HODID
	}
	if req.EstablishedDate != nil {
		department.EstablishedDate = *req.EstablishedDate
	}
	if req.IsActive != nil {
		department.IsActive = *req.IsActive
	}

	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

// DeleteDepartment removes a department without faculty or students
func (s *departmentServiceImpl) DeleteDepartment(ctx context.Context, id string) error {
	return s.departmentRepo.Delete(ctx, id)
}

// GetStats aggregates institution-wide counts
func (s *departmentServiceImpl) GetStats(ctx context.Context) (*models.DepartmentStats, error) {
	return s.departmentRepo.GetStats(ctx)
}

// ImportDepartments loads department rows from a CSV file. Existing
// departments are matched by code and updated in place.
func (s *departmentServiceImpl) ImportDepartments(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	table, err := helpers.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	for i, row := range table.Rows {
		rowNum := i + 2

		name := firstNonEmpty(table.Field(row, "name"), table.Field(row, "Department Name"))
		code := strings.ToUpper(firstNonEmpty(table.Field(row, "code"), table.Field(row, "Department Code")))
		if name == "" || !validation.IsValidDepartmentCode(code) {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: missing name or invalid code", rowNum))
			continue
		}

		var established time.Time
		if raw := table.Field(row, "established_date"); raw != "" {
			if established, err = parseDate(raw); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: invalid established date %q", rowNum, raw))
				continue
			}
		}

		isActive := true
		if raw := table.Field(row, "is_active"); raw != "" {
			isActive, _ = strconv.ParseBool(raw)
		}

		var hodID *string
		if email := table.Field(row, "hod_email"); email != "" {
			hod, err := s.userRepo.GetByEmail(ctx, strings.ToLower(email))
			if err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: head of department %s not found", rowNum, email))
				continue
			}
			hodID = &hod.ID
		}

		department := &models.Department{
			Name:            name,
			Code:            code,
			Description:     table.Field(row, "description"),
			HODID:           hodID,
			EstablishedDate: established,
			IsActive:        isActive,
		}

		existing, err := s.departmentRepo.GetByCode(ctx, code)
		switch {
		case err == nil:
			department.ID = existing.ID
			if err := s.departmentRepo.Update(ctx, department); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		case errors.Is(err, apperrors.ErrDepartmentNotFound):
			if err := s.departmentRepo.Create(ctx, department); err != nil {
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

// ExportDepartments renders all departments as CSV text
func (s *departmentServiceImpl) ExportDepartments(ctx context.Context) (string, error) {
	headers := []string{"Name", "Code", "Description", "HOD Email", "Established Date", "Is Active"}

	q := &dto.DepartmentListQuery{Page: 1, Limit: helpers.MaxPageSize, SortBy: "name", SortOrder: "asc"}
	var rows [][]string
	for {
		offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
		departments, total, err := s.departmentRepo.List(ctx, q, offset, limit)
		if err != nil {
			return "", err
		}
		for _, d := range departments {
			hodEmail := ""
			if d.HODID != nil {
				if hod, err := s.userRepo.GetByID(ctx, *d.HODID); err == nil {
					hodEmail = hod.Email
				}
			}
			established := ""
			if !d.EstablishedDate.IsZero() {
				established = d.EstablishedDate.Format("2006-01-02")
			}
			rows = append(rows, []string{
				d.Name, d.Code, d.Description, hodEmail, established, strconv.FormatBool(d.IsActive),
			})
		}
		if int64(q.Page*limit) >= total {
			break
		}
		q.Page++
	}

	return helpers.WriteCSV(headers, rows)
}

func (s *departmentServiceImpl) validateHOD(ctx context.Context, hodID string) error {
	user, err := s.userRepo.GetByID(ctx, hodID)
	if err != nil {
		return err
	}
	if !user.HasRole(models.RoleHOD) && !user.HasRole(models.RoleAdmin) {
		return apperrors.NewValidationError("assigned head must hold the hod role")
	}
	return nil
}
