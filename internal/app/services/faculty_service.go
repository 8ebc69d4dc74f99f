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
	"github.com/milavdabgar/gpp-portal/internal/pkg/auth"
	"github.com/milavdabgar/gpp-portal/internal/pkg/helpers"
	"github.com/milavdabgar/gpp-portal/internal/pkg/validation"
)

// FacultyService defines the interface for faculty operations
type FacultyService interface {
	CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error)
	GetFacultyByID(ctx context.Context, id string) (*models.Faculty, error)
	ListFaculty(ctx context.Context, q *dto.FacultyListQuery) ([]*models.Faculty, *dto.PaginationInfo, error)
	UpdateFaculty(ctx context.Context, id string, req *dto.UpdateFacultyRequest) (*models.Faculty, error)
	DeleteFaculty(ctx context.Context, id string) error

	ImportFaculty(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
	ExportFaculty(ctx context.Context) (string, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo    *repositories.FacultyRepository
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository, userRepo *repositories.UserRepository, departmentRepo *repositories.DepartmentRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo:    facultyRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateFaculty creates a faculty record together with its user account
func (s *facultyServiceImpl) CreateFaculty(ctx context.Context, req *dto.CreateFacultyRequest) (*models.Faculty, error) {
	if !validation.IsValidEmployeeID(req.EmployeeID) {
		return nil, apperrors.NewValidationError("employee ID must be 3-20 letters, digits or dashes")
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     hashed,
		DepartmentID: &req.DepartmentID,
		Roles:        []string{models.RoleFaculty},
		SelectedRole: models.RoleFaculty,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	faculty := &models.Faculty{
		UserID:            user.ID,
		EmployeeID:        strings.TrimSpace(req.EmployeeID),
		DepartmentID:      req.DepartmentID,
		Designation:       req.Designation,
		Specializations:   req.Specializations,
		JoiningDate:       req.JoiningDate,
		Status:            status,
		ExperienceYears:   int(req.ExperienceYears),
		ExperienceDetails: req.ExperienceDetails,
		Qualifications:    req.Qualifications,
	}
	if err := s.facultyRepo.Create(ctx, faculty); err != nil {
		// Keep accounts consistent when the faculty insert fails.
		_ = s.userRepo.Delete(ctx, user.ID)
		return nil, err
	}

	faculty.User = user
	return faculty, nil
}

// GetFacultyByID retrieves a faculty record with its user details
func (s *facultyServiceImpl) GetFacultyByID(ctx context.Context, id string) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user, err := s.userRepo.GetByID(ctx, faculty.UserID); err == nil {
		faculty.User = user
	}
	return faculty, nil
}

// ListFaculty retrieves faculty with pagination metadata
func (s *facultyServiceImpl) ListFaculty(ctx context.Context, q *dto.FacultyListQuery) ([]*models.Faculty, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	list, total, err := s.facultyRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return list, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// UpdateFaculty applies the provided changes to a faculty record
func (s *facultyServiceImpl) UpdateFaculty(ctx context.Context, id string, req *dto.UpdateFacultyRequest) (*models.Faculty, error) {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		faculty.DepartmentID = *req.DepartmentID
	}
	if req.Designation != nil {
		faculty.Designation = *req.Designation
	}
	if req.Specializations != nil {
		faculty.Specializations = req.Specializations
	}
	if req.JoiningDate != nil {
		faculty.JoiningDate = *req.JoiningDate
	}
	if req.Status != nil {
		faculty.Status = *req.Status
	}
	if req.ExperienceYears != nil {
		faculty.ExperienceYears = int(*req.ExperienceYears)
	}
	if req.ExperienceDetails != nil {
		faculty.ExperienceDetails = req.ExperienceDetails
	}
	if req.Qualifications != nil {
		faculty.Qualifications = req.Qualifications
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return nil, err
	}

	if req.Name != nil {
		user, err := s.userRepo.GetByID(ctx, faculty.UserID)
		if err == nil {
			user.Name = strings.TrimSpace(*req.Name)
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
			faculty.User = user
		}
	}

	return faculty, nil
}

// DeleteFaculty removes a faculty record and its user account
func (s *facultyServiceImpl) DeleteFaculty(ctx context.Context, id string) error {
	faculty, err := s.facultyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, faculty.UserID)
}

// ImportFaculty loads faculty rows from a CSV file. Rows are matched to
// existing staff by email. New rows get a user account with the employee
// ID as the initial password.
func (s *facultyServiceImpl) ImportFaculty(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	table, err := helpers.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	deptByCode := map[string]string{}

	for i, row := range table.Rows {
		rowNum := i + 2

		employeeID := firstNonEmpty(table.Field(row, "employee_id"), table.Field(row, "Staff Code"))
		email := strings.ToLower(firstNonEmpty(table.Field(row, "email"), table.Field(row, "Email Address")))
		if !validation.IsValidEmployeeID(employeeID) || email == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: missing email or invalid employee ID", rowNum))
			continue
		}

		deptCode := firstNonEmpty(table.Field(row, "department_code"), table.Field(row, "Department"))
		departmentID, ok := deptByCode[deptCode]
		if !ok {
			dept, err := s.departmentRepo.GetByCode(ctx, deptCode)
			if err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: department %q not found", rowNum, deptCode))
				continue
			}
			departmentID = dept.ID
			deptByCode[deptCode] = dept.ID
		}

		joiningDate := time.Now()
		if raw := table.Field(row, "joining_date"); raw != "" {
			if joiningDate, err = parseDate(raw); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: invalid joining date %q", rowNum, raw))
				continue
			}
		}

		status := firstNonEmpty(table.Field(row, "status"), "active")
		faculty := &models.Faculty{
			EmployeeID:      employeeID,
			DepartmentID:    departmentID,
			Designation:     table.Field(row, "designation"),
			Specializations: splitList(table.Field(row, "specializations")),
			JoiningDate:     joiningDate,
			Status:          status,
			ExperienceYears: table.IntField(row, "experience_years", 0),
		}

		user, err := s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil:
			existing, err := s.facultyRepo.GetByUserID(ctx, user.ID)
			if err != nil {
				if !errors.Is(err, apperrors.ErrFacultyNotFound) {
					return nil, err
				}
				faculty.UserID = user.ID
				if err := s.facultyRepo.Create(ctx, faculty); err != nil {
					summary.Skipped++
					summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
					continue
				}
			} else {
				faculty.ID = existing.ID
				faculty.UserID = existing.UserID
				faculty.Qualifications = existing.Qualifications
				if err := s.facultyRepo.Update(ctx, faculty); err != nil {
					summary.Skipped++
					summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
					continue
				}
			}
		case errors.Is(err, apperrors.ErrUserNotFound):
			hashed, err := auth.HashPassword(employeeID)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			name := firstNonEmpty(table.Field(row, "name"), table.Field(row, "Full Name"), employeeID)
			user := &models.User{
				Name:         name,
				Email:        email,
				Password:     hashed,
				DepartmentID: &departmentID,
				Roles:        []string{models.RoleFaculty},
				SelectedRole: models.RoleFaculty,
			}
			if err := s.userRepo.Create(ctx, user); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
			faculty.UserID = user.ID
			if err := s.facultyRepo.Create(ctx, faculty); err != nil {
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

// ExportFaculty renders all faculty as CSV text
func (s *facultyServiceImpl) ExportFaculty(ctx context.Context) (string, error) {
	headers := []string{
		"Employee ID", "Name", "Email", "Department", "Designation",
		"Joining Date", "Status", "Experience Years", "Specializations", "Qualifications",
	}

	q := &dto.FacultyListQuery{Page: 1, Limit: helpers.MaxPageSize, SortBy: "employee_id", SortOrder: "asc"}
	deptNames := map[string]string{}
	var rows [][]string
	for {
		offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
		list, total, err := s.facultyRepo.List(ctx, q, offset, limit)
		if err != nil {
			return "", err
		}
		for _, f := range list {
			deptName, ok := deptNames[f.DepartmentID]
			if !ok {
				if dept, err := s.departmentRepo.GetByID(ctx, f.DepartmentID); err == nil {
					deptName = dept.Name
				}
				deptNames[f.DepartmentID] = deptName
			}

			full, err := s.facultyRepo.GetByID(ctx, f.ID)
			if err != nil {
				return "", err
			}
			var quals []string
			for _, qual := range full.Qualifications {
				quals = append(quals, fmt.Sprintf("%s in %s (%s, %d)", qual.Degree, qual.Field, qual.Institution, qual.Year))
			}

			name, email := "", ""
			if f.User != nil {
				name, email = f.User.Name, f.User.Email
			}
			rows = append(rows, []string{
				f.EmployeeID, name, email, deptName, f.Designation,
				f.JoiningDate.Format("2006-01-02"), f.Status,
				strconv.Itoa(f.ExperienceYears),
				strings.Join(f.Specializations, "; "),
				strings.Join(quals, "; "),
			})
		}
		if int64(q.Page*limit) >= total {
			break
		}
		q.Page++
	}

	return helpers.WriteCSV(headers, rows)
}

// splitList splits a semicolon separated CSV cell into trimmed values.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ";") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
