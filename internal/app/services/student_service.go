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
	"github.com/milavdabgar/gpp-portal/internal/pkg/logger"
	"github.com/milavdabgar/gpp-portal/internal/pkg/validation"
)

// StudentService defines the interface for student operations
type StudentService interface {
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	GetStudentByID(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context, q *dto.StudentListQuery) ([]*models.Student, *dto.PaginationInfo, error)
	UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportSummary, error)
	ExportStudents(ctx context.Context) (string, error)
	SyncStudentUsers(ctx context.Context) (*models.SyncResult, error)
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	studentRepo    *repositories.StudentRepository
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
	emailDomain    string
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo *repositories.StudentRepository, userRepo *repositories.UserRepository, departmentRepo *repositories.DepartmentRepository, emailDomain string) StudentService {
	return &studentServiceImpl{
		studentRepo:    studentRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		emailDomain:    emailDomain,
	}
}

// CreateStudent creates a new student record
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	enrollmentNo := strings.TrimSpace(req.EnrollmentNo)
	if !validation.IsValidEnrollmentNo(enrollmentNo) {
		return nil, apperrors.ErrInvalidEnrollmentNumber
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	if _, err := s.studentRepo.GetByEnrollmentNo(ctx, enrollmentNo); err == nil {
		return nil, apperrors.ErrEnrollmentAlreadyExists
	} else if !errors.Is(err, apperrors.ErrStudentNotFound) {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StudentActive
	}
	shift := req.Shift
	if shift == 0 {
		shift = 1
	}

	student := &models.Student{
		DepartmentID:       req.DepartmentID,
		FirstName:          req.FirstName,
		MiddleName:         req.MiddleName,
		LastName:           req.LastName,
		FullName:           req.FullName,
		EnrollmentNo:       enrollmentNo,
		PersonalEmail:      req.PersonalEmail,
		InstitutionalEmail: validation.InstitutionalEmail(strings.ToLower(enrollmentNo), s.emailDomain),
		Batch:              req.Batch,
		Semester:           req.Semester,
		Status:             status,
		AdmissionYear:      req.AdmissionYear,
		Gender:             req.Gender,
		Category:           req.Category,
		AadharNo:           req.AadharNo,
		Shift:              shift,
		Guardian:           req.Guardian,
		Contact:            req.Contact,
		Education:          req.Education,
		SemesterStatus:     defaultSemesterStatus(),
	}
	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// GetStudentByID retrieves a student record
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id string) (*models.Student, error) {
	return s.studentRepo.GetByID(ctx, id)
}

// ListStudents retrieves students with pagination metadata
func (s *studentServiceImpl) ListStudents(ctx context.Context, q *dto.StudentListQuery) ([]*models.Student, *dto.PaginationInfo, error) {
	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
	students, total, err := s.studentRepo.List(ctx, q, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	return students, helpers.NewPaginationInfo(total, q.Page, limit), nil
}

// UpdateStudent applies the provided changes to a student record
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			return nil, err
		}
		student.DepartmentID = *req.DepartmentID
	}
	if req.FirstName != nil {
		student.FirstName = req.FirstName
	}
	if req.MiddleName != nil {
		student.MiddleName = req.MiddleName
	}
	if req.LastName != nil {
		student.LastName = req.LastName
	}
	if req.FullName != nil {
		student.FullName = req.FullName
	}
	if req.PersonalEmail != nil {
		student.PersonalEmail = req.PersonalEmail
	}
	if req.Batch != nil {
		student.Batch = req.Batch
	}
	if req.Semester != nil {
		student.Semester = *req.Semester
	}
	if req.Status != nil {
		student.Status = *req.Status
	}
	if req.ConvoYear != nil {
		student.ConvoYear = req.ConvoYear
	}
	if req.Gender != nil {
		student.Gender = req.Gender
	}
	if req.Category != nil {
		student.Category = req.Category
	}
	if req.AadharNo != nil {
		student.AadharNo = req.AadharNo
	}
	if req.Shift != nil {
		student.Shift = *req.Shift
	}
	if req.IsComplete != nil {
		student.IsComplete = *req.IsComplete
	}
	if req.TermClose != nil {
		student.TermClose = *req.TermClose
	}
	if req.IsCancel != nil {
		student.IsCancel = *req.IsCancel
	}
	if req.IsPassAll != nil {
		student.IsPassAll = *req.IsPassAll
	}
	if req.Guardian != nil {
		student.Guardian = req.Guardian
	}
	if req.Contact != nil {
		student.Contact = req.Contact
	}
	if req.Education != nil {
		student.Education = req.Education
	}
	if req.SemesterStatus != nil {
		student.SemesterStatus = req.SemesterStatus
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DeleteStudent removes a student record
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	return s.studentRepo.Delete(ctx, id)
}

// ImportStudents loads student rows from a CSV file. Rows with a missing
// enrollment number or an unknown department are skipped and reported.
func (s *studentServiceImpl) ImportStudents(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	table, err := helpers.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{}
	deptByCode := map[string]string{}

	for i, row := range table.Rows {
		rowNum := i + 2

		enrollmentNo := firstNonEmpty(
			table.Field(row, "enrollment_no"),
			table.Field(row, "Enrollment No"),
			table.Field(row, "MAP_NUMBER"),
		)
		if enrollmentNo == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: missing enrollment number", rowNum))
			continue
		}

		deptCode := firstNonEmpty(table.Field(row, "BR_CODE"), table.Field(row, "branch_code"), table.Field(row, "Department Code"))
		deptName := firstNonEmpty(table.Field(row, "BR_NAME"), table.Field(row, "branch_name"), table.Field(row, "Department"))
		departmentID, err := s.resolveDepartment(ctx, deptCode, deptName, deptByCode)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: department not found (code=%s name=%s)", rowNum, deptCode, deptName))
			continue
		}

		fullName := firstNonEmpty(table.Field(row, "Name"), table.Field(row, "full_name"), table.Field(row, "Full Name"))
		first, middle, last := splitName(fullName)

		semester := table.IntField(row, "semester", table.IntField(row, "Semester", 1))
		admissionYear := table.IntField(row, "admission_year", table.IntField(row, "Admission Year", 0))
		if admissionYear == 0 {
			if y, err := strconv.Atoi(enrollmentNo[:4]); err == nil {
				admissionYear = y
			} else {
				admissionYear = time.Now().Year()
			}
		}

		batch := firstNonEmpty(table.Field(row, "batch"), table.Field(row, "Batch"))
		if batch == "" {
			batch = fmt.Sprintf("%d-%d", admissionYear, admissionYear+3)
		}

		personalEmail := firstNonEmpty(table.Field(row, "personal_email"), table.Field(row, "Email"))
		institutionalEmail := firstNonEmpty(
			table.Field(row, "institutional_email"),
			validation.InstitutionalEmail(strings.ToLower(enrollmentNo), s.emailDomain),
		)

		student := &models.Student{
			DepartmentID:       departmentID,
			FirstName:          strPtrOrNil(first),
			MiddleName:         strPtrOrNil(middle),
			LastName:           strPtrOrNil(last),
			FullName:           strPtrOrNil(fullName),
			EnrollmentNo:       enrollmentNo,
			PersonalEmail:      strPtrOrNil(personalEmail),
			InstitutionalEmail: institutionalEmail,
			Batch:              &batch,
			Semester:           semester,
			Status:             models.StudentActive,
			AdmissionYear:      admissionYear,
			Shift:              1,
			SemesterStatus:     defaultSemesterStatus(),
		}

		existing, err := s.studentRepo.GetByEnrollmentNo(ctx, enrollmentNo)
		switch {
		case err == nil:
			student.ID = existing.ID
			student.UserID = existing.UserID
			student.Status = existing.Status
			if err := s.studentRepo.Update(ctx, student); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		case errors.Is(err, apperrors.ErrStudentNotFound):
			if err := s.studentRepo.Create(ctx, student); err != nil {
				summary.Skipped++
				summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
		default:
			return nil, err
		}

		summary.Imported++
	}

	logger.Info().Int("imported", summary.Imported).Int("skipped", summary.Skipped).Msg("Student import finished")
	return summary, nil
}

// ExportStudents renders all students as CSV text
func (s *studentServiceImpl) ExportStudents(ctx context.Context) (string, error) {
	q := &dto.StudentListQuery{Page: 1, Limit: helpers.MaxPageSize}
	headers := []string{
		"Enrollment No", "Name", "Email", "Department", "Batch", "Semester",
		"Status", "Admission Year", "Mobile", "Contact Email", "Address",
		"City", "State", "Pincode", "Guardian Name", "Guardian Relation",
		"Guardian Contact", "Guardian Occupation", "Education Background",
	}

	deptNames := map[string]string{}
	var rows [][]string
	for {
		offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Limit)
		students, total, err := s.studentRepo.List(ctx, q, offset, limit)
		if err != nil {
			return "", err
		}
		for _, st := range students {
			full, err := s.studentRepo.GetByID(ctx, st.ID)
			if err != nil {
				return "", err
			}
			rows = append(rows, s.exportRow(ctx, full, deptNames))
		}
		if int64(q.Page*limit) >= total {
			break
		}
		q.Page++
	}

	return helpers.WriteCSV(headers, rows)
}

// SyncStudentUsers creates user accounts for students that lack one.
// The enrollment number is the initial password.
func (s *studentServiceImpl) SyncStudentUsers(ctx context.Context) (*models.SyncResult, error) {
	students, err := s.studentRepo.ListUnlinked(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.SyncResult{}
	for _, st := range students {
		name := st.EnrollmentNo
		if st.FullName != nil && *st.FullName != "" {
			name = *st.FullName
		}

		if existing, err := s.userRepo.GetByEmail(ctx, st.InstitutionalEmail); err == nil {
			if err := s.studentRepo.LinkUser(ctx, st.ID, existing.ID); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", st.EnrollmentNo, err))
				continue
			}
			result.Linked++
			continue
		} else if !errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}

		hashed, err := auth.HashPassword(st.EnrollmentNo)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user := &models.User{
			Name:         name,
			Email:        st.InstitutionalEmail,
			Password:     hashed,
			DepartmentID: &st.DepartmentID,
			Roles:        []string{models.RoleStudent},
			SelectedRole: models.RoleStudent,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", st.EnrollmentNo, err))
			continue
		}
		if err := s.studentRepo.LinkUser(ctx, st.ID, user.ID); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", st.EnrollmentNo, err))
			continue
		}
		result.Created++
	}

	logger.Info().Int("created", result.Created).Int("linked", result.Linked).Msg("Student user sync finished")
	return result, nil
}

func (s *studentServiceImpl) exportRow(ctx context.Context, st *models.Student, deptNames map[string]string) []string {
	deptName, ok := deptNames[st.DepartmentID]
	if !ok {
		if dept, err := s.departmentRepo.GetByID(ctx, st.DepartmentID); err == nil {
			deptName = dept.Name
		}
		deptNames[st.DepartmentID] = deptName
	}

	name := ""
	if st.FullName != nil {
		name = *st.FullName
	}
	email := st.InstitutionalEmail
	if st.PersonalEmail != nil && *st.PersonalEmail != "" {
		email = *st.PersonalEmail
	}
	batch := ""
	if st.Batch != nil {
		batch = *st.Batch
	}

	var mobile, cEmail, address, city, state, pincode string
	if st.Contact != nil {
		mobile, cEmail, address = st.Contact.Mobile, st.Contact.Email, st.Contact.Address
		city, state, pincode = st.Contact.City, st.Contact.State, st.Contact.Pincode
	}
	var gName, gRelation, gContact, gOccupation string
	if st.Guardian != nil {
		gName, gRelation = st.Guardian.Name, st.Guardian.Relation
		gContact, gOccupation = st.Guardian.Contact, st.Guardian.Occupation
	}

	var eduParts []string
	for _, e := range st.Education {
		eduParts = append(eduParts, fmt.Sprintf("%s|%s|%s|%g|%d",
			e.Degree, e.Institution, e.Board, e.Percentage, e.YearOfPassing))
	}

	return []string{
		st.EnrollmentNo, name, email, deptName, batch, strconv.Itoa(st.Semester),
		st.Status, strconv.Itoa(st.AdmissionYear), mobile, cEmail, address,
		city, state, pincode, gName, gRelation, gContact, gOccupation,
		strings.Join(eduParts, "; "),
	}
}

func (s *studentServiceImpl) resolveDepartment(ctx context.Context, code, name string, cache map[string]string) (string, error) {
	if code != "" {
		if id, ok := cache[code]; ok {
			return id, nil
		}
		if dept, err := s.departmentRepo.GetByCode(ctx, code); err == nil {
			cache[code] = dept.ID
			return dept.ID, nil
		}
	}
	if name != "" {
		key := "name:" + name
		if id, ok := cache[key]; ok {
			return id, nil
		}
		q := &dto.DepartmentListQuery{Page: 1, Limit: 1, Search: name}
		depts, _, err := s.departmentRepo.List(ctx, q, 0, 1)
		if err == nil && len(depts) > 0 {
			cache[key] = depts[0].ID
			return depts[0].ID, nil
		}
	}
	return "", apperrors.ErrDepartmentNotFound
}

func defaultSemesterStatus() *models.StudentSemesterStatus {
	na := models.SemesterNotAttempted
	return &models.StudentSemesterStatus{
		Sem1: na, Sem2: na, Sem3: na, Sem4: na,
		Sem5: na, Sem6: na, Sem7: na, Sem8: na,
	}
}

func splitName(full string) (first, middle, last string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 3)
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		middle = parts[1]
	}
	if len(parts) > 2 {
		last = parts[2]
	}
	return first, middle, last
}

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
