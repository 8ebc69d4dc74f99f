package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/milavdabgar/gpp-portal/internal/app/models/dto"
	"github.com/milavdabgar/gpp-portal/internal/pkg/apperrors"
	"github.com/milavdabgar/gpp-portal/internal/pkg/logger"
)

var notFoundErrors = []error{
	apperrors.ErrResourceNotFound,
	apperrors.ErrUserNotFound,
	apperrors.ErrRoleNotFound,
	apperrors.ErrDepartmentNotFound,
	apperrors.ErrFacultyNotFound,
	apperrors.ErrStudentNotFound,
	apperrors.ErrProjectNotFound,
	apperrors.ErrTeamNotFound,
	apperrors.ErrTeamMemberNotFound,
	apperrors.ErrEventNotFound,
	apperrors.ErrLocationNotFound,
	apperrors.ErrResultNotFound,
	apperrors.ErrBatchNotFound,
	apperrors.ErrFeedbackNotFound,
}

var conflictErrors = []error{
	apperrors.ErrResourceAlreadyExists,
	apperrors.ErrConflict,
	apperrors.ErrEmailAlreadyExists,
	apperrors.ErrRoleAlreadyExists,
	apperrors.ErrDepartmentAlreadyExists,
	apperrors.ErrDepartmentHasRelations,
	apperrors.ErrEmployeeIDAlreadyExists,
	apperrors.ErrEnrollmentAlreadyExists,
	apperrors.ErrInstitutionalEmailExists,
	apperrors.ErrLocationTaken,
	apperrors.ErrLocationAssigned,
	apperrors.ErrResultAlreadyExists,
}

var badRequestErrors = []error{
	apperrors.ErrValidationFailed,
	apperrors.ErrBadRequest,
	apperrors.ErrInvalidEnrollmentNumber,
	apperrors.ErrInvalidCSV,
}

// HandleAPIError maps application errors onto HTTP status codes and the
// standard error envelope.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case matchesAny(err, notFoundErrors):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))
	case matchesAny(err, conflictErrors):
		c.JSON(409, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())))
	case matchesAny(err, badRequestErrors):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		c.JSON(401, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))
	case errors.Is(err, apperrors.ErrInvalidRole):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRole, err.Error())))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
