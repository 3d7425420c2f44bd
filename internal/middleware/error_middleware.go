package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edutech-cl/platform/internal/app/models/dto"
	"github.com/edutech-cl/platform/internal/pkg/apperrors"
	"github.com/edutech-cl/platform/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP status codes and the
// standard error payload. Service-level errors carry a human-readable
// message restating the offending condition and id; that message is
// returned as-is for client errors, while unexpected errors are logged
// and collapsed into a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))

	case apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrEnrollmentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))

	case apperrors.Is(err, apperrors.ErrConflict,
		apperrors.ErrResourceAlreadyExists,
		apperrors.ErrAlreadyEnrolled,
		apperrors.ErrNoSeatsAvailable,
		apperrors.ErrRunAlreadyExists,
		apperrors.ErrEmailAlreadyExists,
		apperrors.ErrUserHasEnrollments,
		apperrors.ErrCourseHasEnrollments):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceConflict, err.Error())))

	case apperrors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid credentials")))

	case apperrors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case apperrors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	case apperrors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")))

	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
