package response

import (
	"errors"
	"net/http"

	"github.com/hemloeth/attendance/internal/domain/auth"
	"github.com/hemloeth/attendance/internal/domain/user"
	"github.com/hemloeth/attendance/internal/domain/worklog"
	"github.com/hemloeth/attendance/internal/pkg/export"
	"github.com/hemloeth/attendance/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, "Google account email is not verified")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Work log domain errors
	case errors.Is(err, worklog.ErrSessionAlreadyStarted):
		Conflict(w, "Work already started for today")
	case errors.Is(err, worklog.ErrNoSessionToday):
		NotFound(w, "No work session found for today")
	case errors.Is(err, worklog.ErrSessionAlreadyEnded):
		Conflict(w, "Work already ended for today")
	case errors.Is(err, worklog.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, worklog.ErrWeekOffOverlap):
		Conflict(w, "Work logs already exist for some dates in this period")
	case errors.Is(err, worklog.ErrWorkLogNotFound):
		NotFound(w, "Work log not found")

	// Export errors
	case errors.Is(err, export.ErrUnsupportedFormat):
		BadRequest(w, "Unsupported export format", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
