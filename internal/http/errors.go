package api

import (
	"errors"
	"net/http"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/domain/enrollment"
	"lms-platform/internal/domain/user"
	"lms-platform/internal/platform/apperr"
)

// errorResponse writes the standard error body. The "error" field
// carries the human-readable message.
func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error": appErr.Message,
		"code":  appErr.Code,
	})
}

// mapError translates domain errors into HTTP statuses: validation,
// conflict, state, and capacity failures are 400, missing entities 404.
func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, user.ErrMissingFields):
		return apperr.BadRequest("missing_fields", err.Error(), err)
	case errors.Is(err, user.ErrInvalidEmail):
		return apperr.BadRequest("invalid_email", err.Error(), err)
	case errors.Is(err, user.ErrInvalidRole):
		return apperr.BadRequest("invalid_role", err.Error(), err)
	case errors.Is(err, user.ErrEmailTaken):
		return apperr.BadRequest("email_taken", err.Error(), err)
	case errors.Is(err, user.ErrNotFound):
		return apperr.NotFound("user_not_found", err.Error(), err)
	case errors.Is(err, course.ErrMissingFields):
		return apperr.BadRequest("missing_fields", err.Error(), err)
	case errors.Is(err, course.ErrInvalidInstructor):
		return apperr.BadRequest("invalid_instructor", err.Error(), err)
	case errors.Is(err, course.ErrNotFound):
		return apperr.NotFound("course_not_found", err.Error(), err)
	case errors.Is(err, course.ErrNotPublished):
		return apperr.BadRequest("course_not_published", err.Error(), err)
	case errors.Is(err, course.ErrCourseFull):
		return apperr.BadRequest("course_full", err.Error(), err)
	case errors.Is(err, enrollment.ErrStudentNotFound):
		return apperr.NotFound("student_not_found", err.Error(), err)
	default:
		return apperr.Internal("internal_error", http.StatusText(http.StatusInternalServerError), err)
	}
}
