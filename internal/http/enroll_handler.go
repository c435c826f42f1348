package api

import (
	"encoding/json"
	"net/http"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/platform/apperr"
	"lms-platform/internal/worker"
)

// enrollRequest deliberately skips a required check on studentId: an
// absent or zero id falls through to the student lookup, which reports
// the student as not found.
type enrollRequest struct {
	StudentID int64 `json:"studentId"`
}

// @Summary     Enroll a student in a course
// @Tags        enrollments
// @Accept      json
// @Produce     json
// @Param       id       path      int64          true  "Course ID"
// @Param       request  body      enrollRequest  true  "Enrollment payload"
// @Success     200      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "unpublished or at capacity"
// @Failure     404      {object}  map[string]string  "course or student not found"
// @Router      /api/courses/{id}/enroll [post]
func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	courseID, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, course.ErrNotFound)
		return
	}

	var req enrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	res, err := h.enrollSvc.Enroll(r.Context(), courseID, req.StudentID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	if res.Added {
		select {
		case h.enrollCh <- worker.EnrollmentEvent{CourseID: courseID, StudentID: req.StudentID, Count: res.Count}:
		default:
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":         "Student enrolled successfully",
		"student":         res.Student,
		"course":          res.Course,
		"enrollmentCount": res.Count,
	})
}
