package api

import (
	"encoding/json"
	"net/http"
	"time"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/metrics"
	"lms-platform/internal/platform/apperr"
)

type createCourseRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	InstructorID int64  `json:"instructorId" validate:"required"`
}

type courseResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	InstructorID     int64     `json:"instructorId"`
	InstructorName   string    `json:"instructorName"`
	EnrolledStudents int       `json:"enrolledStudents"`
	MaxStudents      int       `json:"maxStudents"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
}

type courseDetail struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Instructor       string    `json:"instructor"`
	EnrolledStudents []int64   `json:"enrolledStudents"`
	MaxStudents      int       `json:"maxStudents"`
	IsPublished      bool      `json:"isPublished"`
	CreatedAt        time.Time `json:"createdAt"`
}

// instructorName resolves the display name for a course's instructor.
// A missing user degrades to "Unknown" rather than failing the read.
func (h *Handler) instructorName(r *http.Request, instructorID int64) string {
	u, err := h.userSvc.Get(r.Context(), instructorID)
	if err != nil {
		return "Unknown"
	}
	return u.Name
}

// @Summary     Create a course
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       request  body      createCourseRequest  true  "Course payload"
// @Success     201      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "validation or invalid instructor"
// @Router      /api/courses [post]
func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		errorResponse(w, course.ErrMissingFields)
		return
	}

	c, err := h.courseSvc.Create(r.Context(), req.Title, req.Description, req.InstructorID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncCourseCreated()
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Course created successfully",
		"course": courseResponse{
			ID:               c.ID,
			Title:            c.Title,
			Description:      c.Description,
			InstructorID:     c.InstructorID,
			InstructorName:   h.instructorName(r, c.InstructorID),
			EnrolledStudents: len(c.EnrolledStudents),
			MaxStudents:      c.MaxStudents,
			IsPublished:      c.IsPublished,
			CreatedAt:        c.CreatedAt,
		},
	})
}

// @Summary     List courses
// @Tags        courses
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      /api/courses [get]
func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	list := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		name, ok := names[c.InstructorID]
		if !ok {
			name = "Unknown"
		}
		list = append(list, courseResponse{
			ID:               c.ID,
			Title:            c.Title,
			Description:      c.Description,
			InstructorID:     c.InstructorID,
			InstructorName:   name,
			EnrolledStudents: len(c.EnrolledStudents),
			MaxStudents:      c.MaxStudents,
			IsPublished:      c.IsPublished,
			CreatedAt:        c.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"courses": list,
		"total":   len(courses),
	})
}

// @Summary     Get a course
// @Tags        courses
// @Produce     json
// @Param       id   path      int64  true  "Course ID"
// @Success     200  {object}  courseDetail
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/courses/{id} [get]
func (h *Handler) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, course.ErrNotFound)
		return
	}

	c, err := h.courseSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, courseDetail{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Instructor:       h.instructorName(r, c.InstructorID),
		EnrolledStudents: c.EnrolledStudents,
		MaxStudents:      c.MaxStudents,
		IsPublished:      c.IsPublished,
		CreatedAt:        c.CreatedAt,
	})
}

// @Summary     Publish a course
// @Tags        courses
// @Produce     json
// @Param       id   path      int64  true  "Course ID"
// @Success     200  {object}  map[string]any
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/courses/{id}/publish [put]
func (h *Handler) handlePublishCourse(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, course.ErrNotFound)
		return
	}

	c, err := h.courseSvc.Publish(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Course published successfully",
		"course": map[string]any{
			"id":          c.ID,
			"title":       c.Title,
			"isPublished": c.IsPublished,
		},
	})
}
