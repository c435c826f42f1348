package api

import (
	"encoding/json"
	"net/http"
	"time"

	"lms-platform/internal/domain/user"
	"lms-platform/internal/metrics"
	"lms-platform/internal/platform/apperr"
)

// createUserRequest carries no validate tags: field checks live in the
// user service, where the duplicate-email conflict is ordered first.
type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      user.Role `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type userSummary struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            user.Role `json:"role"`
	EnrolledCourses int       `json:"enrolledCourses"`
	CreatedAt       time.Time `json:"createdAt"`
}

type userDetail struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            user.Role `json:"role"`
	EnrolledCourses []int64   `json:"enrolledCourses"`
	CreatedAt       time.Time `json:"createdAt"`
}

// @Summary     Create a user
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request  body      createUserRequest  true  "User payload"
// @Success     201      {object}  map[string]any
// @Failure     400      {object}  map[string]string  "validation or duplicate email"
// @Router      /api/users [post]
func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	u, err := h.userSvc.Create(r.Context(), req.Name, req.Email, req.Role)
	if err != nil {
		errorResponse(w, err)
		return
	}

	metrics.IncUserCreated()
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user": userResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: u.CreatedAt,
		},
	})
}

// @Summary     List users
// @Tags        users
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      /api/users [get]
func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	list := make([]userSummary, 0, len(users))
	for _, u := range users {
		list = append(list, userSummary{
			ID:              u.ID,
			Name:            u.Name,
			Email:           u.Email,
			Role:            u.Role,
			EnrolledCourses: len(u.EnrolledCourses),
			CreatedAt:       u.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"users": list,
		"total": len(users),
	})
}

// @Summary     Get a user
// @Tags        users
// @Produce     json
// @Param       id   path      int64  true  "User ID"
// @Success     200  {object}  userDetail
// @Failure     404  {object}  map[string]string  "not found"
// @Router      /api/users/{id} [get]
func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		errorResponse(w, user.ErrNotFound)
		return
	}

	u, err := h.userSvc.Get(r.Context(), id)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userDetail{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		EnrolledCourses: u.EnrolledCourses,
		CreatedAt:       u.CreatedAt,
	})
}
