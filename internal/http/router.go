package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/domain/enrollment"
	"lms-platform/internal/domain/user"
	"lms-platform/internal/web"
	"lms-platform/internal/worker"
)

const apiVersion = "1.0.0"

type Handler struct {
	userSvc   *user.Service
	courseSvc *course.Service
	enrollSvc *enrollment.Service
	validate  *validator.Validate
	enrollCh  chan<- worker.EnrollmentEvent
	started   time.Time
}

func NewRouter(
	userSvc *user.Service,
	courseSvc *course.Service,
	enrollSvc *enrollment.Service,
	enrollCh chan<- worker.EnrollmentEvent,
) http.Handler {
	h := &Handler{
		userSvc:   userSvc,
		courseSvc: courseSvc,
		enrollSvc: enrollSvc,
		validate:  validator.New(),
		enrollCh:  enrollCh,
		started:   time.Now(),
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(RequestLogger)
	r.Use(CORSMiddleware)

	r.Get("/health", h.handleHealth)
	r.Get("/", h.handleIndex)
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Handle("/app", web.Handler())
	r.Handle("/app/*", web.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.handleCreateUser)
		r.Get("/users", h.handleListUsers)
		r.Get("/users/{id}", h.handleGetUser)

		r.Post("/courses", h.handleCreateCourse)
		r.Get("/courses", h.handleListCourses)
		r.Get("/courses/{id}", h.handleGetCourse)
		r.Put("/courses/{id}/publish", h.handlePublishCourse)
		r.With(RateLimitEnrollments(rate.Every(time.Second), 20)).
			Post("/courses/{id}/enroll", h.handleEnroll)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	idStr := chi.URLParam(r, name)
	return strconv.ParseInt(idStr, 10, 64)
}

// @Summary     Service health
// @Tags        meta
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      /health [get]
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   apiVersion,
		"uptime":    int(time.Since(h.started).Seconds()),
	})
}

// @Summary     API overview
// @Tags        meta
// @Produce     json
// @Success     200  {object}  map[string]any
// @Router      / [get]
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	courses, err := h.courseSvc.List(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "🎓 Welcome to the Learning Management System!",
		"version": apiVersion,
		"endpoints": map[string]any{
			"health": "GET /health",
			"users": map[string]string{
				"create": "POST /api/users",
				"list":   "GET /api/users",
				"get":    "GET /api/users/{id}",
			},
			"courses": map[string]string{
				"create":  "POST /api/courses",
				"list":    "GET /api/courses",
				"get":     "GET /api/courses/{id}",
				"publish": "PUT /api/courses/{id}/publish",
				"enroll":  "POST /api/courses/{id}/enroll",
			},
		},
		"stats": map[string]int{
			"totalUsers":   len(users),
			"totalCourses": len(courses),
		},
	})
}
