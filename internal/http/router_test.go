package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms-platform/internal/domain/course"
	"lms-platform/internal/domain/enrollment"
	"lms-platform/internal/domain/user"
	api "lms-platform/internal/http"
	"lms-platform/internal/repository/memory"
	"lms-platform/internal/worker"
)

func newTestRouter() http.Handler {
	store := memory.NewStore()
	userSvc := user.NewService(store.Users())
	courseSvc := course.NewService(store.Courses(), store.Users())
	enrollSvc := enrollment.NewService(store, store.Courses(), store.Users())
	enrollCh := make(chan worker.EnrollmentEvent, 10)
	return api.NewRouter(userSvc, courseSvc, enrollSvc, enrollCh)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestFullEnrollmentScenario(t *testing.T) {
	h := newTestRouter()

	// Instructor gets id 1.
	status, body := doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "Dr. Jane Smith", "email": "jane@example.com", "role": "instructor",
	})
	if status != http.StatusCreated {
		t.Fatalf("create instructor: status %d body %v", status, body)
	}
	u := body["user"].(map[string]any)
	if u["id"].(float64) != 1 || u["role"].(string) != "instructor" {
		t.Fatalf("unexpected instructor: %v", u)
	}

	// Course gets id 1 and starts unpublished.
	status, body = doJSON(t, h, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "description": "Basics", "instructorId": 1,
	})
	if status != http.StatusCreated {
		t.Fatalf("create course: status %d body %v", status, body)
	}
	c := body["course"].(map[string]any)
	if c["id"].(float64) != 1 || c["isPublished"].(bool) {
		t.Fatalf("unexpected course: %v", c)
	}
	if c["instructorName"].(string) != "Dr. Jane Smith" {
		t.Fatalf("unexpected instructor name: %v", c["instructorName"])
	}

	// Publish it.
	status, body = doJSON(t, h, http.MethodPut, "/api/courses/1/publish", nil)
	if status != http.StatusOK {
		t.Fatalf("publish: status %d body %v", status, body)
	}
	if !body["course"].(map[string]any)["isPublished"].(bool) {
		t.Fatal("course should be published")
	}

	// Student gets id 2.
	status, body = doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "John Doe", "email": "john@example.com", "role": "student",
	})
	if status != http.StatusCreated {
		t.Fatalf("create student: status %d body %v", status, body)
	}
	if body["user"].(map[string]any)["id"].(float64) != 2 {
		t.Fatalf("expected student id 2: %v", body)
	}

	// Enroll, then enroll again: the count stays at 1.
	for i := 0; i < 2; i++ {
		status, body = doJSON(t, h, http.MethodPost, "/api/courses/1/enroll", map[string]any{
			"studentId": 2,
		})
		if status != http.StatusOK {
			t.Fatalf("enroll #%d: status %d body %v", i+1, status, body)
		}
		if body["enrollmentCount"].(float64) != 1 {
			t.Fatalf("enroll #%d: expected count 1, got %v", i+1, body["enrollmentCount"])
		}
		if body["student"].(string) != "John Doe" || body["course"].(string) != "Intro" {
			t.Fatalf("enroll #%d: unexpected confirmation %v", i+1, body)
		}
	}

	// Detail views reflect the enrollment.
	status, body = doJSON(t, h, http.MethodGet, "/api/users/2", nil)
	if status != http.StatusOK {
		t.Fatalf("get user: status %d", status)
	}
	if got := body["enrolledCourses"].([]any); len(got) != 1 || got[0].(float64) != 1 {
		t.Fatalf("unexpected enrolledCourses: %v", got)
	}

	status, body = doJSON(t, h, http.MethodGet, "/api/courses/1", nil)
	if status != http.StatusOK {
		t.Fatalf("get course: status %d", status)
	}
	if got := body["enrolledStudents"].([]any); len(got) != 1 || got[0].(float64) != 2 {
		t.Fatalf("unexpected enrolledStudents: %v", got)
	}
}

func TestCreateUserValidation(t *testing.T) {
	h := newTestRouter()

	cases := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{
			name:    "missing email",
			payload: map[string]any{"name": "Incomplete User"},
			wantMsg: "Name and email are required",
		},
		{
			name:    "bad email",
			payload: map[string]any{"name": "Invalid User", "email": "invalid-email"},
			wantMsg: "Invalid email format",
		},
		{
			name:    "bad role",
			payload: map[string]any{"name": "Test User", "email": "test@example.com", "role": "wizard"},
			wantMsg: "Invalid role. Must be admin, instructor, or student",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, h, http.MethodPost, "/api/users", tc.payload)
			if status != http.StatusBadRequest {
				t.Fatalf("status %d body %v", status, body)
			}
			if body["error"].(string) != tc.wantMsg {
				t.Fatalf("error %q, want %q", body["error"], tc.wantMsg)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	h := newTestRouter()

	payload := map[string]any{"name": "First", "email": "dup@example.com", "role": "student"}
	if status, body := doJSON(t, h, http.MethodPost, "/api/users", payload); status != http.StatusCreated {
		t.Fatalf("first create: status %d body %v", status, body)
	}

	payload["name"] = "Second"
	status, body := doJSON(t, h, http.MethodPost, "/api/users", payload)
	if status != http.StatusBadRequest {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "User with this email already exists" {
		t.Fatalf("unexpected error: %v", body["error"])
	}

	// The conflict also wins when the name is missing.
	status, body = doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"email": "dup@example.com",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "User with this email already exists" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestGetUnknownUser(t *testing.T) {
	h := newTestRouter()

	status, body := doJSON(t, h, http.MethodGet, "/api/users/99999", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "User not found" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestCreateCourseRequiresInstructor(t *testing.T) {
	h := newTestRouter()

	if status, body := doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "John Doe", "email": "john@example.com", "role": "student",
	}); status != http.StatusCreated {
		t.Fatalf("create student: status %d body %v", status, body)
	}

	status, body := doJSON(t, h, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "description": "Basics", "instructorId": 1,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "Invalid instructor ID" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestEnrollInUnpublishedCourse(t *testing.T) {
	h := newTestRouter()

	doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "Dr. Jane Smith", "email": "jane@example.com", "role": "instructor",
	})
	doJSON(t, h, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "description": "Basics", "instructorId": 1,
	})
	doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "John Doe", "email": "john@example.com", "role": "student",
	})

	status, body := doJSON(t, h, http.MethodPost, "/api/courses/1/enroll", map[string]any{
		"studentId": 2,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "Course is not published" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestEnrollStudentNotFound(t *testing.T) {
	h := newTestRouter()

	doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "Dr. Jane Smith", "email": "jane@example.com", "role": "instructor",
	})
	doJSON(t, h, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "description": "Basics", "instructorId": 1,
	})
	doJSON(t, h, http.MethodPut, "/api/courses/1/publish", nil)

	// The instructor cannot be enrolled as a student.
	status, body := doJSON(t, h, http.MethodPost, "/api/courses/1/enroll", map[string]any{
		"studentId": 1,
	})
	if status != http.StatusNotFound {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "Student not found" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestEnrollWithoutStudentID(t *testing.T) {
	h := newTestRouter()

	doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "Dr. Jane Smith", "email": "jane@example.com", "role": "instructor",
	})
	doJSON(t, h, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "description": "Basics", "instructorId": 1,
	})
	doJSON(t, h, http.MethodPut, "/api/courses/1/publish", nil)

	// An empty body leaves studentId at zero, which no student has.
	status, body := doJSON(t, h, http.MethodPost, "/api/courses/1/enroll", map[string]any{})
	if status != http.StatusNotFound {
		t.Fatalf("status %d body %v", status, body)
	}
	if body["error"].(string) != "Student not found" {
		t.Fatalf("unexpected error: %v", body["error"])
	}
}

func TestListEndpointsReportTotals(t *testing.T) {
	h := newTestRouter()

	doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "Dr. Jane Smith", "email": "jane@example.com", "role": "instructor",
	})
	doJSON(t, h, http.MethodPost, "/api/users", map[string]any{
		"name": "John Doe", "email": "john@example.com",
	})
	doJSON(t, h, http.MethodPost, "/api/courses", map[string]any{
		"title": "Intro", "description": "Basics", "instructorId": 1,
	})

	status, body := doJSON(t, h, http.MethodGet, "/api/users", nil)
	if status != http.StatusOK || body["total"].(float64) != 2 {
		t.Fatalf("users: status %d body %v", status, body)
	}
	users := body["users"].([]any)
	// Role omitted in the second request defaults to student.
	if users[1].(map[string]any)["role"].(string) != "student" {
		t.Fatalf("expected default role student: %v", users[1])
	}

	status, body = doJSON(t, h, http.MethodGet, "/api/courses", nil)
	if status != http.StatusOK || body["total"].(float64) != 1 {
		t.Fatalf("courses: status %d body %v", status, body)
	}
	c := body["courses"].([]any)[0].(map[string]any)
	if c["instructorName"].(string) != "Dr. Jane Smith" {
		t.Fatalf("unexpected instructorName: %v", c)
	}
}

func TestHealthAndIndex(t *testing.T) {
	h := newTestRouter()

	status, body := doJSON(t, h, http.MethodGet, "/health", nil)
	if status != http.StatusOK || body["status"].(string) != "healthy" {
		t.Fatalf("health: status %d body %v", status, body)
	}

	status, body = doJSON(t, h, http.MethodGet, "/", nil)
	if status != http.StatusOK {
		t.Fatalf("index: status %d", status)
	}
	if body["message"].(string) != "🎓 Welcome to the Learning Management System!" {
		t.Fatalf("unexpected welcome message: %v", body["message"])
	}
	stats := body["stats"].(map[string]any)
	if stats["totalUsers"].(float64) != 0 || stats["totalCourses"].(float64) != 0 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}
