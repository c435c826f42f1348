package metrics

import (
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal *prometheus.CounterVec
	usersCreated      prometheus.Counter
	coursesCreated    prometheus.Counter
	enrollmentsTotal  prometheus.Counter
	registerOnce      sync.Once
)

// Register initializes Prometheus metrics on the default registry.
func Register() {
	registerOnce.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by the LMS API.",
		}, []string{"method", "path", "status"})
		usersCreated = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "lms",
			Name:      "users_created_total",
			Help:      "Total users created.",
		})
		coursesCreated = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "lms",
			Name:      "courses_created_total",
			Help:      "Total courses created.",
		})
		enrollmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "lms",
			Name:      "enrollments_total",
			Help:      "Total successful course enrollments.",
		})
	})
}

// IncRequest increments the http_requests_total counter with the given labels.
func IncRequest(method, path string, status int) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func IncUserCreated() {
	if usersCreated != nil {
		usersCreated.Inc()
	}
}

func IncCourseCreated() {
	if coursesCreated != nil {
		coursesCreated.Inc()
	}
}

func IncEnrollment() {
	if enrollmentsTotal != nil {
		enrollmentsTotal.Inc()
	}
}
