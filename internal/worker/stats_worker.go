package worker

import (
	"context"
	"log/slog"

	"lms-platform/internal/metrics"
)

// EnrollmentEvent is emitted after a student is newly added to a roster.
type EnrollmentEvent struct {
	CourseID  int64
	StudentID int64
	Count     int
}

// StatsWorker consumes enrollment events off the request path and feeds
// the enrollment counters.
type StatsWorker struct {
	Ch  <-chan EnrollmentEvent
	Log *slog.Logger
}

func NewStatsWorker(ch <-chan EnrollmentEvent, log *slog.Logger) *StatsWorker {
	return &StatsWorker{Ch: ch, Log: log}
}

func (w *StatsWorker) Run(ctx context.Context) {
	w.Log.Info("stats worker started")
	for {
		select {
		case <-ctx.Done():
			w.Log.Info("stats worker stopped")
			return
		case ev := <-w.Ch:
			metrics.IncEnrollment()
			w.Log.Debug("enrollment recorded",
				"course_id", ev.CourseID,
				"student_id", ev.StudentID,
				"roster_size", ev.Count,
			)
		}
	}
}
