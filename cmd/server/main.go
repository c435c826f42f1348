package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	_ "lms-platform/docs"
	"lms-platform/internal/config"
	"lms-platform/internal/domain/course"
	"lms-platform/internal/domain/enrollment"
	"lms-platform/internal/domain/user"
	api "lms-platform/internal/http"
	"lms-platform/internal/logger"
	"lms-platform/internal/metrics"
	"lms-platform/internal/repository/memory"
	"lms-platform/internal/repository/sqlite"
	"lms-platform/internal/retry"
	"lms-platform/internal/worker"
)

// @title           LMS Platform API
// @version         1.0
// @description     Minimal learning management REST API
// @BasePath        /
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	api.SetLogger(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userRepo, courseRepo, enrollRepo, closeStore, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("store init", "driver", cfg.StoreDriver, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	userSvc := user.NewService(userRepo)
	courseSvc := course.NewService(courseRepo, userRepo)
	enrollSvc := enrollment.NewService(enrollRepo, courseRepo, userRepo)

	metrics.Register()

	enrollCh := make(chan worker.EnrollmentEvent, 100)
	statsWorker := worker.NewStatsWorker(enrollCh, log)
	go statsWorker.Run(ctx)

	router := api.NewRouter(userSvc, courseSvc, enrollSvc, enrollCh)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "err", err)
	}

	log.Info("server stopped")
}

// buildStore wires the configured repository backend. The default is
// the in-process memory store; STORE_DRIVER=sqlite selects the SQLite
// store, which itself defaults to an in-memory database.
func buildStore(ctx context.Context, cfg config.Config) (user.Repository, course.Repository, enrollment.Repository, func(), error) {
	if cfg.StoreDriver == "sqlite" {
		var store *sqlite.Store
		err := retry.Do(ctx, 3, 500*time.Millisecond, func() error {
			var openErr error
			store, openErr = sqlite.New(cfg.SQLiteDSN)
			return openErr
		})
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return sqlite.NewUserRepository(store),
			sqlite.NewCourseRepository(store),
			sqlite.NewEnrollmentRepository(store),
			func() { _ = store.Close() },
			nil
	}

	store := memory.NewStore()
	return store.Users(), store.Courses(), store, func() {}, nil
}
