package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/example/resort-backoffice/internal/application"
	"github.com/example/resort-backoffice/internal/config"
	httptransport "github.com/example/resort-backoffice/internal/http"
	"github.com/example/resort-backoffice/internal/logging"
	"github.com/example/resort-backoffice/internal/persistence"
	"github.com/example/resort-backoffice/internal/persistence/memory"
	"github.com/example/resort-backoffice/internal/persistence/sqlite"
)

func main() {
	// A missing .env is fine; the environment may be set by the runtime.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shiftRepo, staffRepo, cleanup, err := openStorage(cfg, logger)
	if err != nil {
		logger.Error("failed to open storage", zap.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	idGenerator := uuid.NewString
	now := time.Now

	shiftService := application.NewShiftService(
		newShiftRepositoryAdapter(shiftRepo),
		newStaffDirectoryAdapter(staffRepo),
		idGenerator,
		now,
	)
	staffService := application.NewStaffService(newStaffDirectoryAdapter(staffRepo))

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Shifts:         httptransport.NewShiftHandler(shiftService, logger),
		Staff:          httptransport.NewStaffHandler(staffService, logger),
		Modules:        cfg,
		Logger:         logger,
		RateLimit:      cfg.RateLimit,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", zap.Error(err))
		}
	}()

	logger.Info("back-office API listening", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", zap.Error(err))
		os.Exit(1)
	}
}

// openStorage selects SQLite when a DSN is configured and the in-memory store
// otherwise. The returned cleanup closes whichever backend was opened.
func openStorage(cfg config.Config, logger *zap.Logger) (persistence.ShiftRepository, persistence.StaffRepository, func(), error) {
	if cfg.SQLiteDSN == "" {
		logger.Info("no SQLite DSN configured, using in-memory storage")
		store := memory.NewStore()
		return store, store, func() {}, nil
	}

	db, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close storage", zap.Error(err))
		}
	}
	return sqlite.NewShiftRepository(db), sqlite.NewStaffRepository(db), cleanup, nil
}
