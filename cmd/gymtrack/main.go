package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/gym-maintenance/internal/application"
	"github.com/example/gym-maintenance/internal/config"
	httptransport "github.com/example/gym-maintenance/internal/http"
	"github.com/example/gym-maintenance/internal/metrics"
	"github.com/example/gym-maintenance/internal/persistence/sqlite"
	"github.com/example/gym-maintenance/internal/photostore"
	"github.com/example/gym-maintenance/internal/report"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	photoStore, err := openPhotoStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open photo store", "error", err, "driver", cfg.PhotoDriver)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	equipmentRepo := sqlite.NewEquipmentRepository(pool)
	checklistRepo := sqlite.NewChecklistRepository(pool)
	logRepo := sqlite.NewLogRepository(pool)
	maintenanceRepo := sqlite.NewMaintenanceRepository(pool)
	staffRepo := sqlite.NewStaffRepository(pool)
	issueWriter := sqlite.NewIssueWriter(pool)

	equipmentService := application.NewEquipmentServiceWithLogger(equipmentRepo, logRepo, idGenerator, now, cfg.CheckInterval, logger)
	checklistService := application.NewChecklistServiceWithLogger(checklistRepo, logRepo, idGenerator, now, logger)
	logService := application.NewLogServiceWithLogger(logRepo, equipmentRepo, idGenerator, now, logger)
	maintenanceService := application.NewMaintenanceServiceWithLogger(maintenanceRepo, equipmentRepo, logRepo, idGenerator, now, logger)
	issueService := application.NewIssueServiceWithLogger(issueWriter, equipmentRepo, photoStore, idGenerator, now, logger)
	staffService := application.NewStaffServiceWithLogger(staffRepo, cfg.OrganizationID, idGenerator, now, logger)
	reportGenerator := report.NewGenerator(equipmentService, logService, now)

	if err := seedChecklist(ctx, checklistService, cfg.ChecklistTemplatePath, logger); err != nil {
		logger.Error("failed to seed daily checklist", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.New()

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Equipment:   httptransport.NewEquipmentHandler(equipmentService, photoStore, logger, appMetrics),
		Checklist:   httptransport.NewChecklistHandler(checklistService, logger, appMetrics),
		Log:         httptransport.NewLogHandler(logService, logger, appMetrics),
		Maintenance: httptransport.NewMaintenanceHandler(maintenanceService, logger, appMetrics),
		Issues:      httptransport.NewIssueHandler(issueService, logger, appMetrics),
		Staff:       httptransport.NewStaffHandler(staffService, logger, appMetrics),
		Reports:     httptransport.NewReportHandler(reportGenerator, logger, now),
		Metrics:     appMetrics.Handler(),
		Health:      pool,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.RequestMetrics(appMetrics),
		},
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
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("gymtrack API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

func openPhotoStore(ctx context.Context, cfg config.Config) (photostore.Store, error) {
	switch cfg.PhotoDriver {
	case config.PhotoDriverMemory:
		return photostore.NewMemoryStore(), nil
	case config.PhotoDriverS3:
		return photostore.NewS3Store(ctx, photostore.S3Config{
			Region:    cfg.PhotoS3Region,
			Bucket:    cfg.PhotoS3Bucket,
			Endpoint:  cfg.PhotoS3Endpoint,
			PathStyle: cfg.PhotoS3PathStyle,
		})
	default:
		return photostore.NewFSStore(cfg.PhotoDir)
	}
}

func seedChecklist(ctx context.Context, service *application.ChecklistService, templatePath string, logger *slog.Logger) error {
	template, err := config.LoadChecklistTemplate(templatePath)
	if err != nil {
		return err
	}
	inputs := make([]application.ChecklistItemInput, 0, len(template))
	for _, item := range template {
		inputs = append(inputs, application.ChecklistItemInput{
			Category: application.ChecklistCategory(item.Category),
			Task:     item.Task,
			Priority: application.Priority(item.Priority),
		})
	}
	seeded, err := service.Seed(ctx, inputs)
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("seeded daily checklist", "items", seeded)
	}
	return nil
}
