package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/config"
	"github.com/mamadbah2/phonebooks/internal/repository/memory"
	"github.com/mamadbah2/phonebooks/internal/repository/mongodb"
	"github.com/mamadbah2/phonebooks/internal/repository/sheets"
	"github.com/mamadbah2/phonebooks/internal/scheduler"
	"github.com/mamadbah2/phonebooks/internal/server/handlers"
	"github.com/mamadbah2/phonebooks/internal/server/router"
	recordssvc "github.com/mamadbah2/phonebooks/internal/service/records"
	reportingsvc "github.com/mamadbah2/phonebooks/internal/service/reporting"
	"github.com/mamadbah2/phonebooks/pkg/logger"
)

// store is what the services need from the persistence layer.
type store interface {
	recordssvc.Repository
	reportingsvc.SummaryStore
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	loc, err := cfg.Location()
	if err != nil {
		baseLogger.Fatal("invalid timezone", zap.Error(err))
	}
	time.Local = loc

	repo, closeRepo := openStore(cfg, baseLogger)
	defer closeRepo()

	var exporter reportingsvc.SummaryExporter
	if cfg.Sheets.Enabled() {
		summarySheet, err := sheets.NewSummarySheet(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		exporter = summarySheet
		baseLogger.Info("google sheets export enabled", zap.String("range", cfg.Sheets.SummaryRange))
	}

	reportingSvc := reportingsvc.NewService(repo, repo, exporter, baseLogger.Named("svc.reporting"))
	recordsSvc := recordssvc.NewService(repo, baseLogger.Named("svc.records"))

	recordsHandler := handlers.NewRecordsHandler(recordsSvc, baseLogger.Named("handlers.records"))
	engine := router.New(recordsHandler, router.Options{AllowedOrigins: cfg.Server.AllowedOrigins}, baseLogger.Named("router"))

	if cfg.Reporting.Enabled {
		sched := scheduler.NewScheduler(cfg.Reporting.CronSchedule, loc, reportingSvc, baseLogger.Named("scheduler"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(cfg *config.Config, log *zap.Logger) (store, func()) {
	if cfg.Store.Driver == config.DriverMemory {
		log.Warn("using in-memory store, records are lost on restart")
		return memory.NewRepository(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, log.Named("repo.mongodb"))
	if err != nil {
		log.Fatal("failed to init mongodb repository", zap.Error(err))
	}

	return mongoRepo, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoRepo.Close(closeCtx); err != nil {
			log.Error("failed to close mongodb connection", zap.Error(err))
		}
	}
}
