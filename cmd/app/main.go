package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quennell/hearthstead/internal/bootstrap"
	"github.com/quennell/hearthstead/internal/config"
	"github.com/quennell/hearthstead/internal/database"
	"github.com/quennell/hearthstead/internal/database/postgres"
	"github.com/quennell/hearthstead/internal/scheduler"
	"github.com/quennell/hearthstead/internal/server"
	"github.com/quennell/hearthstead/internal/worker"
)

const (
	dbMaxConns       = 10
	dbMaxIdle        = 5 * time.Minute
	dbMaxLife        = 30 * time.Minute
	shutdownTimeout  = 15 * time.Second
	snapshotsToKeep  = 5
	schedulerWorkers = 1 // ticks and snapshots must not overlap
	schedulerQueue   = 4
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.ApplySchema(ctx, dbPool); err != nil {
		slog.Error("Schema setup failed", "error", err)
		os.Exit(1)
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system setup failed", "error", err)
		os.Exit(1)
	}

	snapshots := postgres.NewSnapshotRepository(dbPool)
	archive := postgres.NewEventArchiveRepository(dbPool)

	bootstrap.RegisterMetricsCollector(bus)
	bootstrap.RegisterEventArchiver(bus, archive)

	comps, err := bootstrap.BuildWorld(cfg, bus, publisher)
	if err != nil {
		slog.Error("World assembly failed", "error", err)
		os.Exit(1)
	}

	// Resume from the latest autosave when one exists; otherwise found a
	// fresh settlement.
	if rec, err := snapshots.GetLatestSnapshot(ctx, worker.AutosaveLabel); err == nil {
		comps.World.Restore(rec.State)
		slog.Info("World restored from autosave", "day", rec.Day, "snapshot_id", rec.ID)
	} else if err := bootstrap.SeedWorld(ctx, comps); err != nil {
		slog.Error("World seeding failed", "error", err)
		os.Exit(1)
	}

	pool := worker.NewPool(schedulerWorkers, schedulerQueue)
	pool.Start()
	sched := scheduler.New(pool)
	if cfg.TickIntervalSeconds > 0 {
		tickInterval := time.Duration(cfg.TickIntervalSeconds) * time.Second
		sched.Schedule(tickInterval, worker.NewTickJob(comps.World))
		sched.Schedule(tickInterval*time.Duration(cfg.SnapshotIntervalDays),
			worker.NewSnapshotJob(comps.World, snapshots, snapshotsToKeep))
		slog.Info("Scheduler started",
			"tick_interval", tickInterval,
			"snapshot_interval_days", cfg.SnapshotIntervalDays)
	} else {
		slog.Info("Automatic tick disabled, advance days via the admin API")
	}

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, server.Deps{
		DBPool:       dbPool,
		World:        comps.World,
		Roster:       comps.Roster,
		Jobs:         comps.Jobs,
		Construction: comps.Construction,
		Modifiers:    comps.Modifiers,
		Snapshots:    snapshots,
		Archive:      archive,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Final autosave so a clean shutdown never loses progress.
	if _, err := snapshots.SaveSnapshot(shutdownCtx, worker.AutosaveLabel, comps.World.Snapshot()); err != nil {
		slog.Error("Final snapshot failed", "error", err)
	}

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         pool,
		ResilientPublisher: publisher,
	})
}
