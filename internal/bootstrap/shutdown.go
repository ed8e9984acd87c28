package bootstrap

import (
	"context"
	"log/slog"

	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/scheduler"
	"github.com/quennell/hearthstead/internal/server"
	"github.com/quennell/hearthstead/internal/worker"
)

// ShutdownComponents holds everything that needs graceful shutdown. Nil
// fields are skipped, so headless runs can reuse the same sequence.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the application in dependency order: the HTTP
// server first so no new requests arrive, then the scheduler so no tick is
// mid-flight, and the event publisher last so pending retries get flushed.
// Errors are logged but never halt the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
		slog.Info(LogMsgSchedulerStopped)
	}

	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error("Event publisher shutdown failed", "error", err)
		} else {
			slog.Info(LogMsgEventPublisherFlushed)
		}
	}

	slog.Info(LogMsgShutdownComplete)
}
