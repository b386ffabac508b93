// Command worker consumes reservation.created events and appends each
// reservation to a log file.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/circa/reservations/internal/config"
	"github.com/circa/reservations/internal/logging"
	"github.com/circa/reservations/internal/queue"
)

func main() {
	cfg, err := config.LoadWorkerConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := &queue.Consumer{
		URL:    cfg.RabbitMQURL,
		Queue:  cfg.EventsQueue,
		LogDir: cfg.LogDir,
		Logger: logger,
	}
	slog.Info("Worker starting", "queue", cfg.EventsQueue, "log_dir", cfg.LogDir)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Worker stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("Worker stopped")
}
