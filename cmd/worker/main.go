package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shahfahad-developer/legal-city-sub000/internal/config"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/database"
	queueAdapter "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/queue/adapter"
	"github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/application/task"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found or could not be loaded", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	srv, err := queueAdapter.NewAsynqServer(cfg.RedisURL, cfg.QueueConcurrency, cfg.Queues(), log)
	if err != nil {
		log.Error("failed to create queue server", "err", err)
		os.Exit(1)
	}

	task.RegisterSendMessageTask(srv, pool, log)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("chat worker running", "concurrency", cfg.QueueConcurrency)
	if err := srv.Run(runCtx); err != nil {
		log.Error("queue server error", "err", err)
		os.Exit(1)
	}
}
