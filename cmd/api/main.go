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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	v1 "github.com/shahfahad-developer/legal-city-sub000/cmd/api/router/v1"
	"github.com/shahfahad-developer/legal-city-sub000/internal/config"
	"github.com/shahfahad-developer/legal-city-sub000/internal/identity"
	cacheAdapter "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/cache/adapter"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/database"
	queueAdapter "github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/queue/adapter"
	"github.com/shahfahad-developer/legal-city-sub000/internal/infrastructure/realtime"
	httpHandler "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/presentation/http"
	repoAdapter "github.com/shahfahad-developer/legal-city-sub000/internal/pkg/chat/persistence/repository/adapter"
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

	cache, err := cacheAdapter.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "err", err)
		os.Exit(1)
	}
	defer cache.Close()

	queueClient, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
	if err != nil {
		log.Error("failed to create queue client", "err", err)
		os.Exit(1)
	}
	defer queueClient.Close()

	registry := realtime.NewRegistry()

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, httpHandler.Deps{
		Repo:            repoAdapter.NewPgMessageRepository(pool),
		Queue:           queueClient,
		Cache:           cache,
		Registry:        registry,
		Auth:            identity.NewAuthenticator(cfg.JWTSecret),
		Log:             log,
		HistoryPageSize: cfg.HistoryPageSize,
	})

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("chat api listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()

	<-runCtx.Done()
	log.Info("shutting down")

	registry.Close()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "err", err)
	}
}
