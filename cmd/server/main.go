package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/agenthands/socialhub/internal/cache"
	"github.com/agenthands/socialhub/internal/config"
	"github.com/agenthands/socialhub/internal/logger"
	"github.com/agenthands/socialhub/internal/server"
)

func main() {
	envErr := godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	cfg.ApplyEnv(os.Getenv)

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Info("no .env file found, using environment and config file")
	}

	ctx := context.Background()

	var (
		rdb   *redis.Client
		store cache.Cache = cache.Noop{}
	)
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, running without cache and rate limiting", zap.Error(err))
		} else {
			store = cache.NewRedis(rdb, "socialhub:")
			log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	svc, err := server.NewServices(ctx, cfg, store, log)
	if err != nil {
		log.Fatal("failed to initialize services", zap.Error(err))
	}
	srv := server.NewServer(cfg, svc, rdb, log)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.SetupRouter(),
	}

	go func() {
		log.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("llm_provider", cfg.LLM.Provider))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownWait())
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error("error closing redis", zap.Error(err))
		}
	}
	log.Info("server stopped")
}
