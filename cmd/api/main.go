package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cryptoswap-service/internal/application"
	"cryptoswap-service/internal/bootstrap"
	"cryptoswap-service/internal/config"
	httpserver "cryptoswap-service/internal/infrastructure/http"
	"cryptoswap-service/internal/infrastructure/logx"
	"cryptoswap-service/internal/infrastructure/metrics"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	if err := logx.SetLevel(cfg.LogLevel); err != nil {
		logger.Warn("bad LOG_LEVEL, keeping default", zap.String("level", cfg.LogLevel))
	}
	addr := ":" + cfg.Port

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, closeRedis, err := bootstrap.BuildRedis(ctx, cfg)
	if err != nil {
		logger.Fatal("bootstrap redis", zap.Error(err))
	}
	defer closeRedis()

	m := metrics.New()
	session := bootstrap.BuildSession(cfg, services, m)
	defer session.Stop()
	session.Start(ctx, bootstrap.BuildRateWorker(cfg, session, services, m))

	srv := httpserver.NewServer(session, application.NewCatalog(nil))
	srv.SetMetricsHandler(m.Handler())
	if services.Ping != nil {
		srv.SetReadyCheck(services.Ping)
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(srv),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutdown requested", zap.String("signal", sig.String()))
	case err := <-errc:
		logger.Error("listen", zap.Error(err))
	}

	shutdownCtx, shCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	session.Stop()
	logger.Info("server stopped")
}
