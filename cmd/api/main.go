package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/lactec/intranet/internal/api/http"
	"github.com/lactec/intranet/internal/app"
	"github.com/lactec/intranet/internal/config"
	"github.com/lactec/intranet/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open stores", zap.Error(err))
	}
	defer stores.Close()

	intranet, err := app.New(cfg, logger, stores)
	if err != nil {
		logger.Fatal("failed to wire application", zap.Error(err))
	}
	if err := intranet.Start(ctx); err != nil {
		logger.Fatal("failed to start application", zap.Error(err))
	}

	server := httptransport.NewServer(intranet)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("portal_url", cfg.App.PortalURL))
		if err := server.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = server.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
