// Command imagined serves the DaVinci Studio generation API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/davinci-studio/imagine/client"
	"github.com/davinci-studio/imagine/common"
	"github.com/davinci-studio/imagine/config"
	"github.com/davinci-studio/imagine/internal/history"
	"github.com/davinci-studio/imagine/internal/logging"
	"github.com/davinci-studio/imagine/internal/metrics"
	"github.com/davinci-studio/imagine/providers/freepik"
	"github.com/davinci-studio/imagine/providers/gemini"
	"github.com/davinci-studio/imagine/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "imagined:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	// Credentials commonly live in a local .env during development.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// The atomic level is shared with the library logger so the configured
	// log_level steers every core, zap fields and Logger interface alike.
	atom := zap.NewAtomicLevelAt(zap.InfoLevel)
	zcfg := zap.NewProductionConfig()
	zcfg.Level = atom
	zlog, err := zcfg.Build()
	if err != nil {
		return err
	}
	defer zlog.Sync()

	libLogger := logging.NewZapLogger(zlog, &atom)
	libLogger.SetLevel(common.ParseLogLevel(cfg.LogLevel))

	registry := client.NewRegistry(libLogger)
	registry.Register(gemini.New())
	registry.Register(freepik.New())

	opts := []client.Option{
		client.WithLogger(libLogger),
		client.WithTimeout(cfg.Generation.Timeout.Std()),
		client.WithMaxConcurrent(cfg.Generation.MaxConcurrent),
	}
	if cfg.Generation.RateInterval > 0 {
		opts = append(opts, client.WithRateLimit(cfg.Generation.RateInterval.Std()))
	}
	cli := client.New(registry, opts...)

	srv := server.New(
		cli,
		history.NewStore(cfg.History.TTL.Std(), cfg.History.Sweep.Std()),
		metrics.New(),
		zlog,
	)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		zlog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}
