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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"chembldb/internal/api"
	"chembldb/internal/chembl"
	"chembldb/internal/config"
	"chembldb/internal/observability"
	"chembldb/internal/watch"
)

const reloadDebounce = 500 * time.Millisecond

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	if cfg.Level != "" {
		lvl, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging.level: %w", err)
		}
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to yaml config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := buildLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	metrics := observability.NewCollector("chembldb")

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	h := api.NewHandler(nil, log, metrics)
	h.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	reload := func() error {
		t0 := time.Now()
		store, err := chembl.Load(cfg.Dataset.Path)
		if err != nil {
			metrics.ReloadFailures.Inc()
			return err
		}
		h.SetStore(store)
		st := store.Stats()
		metrics.ObserveLoad(st)
		log.Info("compound dump loaded",
			zap.String("path", cfg.Dataset.Path),
			zap.Int("records", store.Len()),
			zap.Int("skipped_lines", st.SkippedLines),
			zap.Int("duplicate_ids", st.DuplicateIDs),
			zap.Duration("took", time.Since(t0)))
		return nil
	}

	// The server comes up immediately; the API answers 503 until the
	// initial load lands.
	go func() {
		if err := reload(); err != nil {
			log.Error("initial load failed", zap.Error(err))
		}
	}()

	var watcher *watch.Watcher
	if cfg.Dataset.Watch {
		watcher, err = watch.New(cfg.Dataset.Path, reloadDebounce, log, reload)
		if err != nil {
			log.Error("dataset watcher unavailable", zap.Error(err))
			watcher = nil
		} else {
			watcher.Start()
		}
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if watcher != nil {
		watcher.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
}
