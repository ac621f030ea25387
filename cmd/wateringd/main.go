package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"

	"github.com/spencer-p/watering/pkg/config"
	"github.com/spencer-p/watering/pkg/handlers"
	"github.com/spencer-p/watering/pkg/logging"
	"github.com/spencer-p/watering/pkg/metrics"
	"github.com/spencer-p/watering/pkg/reminder"
	"github.com/spencer-p/watering/pkg/scheduler"
)

type Config struct {
	Port     string        `default:"8080"`
	Prefix   string        `default:"/"`
	At       string        `default:"07:00"`
	CacheTTL time.Duration `split_words:"true" default:"1h"`
}

func main() {
	var env Config
	if err := envconfig.Process("wateringd", &env); err != nil {
		fatalf("config error: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		fatalf("config error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatalf("config error: %v", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := logging.NewLevel(os.Stdout, level, cfg.Debug)

	runner, err := reminder.FromConfig(cfg, logger)
	if err != nil {
		fatalf("config error: %v", err)
	}

	sched := scheduler.New(func(ctx context.Context) error {
		report, err := runner.Run(ctx)
		if err == nil {
			logger.Info("daily check", "in_season", report.InSeason, "streak", report.Streak.Days, "sent", report.Sent)
		}
		return err
	}, env.At, time.Local, 2*cfg.HTTPTimeout+time.Minute, logger)
	if err := sched.Start(); err != nil {
		fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	r := mux.NewRouter().StrictSlash(true)
	s := r.PathPrefix(env.Prefix).Subrouter()
	handlers.Register(s, runner, env.CacheTTL, logger)

	srv := &http.Server{
		Handler:      metrics.LatencyHandler(r),
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: cfg.HTTPTimeout + 15*time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr, "prefix", env.Prefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatalf("server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "err", err)
	}
	logger.Info("shut down")
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
