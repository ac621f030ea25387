package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spencer-p/watering/pkg/cache"
	"github.com/spencer-p/watering/pkg/reminder"
)

const streakKey = "streak"

// Checker computes the current dry streak.
type Checker interface {
	Check(ctx context.Context) (reminder.Report, error)
}

// Register mounts the daemon's routes on r. Streak reports are cached for ttl
// so that page reloads do not hammer NOAA.
func Register(r *mux.Router, checker Checker, ttl time.Duration, logger *slog.Logger) {
	r.Handle("/", makeIndexHandler()).Methods(http.MethodGet)
	r.Handle("/api/v1/streak", makeServeStreak(checker, cache.NewTimed[reminder.Report](ttl), logger)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler())
}

func makeServeStreak(checker Checker, reports *cache.Timed[reminder.Report], logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		report, ok := reports.Get(streakKey)
		if !ok {
			logger.Debug("no cached streak")

			var err error
			report, err = checker.Check(r.Context())
			if err != nil {
				w.WriteHeader(http.StatusBadGateway)
				fmt.Fprintf(w, "Failed to get data: %v", err)
				logger.Error("failed to check streak", "err", err)
				return
			}
			reports.Set(streakKey, report)
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.Error("failed to encode JSON result", "err", err)
		}
	})
}

func makeIndexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "text/plain")
		fmt.Fprintf(w, "ok\n")
	})
}
