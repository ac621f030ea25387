// Command watering checks how long it has been since it last rained and emails
// a reminder to water every few dry days. Run it once a day from cron.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spencer-p/watering/pkg/config"
	"github.com/spencer-p/watering/pkg/logging"
	"github.com/spencer-p/watering/pkg/metrics"
	"github.com/spencer-p/watering/pkg/reminder"
)

const jobName = "watering"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatalf("config error: %v", err)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fatalf("config error: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.Debug)

	runner, err := reminder.FromConfig(cfg, logger)
	if err != nil {
		fatalf("config error: %v", err)
	}

	report, err := runner.Run(context.Background())

	if cfg.Pushgateway != "" && report.InSeason {
		if err := metrics.Push(cfg.Pushgateway, jobName); err != nil {
			logger.Warn("failed to push metrics", "gateway", cfg.Pushgateway, "err", err)
		}
	}

	if err != nil {
		fatalf("%v", err)
	}
	logger.Debug("done", "streak", report.Streak.Days, "due", report.Due, "sent", report.Sent)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
