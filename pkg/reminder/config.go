package reminder

import (
	"log/slog"
	"net/http"

	"github.com/spencer-p/watering/pkg/config"
	"github.com/spencer-p/watering/pkg/noaa"
	"github.com/spencer-p/watering/pkg/notify"
	"github.com/spencer-p/watering/pkg/season"
)

// FromConfig wires a Runner to NOAA and the configured mailer. cfg should
// already be validated.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	notifier, err := notify.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Runner{
		Fetcher: &noaa.Client{
			BaseURL: cfg.APIURL,
			Token:   cfg.Token,
			HTTP:    &http.Client{Timeout: cfg.HTTPTimeout},
			Logger:  logger,
		},
		Notifier:   notifier,
		Logger:     logger,
		Email:      cfg.Email,
		LocationID: cfg.LocationID,
		HowOften:   cfg.HowOftenDays,
		Season:     season.Default,
	}, nil
}
