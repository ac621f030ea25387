// Package reminder ties a day's check together: it gates on the watering
// season, fetches recent precipitation, computes the dry streak and, every so
// many dry days, emails a reminder to water.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spencer-p/watering/pkg/metrics"
	"github.com/spencer-p/watering/pkg/rain"
	"github.com/spencer-p/watering/pkg/season"
	"github.com/spencer-p/watering/pkg/timetricks"
)

const (
	Subject = "Watering Reminder"

	// LookbackDays is how far back precipitation history is fetched.
	LookbackDays = 30
	// DefaultHowOften is the number of dry days between reminders.
	DefaultHowOften = 5
)

// ErrDispatch wraps any failure to hand a reminder to the Notifier.
var ErrDispatch = errors.New("failed to send reminder")

// Fetcher retrieves precipitation readings for a location.
type Fetcher interface {
	Precipitation(ctx context.Context, location string, w timetricks.Window) (rain.Readings, error)
}

// Notifier delivers a message to a recipient.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}

// Due reports whether a streak of dry days calls for a reminder: on every
// positive multiple of howOften, never on day zero.
func Due(streak, howOften int) bool {
	return streak > 0 && streak%howOften == 0
}

// Body is the reminder text for a streak.
func Body(streak int) string {
	return fmt.Sprintf("It hasn't rained in %d days, you need to water!", streak)
}

// Report is the outcome of one check.
type Report struct {
	Today    timetricks.Date   `json:"today"`
	InSeason bool              `json:"in_season"`
	Window   timetricks.Window `json:"window"`
	Streak   rain.Streak       `json:"streak"`
	Due      bool              `json:"due"`
	Sent     bool              `json:"sent"`
}

// Runner performs the daily check for one location and recipient.
type Runner struct {
	Fetcher  Fetcher
	Notifier Notifier
	Logger   *slog.Logger

	Email      string
	LocationID string
	HowOften   int
	Season     season.Season

	// Now defaults to time.Now.
	Now func() time.Time
}

// Check computes the current streak without sending anything. Outside the
// watering season it returns immediately without touching the network.
func (r *Runner) Check(ctx context.Context) (Report, error) {
	log := r.logger()
	report := Report{Today: timetricks.Today(r.now())}

	report.InSeason = r.season().Active(report.Today)
	if !report.InSeason {
		log.Debug("not watering season", "today", report.Today)
		return report, nil
	}

	report.Window = timetricks.Lookback(report.Today, LookbackDays)
	log.Debug("checking precipitation", "location", r.LocationID, "window", report.Window.String())

	readings, err := r.Fetcher.Precipitation(ctx, r.LocationID, report.Window)
	if err != nil {
		return report, err
	}

	streak, err := rain.Analyze(readings, rain.Threshold)
	if err != nil {
		return report, fmt.Errorf("%s %s: %w", r.LocationID, report.Window, err)
	}
	report.Streak = streak
	metrics.SetDryStreak(streak.Days)

	if !streak.Rained {
		log.Warn("no rain above threshold anywhere in window; counting every day observed",
			"days", streak.Days, "window", report.Window.String())
	}
	log.Debug("computed dry streak", "streak", streak.String())

	report.Due = Due(streak.Days, r.howOften())
	return report, nil
}

// Run checks the streak and sends exactly one reminder when one is due.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	report, err := r.Check(ctx)
	if err != nil {
		return report, err
	}
	if !report.Due {
		r.logger().Debug("no reminder due", "streak", report.Streak.Days, "in_season", report.InSeason)
		return report, nil
	}

	body := Body(report.Streak.Days)
	if err := r.Notifier.Notify(ctx, r.Email, Subject, body); err != nil {
		return report, fmt.Errorf("%w to %s: %v", ErrDispatch, r.Email, err)
	}
	report.Sent = true
	metrics.ReminderSent()
	r.logger().Debug("sent reminder", "to", r.Email, "body", body)
	return report, nil
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) season() season.Season {
	if r.Season == (season.Season{}) {
		return season.Default
	}
	return r.Season
}

func (r *Runner) howOften() int {
	if r.HowOften <= 0 {
		return DefaultHowOften
	}
	return r.HowOften
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
