package rain

import (
	"errors"
	"fmt"

	"github.com/spencer-p/watering/pkg/timetricks"
)

// Threshold is the daily average precipitation, in inches, that must be
// exceeded for a day to count as rainy.
const Threshold = 0.1

// ErrNoReadings means there is nothing to compute a streak from.
var ErrNoReadings = errors.New("no precipitation readings")

// Streak describes the run of dry days ending at the most recent date with data.
type Streak struct {
	// Days is the number of dates more recent than the last rainy date.
	Days int `json:"days"`
	// Rained is false when no date in the readings was rainy. Days then counts
	// every date observed and is only a lower bound on the real streak.
	Rained bool `json:"rained"`
	// LastRain is the most recent rainy date. Zero if Rained is false.
	LastRain timetricks.Date `json:"last_rain"`
	// Latest is the most recent date with any data.
	Latest timetricks.Date `json:"latest"`
}

func (s Streak) String() string {
	if !s.Rained {
		return fmt.Sprintf("at least %d dry days up to %s", s.Days, s.Latest)
	}
	return fmt.Sprintf("%d dry days since %s", s.Days, s.LastRain)
}

// Analyze walks dates from the most recent backwards and counts days until the
// first one whose average precipitation is strictly above threshold.
func Analyze(r Readings, threshold float64) (Streak, error) {
	dates := r.Dates()
	if len(dates) == 0 {
		return Streak{}, ErrNoReadings
	}

	for i, date := range dates {
		if r[date].Average() > threshold {
			return Streak{
				Days:     i,
				Rained:   true,
				LastRain: date,
				Latest:   dates[0],
			}, nil
		}
	}

	return Streak{
		Days:   len(dates),
		Rained: false,
		Latest: dates[0],
	}, nil
}
