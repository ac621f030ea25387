package rain

import (
	"sort"

	"github.com/spencer-p/watering/pkg/timetricks"
)

// Reading is a single precipitation observation reported by one station.
type Reading struct {
	Date timetricks.Date
	// Precipitation in inches.
	Value float64
	// Station is informational only and is dropped by grouping.
	Station string
}

// Day holds every value reported for one date. A Day is only ever created
// holding a value, so it is never empty.
type Day struct {
	first float64
	rest  []float64
}

func newDay(v float64) *Day {
	return &Day{first: v}
}

func (d *Day) add(v float64) {
	d.rest = append(d.rest, v)
}

// Len is the number of values recorded for the day. It is always at least one.
func (d *Day) Len() int {
	return 1 + len(d.rest)
}

// Values returns a copy of the day's values in insertion order.
func (d *Day) Values() []float64 {
	return append([]float64{d.first}, d.rest...)
}

// Average is the arithmetic mean of the day's values.
func (d *Day) Average() float64 {
	sum := d.first
	for _, v := range d.rest {
		sum += v
	}
	return sum / float64(d.Len())
}

// Readings groups precipitation values by date. The zero value is not usable;
// make one with Group or NewReadings.
type Readings map[timetricks.Date]*Day

func NewReadings() Readings {
	return make(Readings)
}

// Group partitions a page of readings by date.
func Group(page []Reading) Readings {
	r := NewReadings()
	for _, reading := range page {
		r.Add(reading)
	}
	return r
}

// Add records one reading under its date.
func (r Readings) Add(reading Reading) {
	if d, ok := r[reading.Date]; ok {
		d.add(reading.Value)
		return
	}
	r[reading.Date] = newDay(reading.Value)
}

// Merge appends every value in other to the matching date in r. Merging the
// same readings twice records them twice.
func (r Readings) Merge(other Readings) {
	for date, day := range other {
		for _, v := range day.Values() {
			r.Add(Reading{Date: date, Value: v})
		}
	}
}

// Count is the total number of values across all dates.
func (r Readings) Count() int {
	n := 0
	for _, d := range r {
		n += d.Len()
	}
	return n
}

// Dates returns every date present, most recent first.
func (r Readings) Dates() []timetricks.Date {
	dates := make([]timetricks.Date, 0, len(r))
	for d := range r {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})
	return dates
}
