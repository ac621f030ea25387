// Package season decides whether today falls inside the watering season.
package season

import (
	"time"

	"github.com/spencer-p/watering/pkg/timetricks"
)

// Boundary is a month and day that recurs every year.
type Boundary struct {
	Month time.Month
	Day   int
}

// In returns the boundary as a date in the given year.
func (b Boundary) In(year int) timetricks.Date {
	return timetricks.Date{Year: year, Month: b.Month, Day: b.Day}
}

// Season is a yearly range of days. Both boundaries are exclusive.
type Season struct {
	Start, End Boundary
}

// Default is the watering season: after May 1st and before November 1st.
var Default = Season{
	Start: Boundary{time.May, 1},
	End:   Boundary{time.November, 1},
}

// Active reports whether today is strictly between the start and end of the
// season in today's year.
func (s Season) Active(today timetricks.Date) bool {
	return today.After(s.Start.In(today.Year)) && today.Before(s.End.In(today.Year))
}
