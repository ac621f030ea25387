package noaa

import (
	"fmt"

	"github.com/spencer-p/watering/pkg/rain"
	"github.com/spencer-p/watering/pkg/timetricks"
)

// Dataset and data type identifiers understood by CDO.
const (
	DailySummaries = "GHCND"
	Precipitation  = "PRCP"
)

// Result is a single observation returned by the data endpoint.
type Result struct {
	// Day of the observation. NOAA sends "2006-01-02T00:00:00".
	Date timetricks.Date `json:"date"`
	// Datatype, e.g. PRCP.
	DataType string `json:"datatype"`
	// Station identifier, e.g. "GHCND:USC00215435".
	Station string `json:"station"`
	// Comma separated measurement, quality and source flags.
	Attributes string `json:"attributes"`

	Value float64 `json:"value"`
}

// ResultSet describes where a page sits in the full result.
type ResultSet struct {
	Offset int `json:"offset"`
	Count  int `json:"count"`
	Limit  int `json:"limit"`
}

// Page is the data type returned by the CDO API. An empty query returns "{}",
// which decodes to a zero Count and no Results.
type Page struct {
	Metadata struct {
		ResultSet ResultSet `json:"resultset"`
	} `json:"metadata"`
	Results []Result `json:"results"`
}

// Count is the total number of results across all pages.
func (p *Page) Count() int {
	return p.Metadata.ResultSet.Count
}

// Readings converts the page's results to precipitation readings.
func (p *Page) Readings() []rain.Reading {
	out := make([]rain.Reading, 0, len(p.Results))
	for _, r := range p.Results {
		out = append(out, rain.Reading{
			Date:    r.Date,
			Value:   r.Value,
			Station: r.Station,
		})
	}
	return out
}

func (r Result) String() string {
	return fmt.Sprintf("{date: %s, station: %s, %s: %f}", r.Date, r.Station, r.DataType, r.Value)
}
