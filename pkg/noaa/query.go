package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spencer-p/watering/pkg/metrics"
	"github.com/spencer-p/watering/pkg/rain"
	"github.com/spencer-p/watering/pkg/timetricks"
)

const (
	CDO_URL = "https://www.ncdc.noaa.gov/cdo-web/api/v2/data"

	// PageSize is the largest limit CDO accepts.
	PageSize = 1000

	// Offsets are 1-based.
	firstOffset = 1
	tokenHeader = "token"
)

// DataQuery selects one page of observations.
type DataQuery struct {
	Dataset  string
	DataType string
	Location string
	Window   timetricks.Window
	Offset   int
}

// Client talks to the CDO data endpoint. The zero value queries CDO_URL with
// http.DefaultClient, but a Token is always required by NOAA.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Logger  *slog.Logger
}

// Precipitation fetches every precipitation observation for location within
// the window and groups them by date. At least one request is always made, then
// pages are requested until the offset passes the result count NOAA reports.
func (c *Client) Precipitation(ctx context.Context, location string, w timetricks.Window) (rain.Readings, error) {
	query := DataQuery{
		Dataset:  DailySummaries,
		DataType: Precipitation,
		Location: location,
		Window:   w,
		Offset:   firstOffset,
	}

	readings := rain.NewReadings()
	for more := true; more; {
		page, err := c.GetPage(ctx, &query)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s at offset %d: %w", query.Location, query.Offset, err)
		}
		readings.Merge(rain.Group(page.Readings()))

		query.Offset += PageSize
		more = query.Offset <= page.Count()
	}

	c.logger().Debug("fetched precipitation",
		"location", location,
		"window", w.String(),
		"dates", len(readings),
		"values", readings.Count())
	return readings, nil
}

// GetPage performs a single request for the page described by q.
func (c *Client) GetPage(ctx context.Context, q *DataQuery) (*Page, error) {
	addr, err := q.url(c.baseURL())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(tokenHeader, c.Token)

	start := time.Now()
	resp, err := c.httpClient().Do(req)
	if err != nil {
		metrics.ObserveFetchLatency("error", time.Since(start).Seconds())
		return nil, err
	}
	defer resp.Body.Close()
	metrics.ObserveFetchLatency(strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %s: %q", resp.Status, body)
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("bad response body: %w", err)
	}

	c.logger().Debug("fetched page",
		"offset", q.Offset,
		"results", len(page.Results),
		"count", page.Count(),
		"elapsed", time.Since(start))
	return &page, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL == "" {
		return CDO_URL
	}
	return c.BaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (q *DataQuery) url(base string) (*url.URL, error) {
	addr, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	addr.RawQuery = q.build().Encode()
	return addr, nil
}

func (q *DataQuery) build() url.Values {
	vals := make(url.Values)
	vals.Add("datasetid", q.Dataset)
	vals.Add("datatypeid", q.DataType)
	vals.Add("locationid", q.Location)
	vals.Add("startdate", q.Window.From.String())
	vals.Add("enddate", q.Window.To.String())
	vals.Add("limit", strconv.Itoa(PageSize))
	vals.Add("offset", strconv.Itoa(q.Offset))
	vals.Add("units", "standard")
	return vals
}
