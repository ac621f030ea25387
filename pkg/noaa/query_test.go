package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/spencer-p/watering/pkg/timetricks"
)

var testWindow = timetricks.Lookback(timetricks.Date{Year: 2023, Month: time.July, Day: 31}, 30)

func TestQueryURL(t *testing.T) {
	in := DataQuery{
		Dataset:  DailySummaries,
		DataType: Precipitation,
		Location: "CITY:US270013",
		Window:   testWindow,
		Offset:   1001,
	}
	want := "https://www.ncdc.noaa.gov/cdo-web/api/v2/data?datasetid=GHCND&datatypeid=PRCP&enddate=2023-07-31&limit=1000&locationid=CITY%3AUS270013&offset=1001&startdate=2023-07-01&units=standard"
	got, err := in.url(CDO_URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want != got.String() {
		t.Errorf("got  %q", got)
		t.Errorf("want %q", want)
	}
}

func TestParsePage(t *testing.T) {
	input := `{
		"metadata": {"resultset": {"offset": 1, "count": 2, "limit": 1000}},
		"results": [
			{"date": "2023-07-30T00:00:00", "datatype": "PRCP", "station": "GHCND:USC00214884", "attributes": ",,7,0700", "value": 0.27},
			{"date": "2023-07-31T00:00:00", "datatype": "PRCP", "station": "GHCND:US1MNHN0001", "attributes": ",,N,", "value": 0}
		]
	}`

	var page Page
	if err := json.Unmarshal([]byte(input), &page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.Count() != 2 {
		t.Errorf("Count() = %d, wanted 2", page.Count())
	}
	got := make([]string, 0, len(page.Results))
	for _, r := range page.Results {
		got = append(got, r.String())
	}
	want := []string{
		"{date: 2023-07-30, station: GHCND:USC00214884, PRCP: 0.270000}",
		"{date: 2023-07-31, station: GHCND:US1MNHN0001, PRCP: 0.000000}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("incorrect parse (-want,+got):\n%s", diff)
	}
}

func TestParseEmptyPage(t *testing.T) {
	var page Page
	if err := json.Unmarshal([]byte(`{}`), &page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Count() != 0 || len(page.Readings()) != 0 {
		t.Errorf("empty page decoded as %+v", page)
	}
}

// fakeCDO serves total synthetic results spread across the days of testWindow
// and records every offset requested.
type fakeCDO struct {
	t       *testing.T
	total   int
	offsets []int
}

func (f *fakeCDO) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if got := r.Header.Get("token"); got != "secret" {
		f.t.Errorf("token header = %q, wanted %q", got, "secret")
	}
	q := r.URL.Query()
	for key, want := range map[string]string{
		"datasetid":  "GHCND",
		"datatypeid": "PRCP",
		"locationid": "CITY:US270013",
		"startdate":  "2023-07-01",
		"enddate":    "2023-07-31",
		"limit":      "1000",
		"units":      "standard",
	} {
		if got := q.Get(key); got != want {
			f.t.Errorf("query %s = %q, wanted %q", key, got, want)
		}
	}

	offset, err := strconv.Atoi(q.Get("offset"))
	if err != nil {
		f.t.Errorf("bad offset %q", q.Get("offset"))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.offsets = append(f.offsets, offset)

	if f.total == 0 {
		fmt.Fprint(w, `{}`)
		return
	}

	var page Page
	page.Metadata.ResultSet = ResultSet{Offset: offset, Count: f.total, Limit: PageSize}
	for i := offset - 1; i < f.total && i < offset-1+PageSize; i++ {
		page.Results = append(page.Results, f.result(i))
	}
	json.NewEncoder(w).Encode(page)
}

func (f *fakeCDO) result(i int) Result {
	return Result{
		Date:     testWindow.From.AddDays(i % 31),
		DataType: Precipitation,
		Station:  fmt.Sprintf("GHCND:S%04d", i/31),
		Value:    float64(i%7) / 10,
	}
}

func TestPrecipitationPagination(t *testing.T) {
	table := []struct {
		total     int
		wantPages []int
	}{
		{total: 0, wantPages: []int{1}},
		{total: 12, wantPages: []int{1}},
		{total: 1000, wantPages: []int{1}},
		{total: 1001, wantPages: []int{1, 1001}},
		{total: 2500, wantPages: []int{1, 1001, 2001}},
		{total: 3000, wantPages: []int{1, 1001, 2001}},
	}

	for _, tc := range table {
		t.Run(strconv.Itoa(tc.total), func(t *testing.T) {
			fake := &fakeCDO{t: t, total: tc.total}
			srv := httptest.NewServer(fake)
			defer srv.Close()

			c := &Client{BaseURL: srv.URL, Token: "secret", HTTP: srv.Client()}
			got, err := c.Precipitation(context.Background(), "CITY:US270013", testWindow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if diff := cmp.Diff(tc.wantPages, fake.offsets); diff != "" {
				t.Errorf("incorrect requests (-want,+got): %s", diff)
			}
			if got.Count() != tc.total {
				t.Errorf("got %d values, wanted %d", got.Count(), tc.total)
			}

			// Every date should hold exactly the values assigned to it.
			want := make(map[timetricks.Date]int)
			for i := 0; i < tc.total; i++ {
				want[fake.result(i).Date]++
			}
			if len(got) != len(want) {
				t.Errorf("got %d dates, wanted %d", len(got), len(want))
			}
			for date, n := range want {
				if day, ok := got[date]; !ok || day.Len() != n {
					t.Errorf("date %s: wanted %d values, got %v", date, n, day)
				}
			}
		})
	}
}

func TestPrecipitationErrors(t *testing.T) {
	table := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{{
		name: "bad status",
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"status":"400","message":"Token parameter is required."}`)
		},
		wantErr: "unexpected status 400",
	}, {
		name: "malformed json",
		handler: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"metadata": {`)
		},
		wantErr: "bad response body",
	}, {
		name: "malformed date",
		handler: func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"metadata":{"resultset":{"count":1}},"results":[{"date":"July 4th","value":0.1}]}`)
		},
		wantErr: "bad response body",
	}}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			c := &Client{BaseURL: srv.URL, Token: "secret", HTTP: srv.Client()}
			_, err := c.Precipitation(context.Background(), "CITY:US270013", testWindow)
			if err == nil {
				t.Fatalf("wanted error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("got error %q, wanted it to contain %q", err, tc.wantErr)
			}
		})
	}
}
