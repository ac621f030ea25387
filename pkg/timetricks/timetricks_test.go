package timetricks

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func ExampleLookback() {
	today := Date{2023, time.July, 4}
	w := Lookback(today, 30)
	fmt.Println(w.From, w.To)
	fmt.Println(w.Contains(today), w.Contains(today.AddDays(-30)), w.Contains(today.AddDays(-31)))
	// Output:
	// 2023-06-04 2023-07-04
	// true true false
}

func TestParseDate(t *testing.T) {
	table := []struct {
		input   string
		want    Date
		wantErr bool
	}{{
		input: "2023-06-12T00:00:00",
		want:  Date{2023, time.June, 12},
	}, {
		input: "2024-02-29",
		want:  Date{2024, time.February, 29},
	}, {
		input:   "2023-6-1",
		wantErr: true,
	}, {
		input:   "yesterday!",
		wantErr: true,
	}}

	for _, test := range table {
		t.Run(test.input, func(t *testing.T) {
			got, err := ParseDate(test.input)
			if test.wantErr {
				if err == nil {
					t.Errorf("wanted error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("incorrect parse (-want,+got): %s", diff)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	table := []struct {
		start Date
		n     int
		want  Date
	}{
		{Date{2023, time.March, 1}, -1, Date{2023, time.February, 28}},
		{Date{2024, time.March, 1}, -1, Date{2024, time.February, 29}},
		{Date{2023, time.December, 31}, 1, Date{2024, time.January, 1}},
		{Date{2023, time.May, 20}, -30, Date{2023, time.April, 20}},
		{Date{2023, time.May, 20}, 0, Date{2023, time.May, 20}},
	}

	for _, tc := range table {
		t.Run(fmt.Sprintf("%s%+d", tc.start, tc.n), func(t *testing.T) {
			got := tc.start.AddDays(tc.n)
			if got != tc.want {
				t.Errorf("got %s, wanted %s", got, tc.want)
			}
			if back := tc.start.DaysUntil(got); back != tc.n {
				t.Errorf("DaysUntil = %d, wanted %d", back, tc.n)
			}
		})
	}
}

func TestDateOrdering(t *testing.T) {
	a := Date{2023, time.June, 30}
	b := Date{2023, time.July, 1}
	if !a.Before(b) || a.After(b) {
		t.Errorf("%s should come before %s", a, b)
	}
	if a.Before(a) || a.After(a) {
		t.Errorf("%s should not be strictly ordered against itself", a)
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	// 02:00 UTC on the 2nd is still the 1st in Los Angeles.
	la := time.FixedZone("PDT", -7*60*60)
	instant := time.Date(2023, time.August, 2, 2, 0, 0, 0, time.UTC)

	if got, want := DateOf(instant), (Date{2023, time.August, 2}); got != want {
		t.Errorf("UTC: got %s, wanted %s", got, want)
	}
	if got, want := DateOf(instant.In(la)), (Date{2023, time.August, 1}); got != want {
		t.Errorf("PDT: got %s, wanted %s", got, want)
	}
	if SameDay(instant, instant.In(la)) {
		t.Errorf("instants on different local days reported as same day")
	}
	if got := TrimClock(instant.In(la)); got.Hour() != 0 || got.Day() != 1 {
		t.Errorf("TrimClock = %v, wanted local midnight on the 1st", got)
	}
}

func TestWindowJSON(t *testing.T) {
	w := Lookback(Date{2023, time.September, 15}, 30)
	blob, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	want := `{"from":"2023-08-16","to":"2023-09-15"}`
	if diff := cmp.Diff(want, string(blob)); diff != "" {
		t.Errorf("incorrect encoding (-want,+got): %s", diff)
	}

	var got Window
	if err := json.Unmarshal(blob, &got); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got != w {
		t.Errorf("decoded %v, wanted %v", got, w)
	}
}

func TestZeroDateJSON(t *testing.T) {
	blob, err := json.Marshal(Window{})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if want := `{"from":"","to":""}`; string(blob) != want {
		t.Errorf("got %s, wanted %s", blob, want)
	}

	got := Window{From: Date{2023, time.May, 2}}
	if err := json.Unmarshal(blob, &got); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if !got.From.IsZero() || !got.To.IsZero() {
		t.Errorf("decoded %v, wanted zero window", got)
	}
}
