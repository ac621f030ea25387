package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const subsystem = "watering"

var (
	requestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "request_latency",
			Subsystem: subsystem,
			Help:      "HTTP request latencies in seconds.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"verb", "path", "code"},
	)

	fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:      "fetch_latency",
			Subsystem: subsystem,
			Help:      "Latency of NOAA page requests in seconds.",
			Buckets:   []float64{0.1, 0.2, 0.4, 0.8, 1.0, 2.0, 4.0, 8.0, 16.0, 32.0},
		},
		[]string{"code"},
	)

	fetchPages = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:      "fetch_pages_total",
			Subsystem: subsystem,
			Help:      "Number of NOAA pages requested.",
		},
	)

	dryStreak = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name:      "dry_streak_days",
			Subsystem: subsystem,
			Help:      "Days without rain as of the last check.",
		},
	)

	remindersSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name:      "reminders_sent_total",
			Subsystem: subsystem,
			Help:      "Number of watering reminders dispatched.",
		},
	)

	collectors = []prometheus.Collector{
		requestLatency,
		fetchLatency,
		fetchPages,
		dryStreak,
		remindersSent,
	}
)

func init() {
	prometheus.MustRegister(collectors...)
}

func ObserveRequestLatency(verb, path, code string, latency float64) {
	requestLatency.With(prometheus.Labels{
		"code": code,
		"verb": verb,
		"path": path,
	}).Observe(latency)
}

// ObserveFetchLatency records one page request to NOAA.
func ObserveFetchLatency(code string, latency float64) {
	fetchPages.Inc()
	fetchLatency.With(prometheus.Labels{"code": code}).Observe(latency)
}

func SetDryStreak(days int) {
	dryStreak.Set(float64(days))
}

func ReminderSent() {
	remindersSent.Inc()
}

// Push sends the run's metrics to a Prometheus Pushgateway under the given job
// name. One-shot runs exit before they could be scraped.
func Push(gatewayURL, job string) error {
	p := push.New(gatewayURL, job)
	for _, c := range collectors {
		p = p.Collector(c)
	}
	return p.Push()
}

// statusRecorder remembers the status code written through it.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func LatencyHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t := time.Now()
		verb := r.Method
		path := ""
		if r.URL != nil {
			path = r.URL.Path
		}
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

		// Defer metric observing. Any panics in next are reported as 500 errors
		// and then re-thrown.
		defer func() {
			if err := recover(); err != nil {
				ObserveRequestLatency(verb, path, "500", time.Since(t).Seconds())
				panic(err)
			}
			ObserveRequestLatency(verb, path, strconv.Itoa(rec.code), time.Since(t).Seconds())
		}()

		next.ServeHTTP(rec, r)
	})
}
