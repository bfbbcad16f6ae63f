package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var (
	once                           sync.Once
	registerOnce                   sync.Once
	metricsRouter                  *chi.Mux
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	womClientLatency               *prometheus.HistogramVec
	ingestionClientLatency         *prometheus.HistogramVec
	dbLatency                      *prometheus.HistogramVec
	candidateEventsCounter         *prometheus.CounterVec
	submissionsCounter             *prometheus.CounterVec
	skippedDeltasCounter           *prometheus.CounterVec
	fetchFailuresCounter           *prometheus.CounterVec
	cycleSkippedCounter            *prometheus.CounterVec
	refreshFailuresCounter         prometheus.Counter
	publishErrorCounter            prometheus.Counter
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		Register()
	})
}

// Register registers the collectors without starting the http server. It's safe
// to call multiple times and is what tests use.
func Register() {
	registerOnce.Do(registerMetrics)
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"type", "status"},
	)

	womClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wom_client_latency_seconds",
			Help:    "Histogram of competition provider client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	ingestionClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ingestion_client_latency_seconds",
			Help:    "Histogram of ingestion client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	candidateEventsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competition_candidate_events_total",
			Help: "Number of positive deltas computed per metric",
		},
		[]string{"metric"},
	)

	submissionsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competition_submissions_total",
			Help: "Number of event submissions per metric and outcome",
		},
		[]string{"metric", "status"},
	)

	skippedDeltasCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competition_skipped_deltas_total",
			Help: "Number of participants skipped by the reconciler per metric and reason",
		},
		[]string{"metric", "reason"},
	)

	fetchFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competition_fetch_failures_total",
			Help: "Number of failed participant fetches per metric",
		},
		[]string{"metric"},
	)

	cycleSkippedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "competition_cycle_skipped_total",
			Help: "Number of poll cycles that did nothing, by reason",
		},
		[]string{"reason"},
	)

	refreshFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "competition_refresh_failures_total",
			Help: "Number of failed best-effort competition refresh requests",
		},
	)

	// add a counter for the number of errors from the fail to push message into queue
	publishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_publish_error_count",
			Help: "The total number of errors when publishing messages to the queue",
		},
	)

	prometheus.MustRegister(
		clientRequestDurationHistogram,
		pollerDurationHistogram,
		womClientLatency,
		ingestionClientLatency,
		dbLatency,
		candidateEventsCounter,
		submissionsCounter,
		skippedDeltasCounter,
		fetchFailuresCounter,
		cycleSkippedCounter,
		refreshFailuresCounter,
		publishErrorCounter,
	)
}

func RecordWomClientLatency(d time.Duration, method string, failure bool) {
	womClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordIngestionClientLatency(d time.Duration, method string, failure bool) {
	ingestionClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordCandidateEvents(metric string, count int) {
	candidateEventsCounter.WithLabelValues(metric).Add(float64(count))
}

func RecordSubmission(metric string, failure bool) {
	submissionsCounter.WithLabelValues(metric, outcome(failure).String()).Inc()
}

func RecordSkippedDeltas(metric, reason string, count int) {
	skippedDeltasCounter.WithLabelValues(metric, reason).Add(float64(count))
}

func RecordFetchFailure(metric string) {
	fetchFailuresCounter.WithLabelValues(metric).Inc()
}

func RecordCycleSkipped(reason string) {
	cycleSkippedCounter.WithLabelValues(reason).Inc()
}

func RecordRefreshFailure() {
	refreshFailuresCounter.Inc()
}

func RecordPublishError() {
	publishErrorCounter.Inc()
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}
