package metrics

import (
	"fmt"
	"net/http"
	"strconv"
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

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so recording works before Init is called.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	clientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_latency_seconds",
			Help:    "Histogram of collaborator client call durations in seconds, retries included.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "method", "status"},
	)

	circuitBreakerStateGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state per client: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	crankPagesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crank_pages_total",
			Help: "Number of crank pages by outcome and error code",
		},
		[]string{"status", "code"},
	)

	payoutsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crank_payouts_total",
			Help: "Number of investor payouts computed by payout status",
		},
		[]string{"status"},
	)

	distributedQuoteCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crank_distributed_quote_total",
			Help: "Quote paid to investors over all closed epochs",
		},
	)

	creatorRemainderCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "crank_creator_remainder_quote_total",
			Help: "Quote routed to creators over all closed epochs",
		},
	)

	settlementCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_instructions_total",
			Help: "Number of outbox instructions executed by kind and outcome",
		},
		[]string{"kind", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
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
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics registers the Prometheus metrics.
func registerMetrics() {
	prometheus.MustRegister(
		clientRequestDurationHistogram,
		clientLatency,
		circuitBreakerStateGauge,
		queueSendErrorCounter,
		pollerDurationHistogram,
		dbLatency,
		crankPagesCounter,
		payoutsCounter,
		distributedQuoteCounter,
		creatorRemainderCounter,
		settlementCounter,
	)
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordClientLatency(d time.Duration, client, method string, failure bool) {
	clientLatency.WithLabelValues(client, method, outcome(failure).String()).Observe(d.Seconds())
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
			strconv.Itoa(statusCode),
		).Observe(duration)
	}
}

func RecordCircuitBreakerState(name string, state int) {
	circuitBreakerStateGauge.WithLabelValues(name).Set(float64(state))
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}

// RecordCrankPage counts one crank attempt. code is empty for a successful page.
func RecordCrankPage(code string) {
	crankPagesCounter.WithLabelValues(outcome(code != "").String(), code).Inc()
}

func RecordPayout(status string) {
	payoutsCounter.WithLabelValues(status).Inc()
}

func RecordEpochClosed(distributed, creatorRemainder uint64) {
	distributedQuoteCounter.Add(float64(distributed))
	creatorRemainderCounter.Add(float64(creatorRemainder))
}

func RecordSettlement(kind string, failure bool) {
	settlementCounter.WithLabelValues(kind, outcome(failure).String()).Inc()
}
