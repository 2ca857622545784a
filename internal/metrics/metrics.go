package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"code", "method", "path"},
	)
	httpRequestsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)
	cartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of cart mutations by operation.",
		},
		[]string{"op"},
	)
	discountValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discount_validations_total",
			Help: "Total number of discount code validations by outcome.",
		},
		[]string{"outcome"},
	)
	paymentStatusPollsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_status_polls_total",
			Help: "Total number of payment status polls by observed status.",
		},
		[]string{"status"},
	)
)

func init() {
	if err := prometheus.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		slog.Debug("ProcessCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}

	if err := prometheus.Register(collectors.NewGoCollector()); err != nil {
		slog.Debug("GoCollector registration skipped (likely already registered)",
			slog.String("error", err.Error()))
	}
}

func RecordCartMutation(op string) {
	cartMutationsTotal.WithLabelValues(op).Inc()
}

func RecordDiscountValidation(valid bool) {

	outcome := "invalid"
	if valid {
		outcome = "valid"
	}

	discountValidationsTotal.WithLabelValues(outcome).Inc()
}

func RecordStatusPoll(status string) {
	paymentStatusPollsTotal.WithLabelValues(status).Inc()
}

// wrapper around http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{w, http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		start := time.Now()
		httpRequestsInFlight.Inc()

		rw := newResponseWriter(w)

		pathPattern := r.URL.Path
		if sku := r.PathValue("sku"); sku != "" {
			pathPattern = r.URL.Path[:len(r.URL.Path)-len(sku)] + "{sku}"
		} else if key := r.PathValue("key"); key != "" {
			pathPattern = r.URL.Path[:len(r.URL.Path)-len(key)] + "{key}"
		} else if num := r.PathValue("orderNumber"); num != "" {
			pathPattern = r.URL.Path[:len(r.URL.Path)-len(num)] + "{orderNumber}"
		}

		defer func() {

			duration := time.Since(start)
			statusCodeStr := strconv.Itoa(rw.statusCode)

			httpRequestsTotal.WithLabelValues(statusCodeStr, r.Method, pathPattern).Inc()
			httpRequestsDuration.WithLabelValues(r.Method, pathPattern).Observe(duration.Seconds())
			httpRequestsInFlight.Dec()

		}()

		next.ServeHTTP(rw, r)

	})
}

// http.Handler for the Prometheus /metrics endpoint
func Handler() http.Handler {

	return promhttp.Handler()
}
