package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "microblog_http_requests_total",
		Help: "HTTP requests by route pattern, method and status.",
	}, []string{"pattern", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "microblog_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"pattern"})
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// withMetrics records request counts and latency, labeled by the
// matched route pattern to keep cardinality bounded.
func withMetrics(mux *http.ServeMux, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		_, pattern := mux.Handler(r)
		if pattern == "" {
			pattern = "unmatched"
		}
		requestsTotal.WithLabelValues(pattern, r.Method, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(pattern).Observe(time.Since(start).Seconds())
	})
}
