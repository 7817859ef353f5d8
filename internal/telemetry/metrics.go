package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	httpDur = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Operations counts dispatched /bfhl operations by outcome (ok, invalid, error).
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfhl_operations_total",
			Help: "Dispatched BFHL operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	// AIAnswers counts AI answers by the path that produced them (live, fallback).
	AIAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bfhl_ai_answers_total",
			Help: "AI answers by source",
		},
		[]string{"source"},
	)
)

func Init() {
	prometheus.MustRegister(httpReqs, httpDur, Operations, AIAnswers)
}

// Handler exposes the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		// route pattern is only known after routing; unmatched paths collapse to one label
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}

		httpReqs.WithLabelValues(route, r.Method, strconv.Itoa(ww.status)).Inc()
		httpDur.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
