package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/ChemSDS/internal/infrastructure/monitoring/prometheus"
)

// MetricsMiddleware records request counts, durations and in-flight
// gauges. The route pattern is used as the path label so parameterised
// routes do not explode cardinality.
type MetricsMiddleware struct {
	metrics *prometheus.AppMetrics
}

func NewMetricsMiddleware(metrics *prometheus.AppMetrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

func (m *MetricsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		active := m.metrics.HTTPActiveRequests.WithLabelValues(r.Method)
		active.Inc()
		defer active.Dec()

		start := time.Now()
		recorder := newResponseRecorder(w)
		next.ServeHTTP(recorder, r)

		path := r.URL.Path
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		prometheus.RecordHTTPRequest(m.metrics, r.Method, path, recorder.status, time.Since(start))
	})
}

//Personal.AI order the ending
