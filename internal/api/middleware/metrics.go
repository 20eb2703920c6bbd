package middleware

import (
	"net/http"
	"sync/atomic"
)

// MetricsCollector counts requests and error responses for the metrics
// endpoint.
type MetricsCollector struct {
	requestCount *atomic.Int64
	errorCount   *atomic.Int64
}

func NewMetricsCollector(requestCount, errorCount *atomic.Int64) *MetricsCollector {
	return &MetricsCollector{requestCount: requestCount, errorCount: errorCount}
}

func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mc.requestCount.Add(1)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		// 4xx and 5xx both count as errors
		if rw.statusCode >= 400 {
			mc.errorCount.Add(1)
		}
	})
}
