package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spacyk/eshop-recipe/pkg/metrics"
)

// MetricsMiddleware 記錄每個路由的請求數與延遲
func MetricsMiddleware(m *metrics.ServerMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recoder := &StatusRecoder{
				ResponseWriter: w,
			}
			start := time.Now()
			next.ServeHTTP(recoder, r)

			// 用路由pattern當label，避免label爆炸
			handler := chi.RouteContext(r.Context()).RoutePattern()
			if handler == "" {
				handler = r.URL.Path
			}

			m.Requests.WithLabelValues(handler, strconv.Itoa(recoder.Status())).Inc()
			m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
