package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/ADS-SchedulingService/pkg/metrics"
)

// statusRecorder перехватывает код ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// MetricsMiddleware собирает метрики HTTP запросов: счетчик и длительность
// В качестве пути используется шаблон маршрута mux, а не сырой URL,
// чтобы не раздувать кардинальность метрик
func MetricsMiddleware(m *metrics.Metrics, serviceName string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if template, err := route.GetPathTemplate(); err == nil {
					path = template
				}
			}

			m.ObserveHTTPRequest(r.Method, path, recorder.status, time.Since(start))
		})
	}
}
