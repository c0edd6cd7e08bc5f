package routes

import (
	"net/http"
	"strconv"
	"time"

	"matchup_server/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// statusRecorder captures the status code written by the downstream handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// RequestLogger tags each request with an id, logs it on completion and feeds
// the HTTP metrics. Wraps the whole router, like the CORS handler.
func RequestLogger(m metrics.HTTPMetrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(recorder, r)

		elapsed := time.Since(start)
		m.ObserveRequest(r.Method, r.URL.Path, strconv.Itoa(recorder.status), elapsed)
		logrus.WithFields(logrus.Fields{
			"requestId": requestID,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    recorder.status,
			"elapsed":   elapsed.String(),
		}).Info("Request handled")
	})
}
