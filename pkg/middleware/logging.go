package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoggingMiddleware logs every request with a generated request id and
// the handling duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		start := time.Now()

		next.ServeHTTP(w, r)

		logrus.WithFields(logrus.Fields{
			"requestID": requestID,
			"method":    r.Method,
			"path":      r.URL.Path,
			"duration":  time.Since(start).String(),
		}).Info("Request handled")
	})
}
