package http

import (
	"net/http"
	"time"

	"github.com/jmrodas/parkings-api/internal/logger"
)

type responseData struct {
	status int
	size   int
}

// loggingResponseWriter captures the status code and body size for the
// request log line.
type loggingResponseWriter struct {
	http.ResponseWriter
	responseData *responseData
}

func (w *loggingResponseWriter) Write(b []byte) (int, error) {
	size, err := w.ResponseWriter.Write(b)
	w.responseData.size += size

	return size, err
}

func (w *loggingResponseWriter) WriteHeader(statusCode int) {
	w.ResponseWriter.WriteHeader(statusCode)
	w.responseData.status = statusCode
}

// withLogging logs one line per completed request.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		data := &responseData{status: http.StatusOK}
		lw := &loggingResponseWriter{ResponseWriter: w, responseData: data}

		next.ServeHTTP(lw, r)

		log := logger.FromRequest(r)
		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", data.status).
			Dur("duration", time.Since(start)).
			Int("size", data.size).
			Msg("request completed")
	})
}
