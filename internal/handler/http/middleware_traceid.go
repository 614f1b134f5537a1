package http

import (
	"net/http"

	"github.com/google/uuid"
)

// withTraceID assigns each request a trace id, attaches a child logger
// carrying it to the request context and echoes it in the X-Trace-ID header.
func (h *Handler) withTraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		log := h.logger.GetChildLogger()
		log.Logger = log.Logger.With().Str("trace_id", traceID).Logger()

		w.Header().Set("X-Trace-ID", traceID)
		ctx := log.Logger.WithContext(r.Context())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
