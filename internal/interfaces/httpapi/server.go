package httpapi

import (
	"net/http"

	"github.com/israelis-abroad/footballmap/internal/platform/logging"
	"github.com/israelis-abroad/footballmap/internal/platform/metrics"
)

// NewRouter builds the public mux. A nil recorder disables /metrics.
func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string, recorder *metrics.Recorder) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	if recorder != nil {
		mux.Handle("GET /metrics", recorder.Handler())
	}
	registerPublicRoutes(mux, handler)

	return RequestTracing(RequestMetrics(recorder, RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux)))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
