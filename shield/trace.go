package shield

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hazyhaar/pageproof/idgen"
	"github.com/hazyhaar/pageproof/kit"
)

type loggerKey struct{}

var newRequestID = idgen.NanoID(8)

// RequestID assigns each request an ID and injects it into the context,
// the response headers, and a per-request structured logger.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := newRequestID()

		ctx := kit.WithRequestID(r.Context(), id)
		w.Header().Set("X-Request-ID", id)

		logger := slog.Default().With(
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
		)
		ctx = context.WithValue(ctx, loggerKey{}, logger)
		logger.Debug("request")

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLogger retrieves the per-request logger from the context. Returns
// slog.Default() if no logger was set.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
