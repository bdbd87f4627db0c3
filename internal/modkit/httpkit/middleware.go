package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "github.com/missBerg/eir-open/internal/platform/net/http"
	"github.com/missBerg/eir-open/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with the ingest key guard as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// IngestKey wires the shared secret guard to the platform JSON writer
func IngestKey(key string) func(http.Handler) http.Handler {
	return middleware.IngestKey(key, phttp.JSON)
}
