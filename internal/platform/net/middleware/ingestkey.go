package middleware

import (
	"crypto/subtle"
	"net/http"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
	pnet "github.com/missBerg/eir-open/internal/platform/net"
)

// IngestKeyHeader carries the shared ingestion secret
const IngestKeyHeader = "X-Ingest-Key"

// IngestKey guards ingestion endpoints with a shared secret header.
// An empty configured key disables the guard so local setups keep working
func IngestKey(key string, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get(IngestKeyHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				status, body := pnet.Error(perr.Unauthorizedf("missing or invalid ingest key"), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
