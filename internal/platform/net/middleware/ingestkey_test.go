package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "github.com/missBerg/eir-open/internal/platform/net/http"
)

func ingestStack(key string) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("through"))
	})
	return IngestKey(key, phttp.JSON)(ok)
}

func TestIngestKey_DisabledWhenUnset(t *testing.T) {
	h := ingestStack("")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/ingest/github", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when no key configured", rec.Code)
	}
}

func TestIngestKey_RejectsMissingHeader(t *testing.T) {
	h := ingestStack("sekrit")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("POST", "/ingest/github", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestIngestKey_RejectsWrongKey(t *testing.T) {
	h := ingestStack("sekrit")
	req := httptest.NewRequest("POST", "/ingest/github", nil)
	req.Header.Set(IngestKeyHeader, "nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestIngestKey_AcceptsMatchingKey(t *testing.T) {
	h := ingestStack("sekrit")
	req := httptest.NewRequest("POST", "/ingest/github", nil)
	req.Header.Set(IngestKeyHeader, "sekrit")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
