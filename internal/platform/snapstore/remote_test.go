package snapstore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
)

// fakeD1 implements just enough of the D1 query API for the remote backend
type fakeD1 struct {
	rows map[string]string
	fail bool
}

func (f *fakeD1) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if f.fail {
			w.Write([]byte(`{"success": false, "errors": [{"message": "boom"}]}`))
			return
		}
		var req struct {
			SQL    string `json:"sql"`
			Params []any  `json:"params"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		switch {
		case strings.HasPrefix(req.SQL, "CREATE TABLE"):
			w.Write([]byte(`{"success": true, "result": [{"results": []}]}`))
		case strings.HasPrefix(req.SQL, "SELECT"):
			key, _ := req.Params[0].(string)
			if v, ok := f.rows[key]; ok {
				body, _ := json.Marshal(map[string]any{
					"success": true,
					"result":  []any{map[string]any{"results": []any{map[string]any{"store_value": v}}}},
				})
				w.Write(body)
				return
			}
			w.Write([]byte(`{"success": true, "result": [{"results": []}]}`))
		case strings.HasPrefix(req.SQL, "INSERT"):
			key, _ := req.Params[0].(string)
			val, _ := req.Params[1].(string)
			if f.rows == nil {
				f.rows = map[string]string{}
			}
			f.rows[key] = val
			w.Write([]byte(`{"success": true, "result": [{"results": []}]}`))
		default:
			w.Write([]byte(`{"success": false, "errors": [{"message": "unexpected sql"}]}`))
		}
	}
}

func openRemote(t *testing.T, f *fakeD1) Backend {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return Open(Config{AccountID: "a", DatabaseID: "d", Token: "t", BaseURL: srv.URL})
}

func TestRemoteRoundTrip(t *testing.T) {
	f := &fakeD1{}
	b := openRemote(t, f)

	want := []byte(`{"skills":[{"slug":"x"}],"submissions":[]}`)
	if err := b.Write(context.Background(), want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := b.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Read = %s, want %s", got, want)
	}
}

func TestRemoteReadEmptySeedsOnce(t *testing.T) {
	f := &fakeD1{}
	b := openRemote(t, f)

	got, err := b.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, Seed()) {
		t.Fatal("empty store should return the seed snapshot")
	}
	if f.rows["main"] != string(Seed()) {
		t.Fatal("seed was not written back to the store")
	}
}

func TestRemoteReadFailureFallsBackToSeed(t *testing.T) {
	f := &fakeD1{fail: true}
	b := openRemote(t, f)

	got, err := b.Read(context.Background())
	if err != nil {
		t.Fatalf("Read should not fail, got %v", err)
	}
	if !bytes.Equal(got, Seed()) {
		t.Fatal("failing backend should fall back to the seed snapshot")
	}
}

func TestRemoteWriteFailurePropagates(t *testing.T) {
	f := &fakeD1{fail: true}
	b := openRemote(t, f)

	err := b.Write(context.Background(), []byte(`{}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !perr.IsCode(err, perr.ErrorCodePersistence) {
		t.Fatalf("expected persistence code, got %v", err)
	}
}
