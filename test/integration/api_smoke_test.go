package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/app/apiapp"
	"github.com/jobast/bokkal/internal/config"
)

func newTestApp(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Default()
	cfg.HTTP.Addr = ":0"

	app, err := apiapp.New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("create app: %v", err)
	}

	ts := httptest.NewServer(app.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestApp(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

// The suggest endpoint answers local gazetteer matches without touching
// postgres or the geocoder, so it makes a useful smoke probe of the full
// router wiring.
func TestSuggestServesLocalMatches(t *testing.T) {
	ts := newTestApp(t)

	resp, err := http.Get(ts.URL + "/v1/locations/suggest?q=plage")
	if err != nil {
		t.Fatalf("get suggest: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusOK)
	}

	var payload struct {
		Query       string `json:"query"`
		Suggestions []struct {
			Name string `json:"name"`
		} `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Query != "plage" {
		t.Fatalf("unexpected query echo: %q", payload.Query)
	}
	if len(payload.Suggestions) == 0 {
		t.Fatalf("expected local gazetteer matches for %q", payload.Query)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestApp(t)

	resp, err := http.Get(ts.URL + "/v1/admin/stats")
	if err != nil {
		t.Fatalf("get admin stats: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", resp.StatusCode, http.StatusUnauthorized)
	}
}
