package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WSG23/optimal-build-sub004/pkg/config"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/catalog"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/engine"
	"github.com/WSG23/optimal-build-sub004/pkg/rules/parser"
	"github.com/WSG23/optimal-build-sub004/pkg/telemetry/metrics"
)

const testPackYAML = `
slug: residential-checks
name: Residential Checks
version: 1.0.0
rules:
  - id: min-space-height
    target: spaces
    where:
      field: metadata.include
      operator: "=="
      value: true
    predicate:
      field: height
      operator: ">="
      value: 3.5
      message: habitable spaces need at least 3.5m clear height
    citations:
      - clause: BC 3.1.2
`

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 0], [4, 0], [4, 4], [0, 4], [0, 0]]]
      },
      "properties": {
        "id": "s1",
        "name": "Unit 01-01",
        "category": "spaces",
        "height": 3.2,
        "include": true
      }
    }
  ]
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := catalog.NewMemoryStore()
	pack, err := parser.NewParser().ParseBytes([]byte(testPackYAML), "test.yaml")
	if err != nil {
		t.Fatalf("pack did not parse: %v", err)
	}
	if err := store.Put(context.Background(), pack, []byte(testPackYAML)); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	evaluator, err := engine.NewEvaluator(nil, logger)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig().Server
	return New(cfg, store, evaluator, metrics.NewCollector(metrics.Config{}, nil), logger)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "GET", "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestListPacks(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "GET", "/v1/rulepacks", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Packs []catalog.PackInfo `json:"packs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Packs) != 1 || resp.Packs[0].Slug != "residential-checks" {
		t.Errorf("packs = %+v", resp.Packs)
	}
}

func TestGetPack(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "GET", "/v1/rulepacks/residential-checks", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}

	rec = doRequest(t, s, "GET", "/v1/rulepacks/unknown-pack", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown pack status = %d, want 404", rec.Code)
	}
}

func TestValidate(t *testing.T) {
	rec := doRequest(t, newTestServer(t), "POST", "/v1/validate/residential-checks", testGeoJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Report.Summary.Violations != 1 {
		t.Errorf("violations = %d, want 1", resp.Report.Summary.Violations)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].RuleID != "min-space-height" {
		t.Errorf("citations = %+v", resp.Citations)
	}
	if len(resp.References) != 1 || resp.References[0].Clause != "BC 3.1.2" {
		t.Errorf("references = %+v", resp.References)
	}
	if len(resp.Suggestions) != 1 || resp.Suggestions[0].EntityID != "s1" {
		t.Errorf("suggestions = %+v", resp.Suggestions)
	}
}

func TestValidate_Errors(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, "POST", "/v1/validate/unknown-pack", testGeoJSON)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown pack status = %d, want 404", rec.Code)
	}

	rec = doRequest(t, s, "POST", "/v1/validate/residential-checks", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d, want 400", rec.Code)
	}
}

func TestValidate_ConfigErrorAbortMode(t *testing.T) {
	store := catalog.NewMemoryStore()
	badPack := `
slug: bad-pack
version: 1.0.0
rules:
  - id: bad-operator
    target: spaces
    predicate:
      field: height
      operator: almost_equal
      value: 3
`
	pack, err := parser.NewParser().ParseBytes([]byte(badPack), "bad.yaml")
	if err != nil {
		t.Fatalf("pack did not parse: %v", err)
	}
	if err := store.Put(context.Background(), pack, []byte(badPack)); err != nil {
		t.Fatal(err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	evaluator, err := engine.NewEvaluator(
		engine.DefaultConfig().WithConfigErrorMode(engine.AbortPack), logger)
	if err != nil {
		t.Fatal(err)
	}

	s := New(config.DefaultConfig().Server, store, evaluator, nil, logger)

	rec := doRequest(t, s, "POST", "/v1/validate/bad-pack", testGeoJSON)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RuleID != "bad-operator" {
		t.Errorf("rule_id = %q", resp.RuleID)
	}
}

func TestValidate_BodyLimit(t *testing.T) {
	store := catalog.NewMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	evaluator, _ := engine.NewEvaluator(nil, logger)

	cfg := config.DefaultConfig().Server
	cfg.MaxBodyBytes = 16
	s := New(cfg, store, evaluator, nil, logger)

	rec := doRequest(t, s, "POST", "/v1/validate/any", testGeoJSON)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	// Drive one evaluation so the counters exist.
	doRequest(t, s, "POST", "/v1/validate/residential-checks", testGeoJSON)

	rec := doRequest(t, s, "GET", "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "buildcheck_evaluations_total") {
		t.Error("evaluation metrics missing from /metrics")
	}
}

func TestGracefulShutdown(t *testing.T) {
	s := newTestServer(t)
	s.config.ListenAddress = "127.0.0.1:0"
	s.http.Addr = s.config.ListenAddress

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
