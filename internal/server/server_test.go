package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/parentevalerio/infovis-trees/pkg/pipeline"
)

const testRecords = `[
  {"treeNumber": "T1", "trait": "roots", "score": 10},
  {"treeNumber": "T1", "trait": "trunk", "score": 20},
  {"treeNumber": "T1", "trait": "crown", "score": 15},
  {"treeNumber": "T2", "trait": "roots", "score": 30},
  {"treeNumber": "T2", "trait": "trunk", "score": 10},
  {"treeNumber": "T2", "trait": "crown", "score": 5}
]`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trees.json")
	if err := os.WriteFile(path, []byte(testRecords), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, logger)
	t.Cleanup(func() { runner.Close() })

	return New(runner, pipeline.Options{
		Input: path,
		Title: "Tree Traits",
	}, logger)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestChartSVG(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/chart.svg")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("no X-Request-ID header")
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("no ETag header")
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<svg") {
		t.Error("response is not an SVG document")
	}
	// Shapes link back to the sorted view of themselves.
	for _, trait := range []string{"roots", "trunk", "crown"} {
		if !strings.Contains(body, `href="/chart.svg?sort=`+trait+`"`) {
			t.Errorf("missing sort link for %s", trait)
		}
	}
	// Equal totals keep the input order.
	if strings.Index(body, `data-tree="T1"`) > strings.Index(body, `data-tree="T2"`) {
		t.Error("default order should keep T1 before T2")
	}
}

func TestChartSVGSorted(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/chart.svg?sort=crown")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if strings.Index(body, `data-tree="T2"`) > strings.Index(body, `data-tree="T1"`) {
		t.Error("sorting by crown should put T2 (crown 5) before T1 (crown 15)")
	}
}

func TestChartJSON(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/chart.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q", ct)
	}

	var out struct {
		Trees []struct {
			ID string `json:"id"`
		} `json:"trees"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Trees) != 2 {
		t.Errorf("trees = %d, want 2", len(out.Trees))
	}
}

func TestUnknownSortTrait(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/chart.svg?sort=nosuch")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_TRAIT") {
		t.Errorf("body should carry the error code, got: %s", rec.Body.String())
	}
}

func TestInvalidStyle(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/chart.svg?style=sketchy")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_STYLE") {
		t.Errorf("body should carry the error code, got: %s", rec.Body.String())
	}
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/chart.svg") {
		t.Error("index page should embed the chart")
	}
	if !strings.Contains(body, "Tree Traits") {
		t.Error("index page should carry the configured title")
	}
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestRecovererTurnsPanicInto500(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	handler := recoverer(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/chart.svg", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INTERNAL") {
		t.Errorf("body should carry the error code, got: %s", rec.Body.String())
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-id" {
		t.Errorf("X-Request-ID = %q, want upstream value", got)
	}
}
