package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

const remoteBody = `[
	{"treeNumber": 1, "trait": "roots", "score": 10},
	{"treeNumber": 1, "trait": "trunk", "score": 20}
]`

func TestLoadURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remoteBody))
	}))
	defer srv.Close()

	ds, err := LoadURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("LoadURL: %v", err)
	}
	if got := len(ds.Trees()); got != 1 {
		t.Errorf("tree count = %d, want 1", got)
	}
}

func TestLoadURLRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(remoteBody))
	}))
	defer srv.Close()

	ds, err := LoadURL(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("LoadURL: %v", err)
	}
	if ds == nil || calls.Load() != 2 {
		t.Errorf("expected one retry, got %d calls", calls.Load())
	}
}

func TestLoadURLNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := LoadURL(context.Background(), srv.URL+"/missing.json")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error code = %q, want NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadURLRejectsBadScheme(t *testing.T) {
	_, err := LoadURL(context.Background(), "ftp://example.com/trees.json")
	if err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}
