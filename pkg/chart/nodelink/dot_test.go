package nodelink

import (
	"strings"
	"testing"

	"github.com/parentevalerio/infovis-trees/pkg/dataset"
)

func TestToDOT(t *testing.T) {
	ds, err := dataset.New([]dataset.Record{
		{Tree: "T1", Trait: "roots", Score: 10},
		{Tree: "T1", Trait: "trunk", Score: 30},
		{Tree: "T2", Trait: "roots", Score: 5},
		{Tree: "T2", Trait: "trunk", Score: 5},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}

	dot := ToDOT(ds, Options{})

	for _, want := range []string{
		"digraph G {",
		`"tree:T1" [shape=box`,
		`"tree:T2" [shape=box`,
		`"trait:roots" [shape=ellipse`,
		`"trait:trunk" [shape=ellipse`,
		`"tree:T1" -> "trait:roots"`,
		`"tree:T2" -> "trait:trunk"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "total:") {
		t.Error("totals shown without Detailed")
	}
}

func TestToDOTDetailed(t *testing.T) {
	ds, err := dataset.New([]dataset.Record{
		{Tree: "T1", Trait: "roots", Score: 10},
		{Tree: "T1", Trait: "trunk", Score: 30},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}

	dot := ToDOT(ds, Options{Detailed: true})
	if !strings.Contains(dot, "total: 40") {
		t.Errorf("detailed DOT missing tree total:\n%s", dot)
	}
	if !strings.Contains(dot, `label="10"`) {
		t.Errorf("detailed DOT missing edge score:\n%s", dot)
	}
}

func TestEdgeWidth(t *testing.T) {
	tests := []struct {
		name         string
		score, total float64
		want         float64
	}{
		{name: "full share", score: 10, total: 10, want: 6},
		{name: "half share", score: 5, total: 10, want: 3.5},
		{name: "zero total", score: 0, total: 0, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := edgeWidth(tt.score, tt.total); got != tt.want {
				t.Errorf("edgeWidth(%g, %g) = %g, want %g", tt.score, tt.total, got, tt.want)
			}
		})
	}
}
