package sink

import (
	"strings"
	"testing"

	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
	"github.com/parentevalerio/infovis-trees/pkg/chart/styles"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/scale"
	"github.com/parentevalerio/infovis-trees/pkg/series"
)

func testLayout(t *testing.T) *layout.Layout {
	t.Helper()
	ds, err := dataset.New([]dataset.Record{
		{Tree: "T1", Trait: "roots", Score: 10},
		{Tree: "T1", Trait: "trunk", Score: 20},
		{Tree: "T1", Trait: "crown", Score: 15},
		{Tree: "T2", Trait: "roots", Score: 30},
		{Tree: "T2", Trait: "trunk", Score: 10},
		{Tree: "T2", Trait: "crown", Score: 5},
	})
	if err != nil {
		t.Fatalf("dataset.New: %v", err)
	}
	ser, err := series.Build(ds)
	if err != nil {
		t.Fatalf("series.Build: %v", err)
	}
	frame := layout.DefaultFrame()
	band, err := scale.BuildHorizontalScale(ds, "",
		scale.Range{Min: frame.PlotLeft(), Max: frame.PlotRight()}, 0.2)
	if err != nil {
		t.Fatalf("BuildHorizontalScale: %v", err)
	}
	l, err := layout.Build(ds, ser, frame, band)
	if err != nil {
		t.Fatalf("layout.Build: %v", err)
	}
	return l
}

func TestRenderSVGStructure(t *testing.T) {
	svg, err := RenderSVG(testLayout(t))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	for _, want := range []string{
		`viewBox="0 0 3000.0 800.0"`,
		`region-sky`,
		`region-ground`,
		`<g id="trees">`,
		`<g class="tree" data-tree="T1" data-index="0" data-roots="10" data-trunk="20" data-crown="15">`,
		`<g class="tree" data-tree="T2" data-index="1" data-roots="30" data-trunk="10" data-crown="5">`,
		`<g id="axis-x">`,
		`<g id="axis-y">`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %s", want)
		}
	}
}

func TestRenderSVGShapeCounts(t *testing.T) {
	svg, err := RenderSVG(testLayout(t))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	// 3 root strands, 1 trunk, 1 crown per tree, 2 trees.
	if got := strings.Count(out, `<line class="shape"`); got != 6 {
		t.Errorf("root strands = %d, want 6", got)
	}
	if got := strings.Count(out, `<rect class="shape"`); got != 2 {
		t.Errorf("trunks = %d, want 2", got)
	}
	if got := strings.Count(out, `<ellipse class="shape"`); got != 2 {
		t.Errorf("crowns = %d, want 2", got)
	}
}

func TestRenderSVGPositionalColors(t *testing.T) {
	svg, err := RenderSVG(testLayout(t))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	palette := scale.DefaultPalette
	for i, trait := range []string{"roots", "trunk", "crown"} {
		if !strings.Contains(out, palette[i]) {
			t.Errorf("SVG missing %s color %s", trait, palette[i])
		}
	}
}

func TestRenderSVGReorderScript(t *testing.T) {
	plain, err := RenderSVG(testLayout(t))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if strings.Contains(string(plain), "<script") {
		t.Error("script embedded without WithReorderScript")
	}

	scripted, err := RenderSVG(testLayout(t), WithReorderScript())
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(scripted)
	if !strings.Contains(out, "<script") || !strings.Contains(out, "function reorder") {
		t.Error("WithReorderScript did not embed the reorder script")
	}
	if !strings.Contains(out, "addEventListener('click'") {
		t.Error("script missing the click handler")
	}
}

func TestRenderSVGSortLinks(t *testing.T) {
	svg, err := RenderSVG(testLayout(t), WithSortLinks("/chart.svg"))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)

	for _, want := range []string{
		`<a href="/chart.svg?sort=roots">`,
		`<a href="/chart.svg?sort=trunk">`,
		`<a href="/chart.svg?sort=crown">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing sort link %s", want)
		}
	}
}

func TestRenderSVGWithMonoStyle(t *testing.T) {
	svg, err := RenderSVG(testLayout(t), WithStyle(styles.NewMono()), WithTitle("orchard"))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	if !strings.Contains(out, `id="hatch"`) {
		t.Error("mono defs not rendered")
	}
	if !strings.Contains(out, "<title>orchard</title>") {
		t.Error("title not rendered")
	}
}
