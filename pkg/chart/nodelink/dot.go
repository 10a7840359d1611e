// Package nodelink renders the tree-trait dataset as a bipartite
// node-link diagram.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz,
// where trees appear as boxes connected to the traits they score on.
// It's an alternative to the infographic for cases where the score
// structure matters more than the pictorial anatomy.
//
// # Usage
//
// Convert a dataset to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(ds, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/parentevalerio/infovis-trees/pkg/chart"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes per-edge scores and per-tree totals in labels.
	// When false, only identifiers are shown.
	Detailed bool
}

// ToDOT converts a dataset to Graphviz DOT format: one box per tree,
// one ellipse per trait, and one edge per record with its width scaled
// by the score's share of the tree total. The resulting DOT string can
// be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(ds *dataset.Dataset, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=18];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range ds.Trees() {
		label := string(id)
		if opts.Detailed {
			label = fmt.Sprintf("%s\ntotal: %g", id, ds.Total(id))
		}
		fmt.Fprintf(&buf, "  %q [shape=box, style=\"rounded,filled\", fillcolor=white, label=%q];\n",
			"tree:"+id, label)
	}
	buf.WriteString("\n")
	for _, trait := range ds.Traits() {
		fmt.Fprintf(&buf, "  %q [shape=ellipse, style=filled, fillcolor=lightgrey, label=%q];\n",
			"trait:"+trait, string(trait))
	}

	buf.WriteString("\n")
	for _, id := range ds.Trees() {
		total := ds.Total(id)
		for _, trait := range ds.Traits() {
			score, ok := ds.Score(id, trait)
			if !ok {
				continue
			}
			attrs := fmt.Sprintf("penwidth=%.2f", edgeWidth(score, total))
			if opts.Detailed {
				attrs += fmt.Sprintf(", label=\"%g\", fontsize=14", score)
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", "tree:"+id, "trait:"+trait, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func edgeWidth(score, total float64) float64 {
	if total <= 0 {
		return 1
	}
	return 1 + 5*score/total
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with
// [chart.ToPDF] or [chart.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [chart.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return chart.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [chart.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return chart.ToPNG(svg, scale)
}
