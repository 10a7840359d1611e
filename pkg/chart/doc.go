// Package chart provides rendering for tree-trait infographics.
//
// # Overview
//
// This package contains the rendering pipeline that turns a stacked
// tree-trait dataset into visual outputs. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - The tree infographic (via the [layout], [styles], and [sink] subpackages)
//   - Node-link diagrams (in the [nodelink] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := sink.RenderSVG(l, sink.WithStyle(styles.NewFlat()))
//	pdf, err := chart.ToPDF(svg)
//	png, err := chart.ToPNG(svg, 2.0)  // 2x scale
//
// # Tree Infographic
//
// The chart draws each tree's anatomy sized from its trait scores: root
// strands below a shared ground line, a trunk rectangle, a crown ellipse,
// and fruit circles, all stacked from one running sum per tree. Clicking
// any shape reorders the trees ascending by that shape's trait.
//
// Key subpackages:
//   - [layout]: Shape position computation
//   - [styles]: Visual styles (flat, mono)
//   - [sink]: Output formats (SVG, JSON, PNG, PDF)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the dataset as a bipartite
// tree-to-trait diagram using Graphviz, as a structural alternative to
// the infographic.
//
// [layout]: github.com/parentevalerio/infovis-trees/pkg/chart/layout
// [styles]: github.com/parentevalerio/infovis-trees/pkg/chart/styles
// [sink]: github.com/parentevalerio/infovis-trees/pkg/chart/sink
// [nodelink]: github.com/parentevalerio/infovis-trees/pkg/chart/nodelink
package chart
