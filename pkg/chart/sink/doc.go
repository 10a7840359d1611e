// Package sink provides output format renderers for tree infographics.
//
// # Overview
//
// A "sink" transforms a computed [layout.Layout] into a final output
// format. This package provides renderers for:
//
//   - SVG: Scalable vector graphics with click-to-reorder interactivity
//   - JSON: Layout data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] produces SVG with:
//
//   - Visual styles (flat colors or monochrome print style)
//   - One group per tree carrying its trait scores as data attributes
//   - Optional embedded script: clicking any shape reorders the trees
//     ascending by that shape's trait, entirely client-side
//   - Optional sort links for server-rendered charts, where a click is
//     a round trip carrying the trait as a query parameter
//
// Basic usage:
//
//	svg, err := sink.RenderSVG(l,
//	    sink.WithStyle(styles.NewFlat()),
//	    sink.WithReorderScript(),
//	)
//
// # SVG Options
//
//   - [WithStyle]: Visual style ([styles.Flat] or [styles.Mono])
//   - [WithReorderScript]: Embed the client-side reorder script
//   - [WithSortLinks]: Wrap shapes in links for server-side reordering
//   - [WithTitle]: Add an SVG title element
//
// # JSON Output
//
// [RenderJSON] exports the complete layout as JSON: frame, ground line,
// tree ordering, and every positioned shape with its trait identity.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render the layout by first generating SVG,
// then converting via [chart.ToPDF] and [chart.ToPNG]:
//
//	pdf, err := sink.RenderPDF(l, opts...)
//	png, err := sink.RenderPNG(l, sink.WithScale(2), opts...)
//
// These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [layout.Layout]: github.com/parentevalerio/infovis-trees/pkg/chart/layout.Layout
// [styles.Flat]: github.com/parentevalerio/infovis-trees/pkg/chart/styles.Flat
// [styles.Mono]: github.com/parentevalerio/infovis-trees/pkg/chart/styles.Mono
// [chart.ToPDF]: github.com/parentevalerio/infovis-trees/pkg/chart.ToPDF
// [chart.ToPNG]: github.com/parentevalerio/infovis-trees/pkg/chart.ToPNG
package sink
