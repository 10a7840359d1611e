package pipeline

import (
	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
	"github.com/parentevalerio/infovis-trees/pkg/chart/nodelink"
	"github.com/parentevalerio/infovis-trees/pkg/chart/sink"
	"github.com/parentevalerio/infovis-trees/pkg/chart/styles"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Render generates output artifacts in the requested formats.
func Render(l *layout.Layout, ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	if opts.IsNodelink() {
		// Nodelink renders straight from the dataset; the DOT graph is
		// generated on demand.
		return renderNodelink(ds, opts)
	}
	return renderChart(l, opts)
}

func renderChart(l *layout.Layout, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithPNGSVGOptions(svgOpts...))
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l,
				sink.WithJSONStyle(opts.Style), sink.WithJSONSort(opts.SortTrait))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chart format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderNodelink(ds *dataset.Dataset, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(ds, nodelink.Options{Detailed: opts.Detailed})

	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, 2.0)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatJSON:
			// The DOT source is the nodelink interchange format.
			data = []byte(dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption

	switch opts.Style {
	case StyleMono:
		svgOpts = append(svgOpts, sink.WithStyle(styles.NewMono()))
	case StyleFlat:
		svgOpts = append(svgOpts, sink.WithStyle(styles.NewFlat()))
	}

	if opts.ReorderScript {
		svgOpts = append(svgOpts, sink.WithReorderScript())
	}
	if opts.SortLinkBase != "" {
		svgOpts = append(svgOpts, sink.WithSortLinks(opts.SortLinkBase))
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	return svgOpts
}
