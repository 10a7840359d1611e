package pipeline

import (
	"github.com/parentevalerio/infovis-trees/pkg/chart/layout"
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/scale"
	"github.com/parentevalerio/infovis-trees/pkg/series"
)

// Compose runs the stacking, scale, and geometry stages: it stacks the
// dataset into layers, orders the trees (total descending by default, or
// ascending by opts.SortTrait), and computes the positioned layout.
func Compose(ds *dataset.Dataset, opts Options) (*layout.Layout, error) {
	if err := opts.ValidateForCompose(); err != nil {
		return nil, err
	}

	ser, err := series.Build(ds)
	if err != nil {
		return nil, err
	}

	frame := opts.Frame()
	band, err := scale.BuildHorizontalScale(ds, dataset.Trait(opts.SortTrait),
		scale.Range{Min: frame.PlotLeft(), Max: frame.PlotRight()}, opts.Padding)
	if err != nil {
		return nil, err
	}

	return layout.Build(ds, ser, frame, band)
}

// Reorder recomputes an existing layout's horizontal positions for a new
// sort trait. Vertical geometry is reused; only band assignments and the
// x axis change. This is the cheap path behind a reorder click.
func Reorder(ds *dataset.Dataset, l *layout.Layout, sortTrait string, opts Options) (*layout.Layout, error) {
	opts.SortTrait = sortTrait
	if err := opts.ValidateForCompose(); err != nil {
		return nil, err
	}

	frame := opts.Frame()
	band, err := scale.BuildHorizontalScale(ds, dataset.Trait(sortTrait),
		scale.Range{Min: frame.PlotLeft(), Max: frame.PlotRight()}, opts.Padding)
	if err != nil {
		return nil, err
	}

	return layout.Relayout(l, band)
}
