// Package series pivots tree-trait records into stacked layers.
//
// Stacking follows the standard transform: layer i of tree t spans
// [sum(traits[0..i-1]), sum(traits[0..i])] in the dataset's trait order.
// Within one tree the layers partition [0, total] with no gaps or
// overlaps, which is what makes the vertical geometry well-defined.
package series

import (
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Span is one stacked interval: the cumulative score range a trait
// occupies within its tree's stack.
type Span struct {
	Lower float64
	Upper float64
}

// Size returns the span's extent (the trait's own score).
func (s Span) Size() float64 { return s.Upper - s.Lower }

// Mid returns the span's midpoint value.
func (s Span) Mid() float64 { return (s.Lower + s.Upper) / 2 }

// Layer holds one trait's spans across all trees.
type Layer struct {
	Trait dataset.Trait
	Index int // position in stacking order
	Spans map[dataset.TreeID]Span
}

// Series is the full stack: one layer per trait, in dataset trait order.
type Series struct {
	Traits []dataset.Trait
	Layers []Layer
}

// Build computes the stacked series for a dataset.
//
// The dataset's completeness guarantee means every (tree, trait) lookup
// must succeed; a failed lookup here indicates a corrupted dataset and is
// reported as an internal error rather than silently stacked as zero.
func Build(ds *dataset.Dataset) (*Series, error) {
	traits := ds.Traits()
	trees := ds.Trees()

	s := &Series{
		Traits: traits,
		Layers: make([]Layer, len(traits)),
	}

	running := make(map[dataset.TreeID]float64, len(trees))

	for i, trait := range traits {
		layer := Layer{
			Trait: trait,
			Index: i,
			Spans: make(map[dataset.TreeID]Span, len(trees)),
		}
		for _, tree := range trees {
			score, ok := ds.Score(tree, trait)
			if !ok {
				return nil, errors.New(errors.ErrCodeInternal,
					"incomplete record set for tree %s: missing %q during stacking", tree, trait)
			}
			lower := running[tree]
			upper := lower + score
			layer.Spans[tree] = Span{Lower: lower, Upper: upper}
			running[tree] = upper
		}
		s.Layers[i] = layer
	}

	return s, nil
}

// Layer returns the layer for a trait, or ok=false if the trait is not
// part of the series.
func (s *Series) Layer(trait dataset.Trait) (Layer, bool) {
	trait = dataset.NormalizeTrait(trait)
	for _, l := range s.Layers {
		if l.Trait == trait {
			return l, true
		}
	}
	return Layer{}, false
}

// Max returns the maximum upper bound across all layers and trees: the
// top of the vertical scale's domain.
func (s *Series) Max() float64 {
	var m float64
	for _, l := range s.Layers {
		for _, sp := range l.Spans {
			if sp.Upper > m {
				m = sp.Upper
			}
		}
	}
	return m
}
