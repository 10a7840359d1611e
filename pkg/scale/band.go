// Package scale provides the positional and visual scales of the chart.
//
// All scales are immutable once constructed. Reordering the chart never
// mutates a scale; it builds a new Band from a freshly sorted domain and
// passes it explicitly into layout and rendering.
package scale

import (
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Range is a pixel interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Band maps discrete tree identifiers to fixed-width horizontal screen
// bands. Each identifier owns a unique, non-overlapping band; padding is
// the fraction of one step left empty between neighboring bands.
type Band struct {
	domain  []dataset.TreeID
	index   map[dataset.TreeID]int
	r       Range
	step    float64
	width   float64
	padding float64
}

// NewBand creates a band scale over domain with the given pixel range.
// Padding must be in [0, 1); a padding of 0.2 leaves a fifth of each step
// empty between bands.
func NewBand(domain []dataset.TreeID, r Range, padding float64) (*Band, error) {
	if len(domain) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "band scale requires a non-empty domain")
	}
	if r.Max <= r.Min {
		return nil, errors.New(errors.ErrCodeInvalidInput, "band range [%g, %g] is empty", r.Min, r.Max)
	}
	if padding < 0 || padding >= 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "band padding %g outside [0, 1)", padding)
	}

	index := make(map[dataset.TreeID]int, len(domain))
	for i, id := range domain {
		if _, dup := index[id]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate identifier %q in band domain", id)
		}
		index[id] = i
	}

	step := (r.Max - r.Min) / float64(len(domain))
	return &Band{
		domain:  append([]dataset.TreeID(nil), domain...),
		index:   index,
		r:       r,
		step:    step,
		width:   step * (1 - padding),
		padding: padding,
	}, nil
}

// X returns the left edge of the band for id.
func (b *Band) X(id dataset.TreeID) (float64, bool) {
	i, ok := b.index[id]
	if !ok {
		return 0, false
	}
	return b.r.Min + float64(i)*b.step + b.step*b.padding/2, true
}

// Center returns the horizontal center of the band for id.
func (b *Band) Center(id dataset.TreeID) (float64, bool) {
	x, ok := b.X(id)
	if !ok {
		return 0, false
	}
	return x + b.width/2, true
}

// Width returns the width of every band.
func (b *Band) Width() float64 { return b.width }

// Step returns the distance between the left edges of adjacent bands.
func (b *Band) Step() float64 { return b.step }

// Domain returns the ordered identifiers, left to right.
func (b *Band) Domain() []dataset.TreeID {
	return append([]dataset.TreeID(nil), b.domain...)
}

// Range returns the pixel range the bands occupy.
func (b *Band) Range() Range { return b.r }

// Padding returns the inter-band padding fraction.
func (b *Band) Padding() float64 { return b.padding }
