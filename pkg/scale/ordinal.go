package scale

import (
	"github.com/parentevalerio/infovis-trees/pkg/dataset"
	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// ShapeKind names the anatomy drawn for a trait layer. Assignment is
// positional: the i-th trait in series order gets the i-th kind, the same
// rule the color palette follows.
type ShapeKind string

const (
	ShapeRootLines   ShapeKind = "root-lines"
	ShapeTrunkRect   ShapeKind = "trunk-rect"
	ShapeCrownOval   ShapeKind = "crown-oval"
	ShapeFruitCircle ShapeKind = "fruit-circles"
)

// DefaultPalette is the four-color trait palette, in stacking order:
// roots, trunk, crown, fruit.
var DefaultPalette = []string{"#8d6e63", "#795548", "#66bb6a", "#ef5350"}

// DefaultShapes is the shape assignment in stacking order.
var DefaultShapes = []ShapeKind{ShapeRootLines, ShapeTrunkRect, ShapeCrownOval, ShapeFruitCircle}

// Ordinal assigns fixed visual attributes to traits in series-key order.
// The assignment is 1:1 and stable for a given trait ordering; it never
// wraps. More traits than values is a hard error (palette exhaustion).
type Ordinal[T any] struct {
	traits []dataset.Trait
	values []T
	index  map[dataset.Trait]int
}

// NewOrdinal pairs traits with values positionally.
func NewOrdinal[T any](traits []dataset.Trait, values []T) (*Ordinal[T], error) {
	if len(traits) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "ordinal scale requires a non-empty domain")
	}
	if len(traits) > len(values) {
		return nil, errors.New(errors.ErrCodePaletteExhausted,
			"%d traits but only %d visual values available", len(traits), len(values))
	}

	index := make(map[dataset.Trait]int, len(traits))
	for i, tr := range traits {
		index[tr] = i
	}

	return &Ordinal[T]{
		traits: append([]dataset.Trait(nil), traits...),
		values: values[:len(traits)],
		index:  index,
	}, nil
}

// Value returns the visual attribute for a trait.
func (o *Ordinal[T]) Value(t dataset.Trait) (T, bool) {
	i, ok := o.index[dataset.NormalizeTrait(t)]
	if !ok {
		var zero T
		return zero, false
	}
	return o.values[i], true
}

// Domain returns the trait ordering the values were assigned against.
func (o *Ordinal[T]) Domain() []dataset.Trait {
	return append([]dataset.Trait(nil), o.traits...)
}

// NewColorScale builds the trait→color ordinal scale from the default
// palette.
func NewColorScale(traits []dataset.Trait) (*Ordinal[string], error) {
	return NewOrdinal(traits, DefaultPalette)
}

// NewShapeScale builds the trait→shape ordinal scale from the default
// shape assignment.
func NewShapeScale(traits []dataset.Trait) (*Ordinal[ShapeKind], error) {
	return NewOrdinal(traits, DefaultShapes)
}
