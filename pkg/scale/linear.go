package scale

import (
	"math"

	"github.com/parentevalerio/infovis-trees/pkg/errors"
)

// Linear maps values onto an inverted pixel interval: value 0 lands on
// the bottom of the range and max on the top, so larger values sit higher
// on screen. Outputs are rounded to whole pixels.
type Linear struct {
	max    float64
	bottom float64 // pixel y for value 0
	top    float64 // pixel y for value max
}

// NewLinear creates a vertical scale with domain [0, max] and range
// [bottom, top]. The scale is inverted: bottom > top in screen
// coordinates. A zero or negative domain means there is nothing to draw,
// so construction fails instead of producing degenerate geometry.
func NewLinear(max, bottom, top float64) (*Linear, error) {
	if max <= 0 {
		return nil, errors.New(errors.ErrCodeEmptyDataset, "vertical scale domain [0, %g] is empty", max)
	}
	if bottom <= top {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"vertical range must be inverted (bottom %g, top %g)", bottom, top)
	}
	return &Linear{max: max, bottom: bottom, top: top}, nil
}

// Y maps a value to its screen y coordinate, rounded to whole pixels.
// Values outside the domain extrapolate along the same line, so geometry
// shifted past the domain top keeps its proportions instead of piling up
// on the boundary.
func (l *Linear) Y(v float64) float64 {
	t := v / l.max
	return math.Round(l.bottom + t*(l.top-l.bottom))
}

// Dist returns the pixel distance spanned by a value difference,
// independent of position. Always non-negative.
func (l *Linear) Dist(dv float64) float64 {
	return math.Abs(l.Y(0) - l.Y(dv))
}

// Max returns the top of the domain.
func (l *Linear) Max() float64 { return l.max }

// Ticks returns approximately n round-valued ticks across the domain,
// always including 0.
func (l *Linear) Ticks(n int) []float64 {
	if n < 2 {
		n = 2
	}
	step := tickStep(l.max, n)
	var ticks []float64
	for v := 0.0; v <= l.max+step/2; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// tickStep picks a 1/2/5-scaled step that yields about n intervals.
func tickStep(max float64, n int) float64 {
	raw := max / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm < 1.5:
		return mag
	case norm < 3.5:
		return 2 * mag
	case norm < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
