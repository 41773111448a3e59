package isovox

import (
	"errors"
	"math"
	"slices"
	"sort"

	"github.com/gogpu/isovox/internal/color"
)

// ErrNoColorStops is reported when a gradient without color stops is
// validated or sampled. It is a configuration error and is never recovered.
var ErrNoColorStops = errors.New("isovox: gradient has no color stops")

// ExtendMode defines how gradients extend beyond their defined bounds.
type ExtendMode int

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the gradient pattern.
	ExtendRepeat
	// ExtendReflect mirrors the gradient pattern.
	ExtendReflect
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGB     // Color at this position
}

// Gradient maps a lightness scalar to a color by interpolating between
// color stops. The zero value has no stops and is invalid.
type Gradient struct {
	stops  []ColorStop
	extend ExtendMode
	space  color.Space
}

// NewGradient creates a gradient from the given stops.
// Stops are copied and sorted by offset; the input slice is not modified.
func NewGradient(stops ...ColorStop) *Gradient {
	return &Gradient{stops: sortStops(stops)}
}

// Even creates a gradient with the colors spread evenly over [0, 1].
func Even(colors ...RGB) *Gradient {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		offset := 0.0
		if len(colors) > 1 {
			offset = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Offset: offset, Color: c}
	}
	return NewGradient(stops...)
}

// SetExtend sets how the gradient behaves outside [0, 1].
func (g *Gradient) SetExtend(mode ExtendMode) *Gradient {
	g.extend = mode
	return g
}

// SetLinearBlend makes the gradient interpolate in linear light instead
// of directly on sRGB components.
func (g *Gradient) SetLinearBlend(linear bool) *Gradient {
	g.space = color.SpaceSRGB
	if linear {
		g.space = color.SpaceLinear
	}
	return g
}

// LinearBlend reports whether the gradient interpolates in linear light.
func (g *Gradient) LinearBlend() bool {
	return g.space == color.SpaceLinear
}

// Stops returns a copy of the sorted color stops.
func (g *Gradient) Stops() []ColorStop {
	return slices.Clone(g.stops)
}

// Validate reports ErrNoColorStops for a gradient without stops.
func (g *Gradient) Validate() error {
	if g == nil || len(g.stops) == 0 {
		return ErrNoColorStops
	}
	return nil
}

// At returns the color at lightness t.
// It panics with ErrNoColorStops if the gradient has no stops.
func (g *Gradient) At(t float64) RGB {
	if err := g.Validate(); err != nil {
		panic(err)
	}
	return colorAtOffset(g.stops, t, g.extend, g.space)
}

// sortStops sorts a copy of the color stops by offset.
func sortStops(stops []ColorStop) []ColorStop {
	sorted := slices.Clone(stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode applies the extend mode to normalize t to [0, 1].
func applyExtendMode(t float64, mode ExtendMode) float64 {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	default: // ExtendPad
		t = clamp01(t)
	}
	return t
}

// colorAtOffset returns the interpolated color at a given offset.
// stops must be sorted and non-empty.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode, space color.Space) RGB {
	if len(stops) == 1 {
		return stops[0].Color
	}

	t = applyExtendMode(t, mode)

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	stop1 := stops[idx-1]
	stop2 := stops[idx]

	// Coincident stops produce a hard edge.
	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	mixed := color.Mix(
		color.Triple{stop1.Color.R, stop1.Color.G, stop1.Color.B},
		color.Triple{stop2.Color.R, stop2.Color.G, stop2.Color.B},
		localT, space)
	return RGB{R: mixed[0], G: mixed[1], B: mixed[2]}
}
