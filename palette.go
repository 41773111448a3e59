package isovox

import "fmt"

// Ramp maps a lightness scalar, nominally in [0, 1], to a color.
// *Gradient, Solid and RampFunc implement Ramp.
type Ramp interface {
	At(t float64) RGB
}

// validator is implemented by ramps that can be misconfigured.
type validator interface {
	Validate() error
}

// RampFunc adapts an ordinary function to the Ramp interface.
type RampFunc func(t float64) RGB

// At implements Ramp.
func (f RampFunc) At(t float64) RGB { return f(t) }

// Solid is a Ramp that ignores lightness and returns one color.
type Solid RGB

// At implements Ramp.
func (s Solid) At(float64) RGB { return RGB(s) }

// Palette holds one ramp per visible cube face and the style stamped on
// top faces.
type Palette struct {
	Name     string
	Top      Ramp
	Left     Ramp
	Right    Ramp
	TopStyle Style
}

// Ramp returns the ramp that colors the given face.
func (p Palette) Ramp(f Face) Ramp {
	switch f {
	case FaceLeft:
		return p.Left
	case FaceRight:
		return p.Right
	default:
		return p.Top
	}
}

// Validate checks that every face has a usable ramp. A gradient without
// color stops yields an error wrapping ErrNoColorStops.
func (p Palette) Validate() error {
	for _, f := range Faces {
		r := p.Ramp(f)
		if r == nil {
			return fmt.Errorf("isovox: palette %q: %s ramp is nil: %w", p.Name, f, ErrNoColorStops)
		}
		if v, ok := r.(validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("isovox: palette %q: %s ramp: %w", p.Name, f, err)
			}
		}
	}
	return nil
}
