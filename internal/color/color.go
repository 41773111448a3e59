// Package color provides the sRGB transfer functions used when
// isovox blends gradient stops.
package color

import "math"

// Space selects the space in which two colors are blended.
type Space uint8

const (
	// SpaceSRGB blends gamma-encoded components directly.
	SpaceSRGB Space = iota
	// SpaceLinear decodes to linear light, blends, and re-encodes.
	SpaceLinear
)

// Triple is a gamma-encoded RGB color with components in [0,1].
type Triple [3]float64

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// Mix interpolates between a and b at t in the given space.
// Inputs and output are gamma-encoded.
func Mix(a, b Triple, t float64, space Space) Triple {
	var out Triple
	for i := range out {
		if space == SpaceLinear {
			la, lb := SRGBToLinear(a[i]), SRGBToLinear(b[i])
			out[i] = LinearToSRGB(la + (lb-la)*t)
			continue
		}
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}
