package isovox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRGBNear(t *testing.T, want, got RGB, delta float64) {
	t.Helper()
	assert.InDelta(t, want.R, got.R, delta, "R")
	assert.InDelta(t, want.G, got.G, delta, "G")
	assert.InDelta(t, want.B, got.B, delta, "B")
}

func TestGradientAt(t *testing.T) {
	g := NewGradient(
		ColorStop{Offset: 1, Color: White},
		ColorStop{Offset: 0, Color: Black},
	)

	tests := []struct {
		name string
		t    float64
		want RGB
	}{
		{"start", 0, Black},
		{"end", 1, White},
		{"middle", 0.5, RGB{0.5, 0.5, 0.5}},
		{"quarter", 0.25, RGB{0.25, 0.25, 0.25}},
		{"below pads", -3, Black},
		{"above pads", 7, White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertRGBNear(t, tt.want, g.At(tt.t), 1e-9)
		})
	}
}

func TestGradientExtendModes(t *testing.T) {
	g := Even(Black, White)

	g.SetExtend(ExtendRepeat)
	assertRGBNear(t, RGB{0.25, 0.25, 0.25}, g.At(1.25), 1e-9)

	g.SetExtend(ExtendReflect)
	assertRGBNear(t, RGB{0.75, 0.75, 0.75}, g.At(1.25), 1e-9)
}

func TestGradientLinearBlend(t *testing.T) {
	g := Even(Black, White).SetLinearBlend(true)
	mid := g.At(0.5)
	// Blending in linear light brightens the sRGB midpoint.
	assert.Greater(t, mid.R, 0.7)
	assertRGBNear(t, White, g.At(1), 1e-9)
}

func TestGradientSingleStop(t *testing.T) {
	g := NewGradient(ColorStop{Offset: 0.5, Color: Red})
	for _, x := range []float64{-1, 0, 0.5, 1, 2} {
		assert.Equal(t, Red, g.At(x))
	}
}

func TestGradientCoincidentStops(t *testing.T) {
	g := NewGradient(
		ColorStop{Offset: 0, Color: Black},
		ColorStop{Offset: 0.5, Color: Red},
		ColorStop{Offset: 0.5, Color: Blue},
		ColorStop{Offset: 1, Color: White},
	)
	assertRGBNear(t, Red, g.At(0.5), 1e-9)
	assertRGBNear(t, Blue.Lerp(White, 0.5), g.At(0.75), 1e-9)
}

func TestGradientNoStopsFailsFast(t *testing.T) {
	g := NewGradient()
	require.ErrorIs(t, g.Validate(), ErrNoColorStops)
	assert.PanicsWithError(t, ErrNoColorStops.Error(), func() { g.At(0.5) })

	var nilGradient *Gradient
	assert.ErrorIs(t, nilGradient.Validate(), ErrNoColorStops)
}

func TestGradientDoesNotAliasInput(t *testing.T) {
	stops := []ColorStop{{Offset: 1, Color: White}, {Offset: 0, Color: Black}}
	g := NewGradient(stops...)
	assert.Equal(t, 1.0, stops[0].Offset, "input is not sorted in place")

	got := g.Stops()
	got[0].Color = Red
	assert.Equal(t, Black, g.Stops()[0].Color)
}

func TestEven(t *testing.T) {
	stops := Even(Red, Green, Blue).Stops()
	require.Len(t, stops, 3)
	assert.Equal(t, []float64{0, 0.5, 1}, []float64{stops[0].Offset, stops[1].Offset, stops[2].Offset})
}
