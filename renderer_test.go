package isovox

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// paintCall is one Surface call captured by captureSurface.
type paintCall struct {
	small bool
	pts   [3]Point
	color RGB
}

// captureSurface records Surface calls in order.
type captureSurface struct {
	calls []paintCall
}

func (s *captureSurface) FillPolygon(pts [3]Point, c RGB) {
	s.calls = append(s.calls, paintCall{pts: pts, color: c})
}

func (s *captureSurface) FillSmallPolygon(pts [3]Point, c RGB) {
	s.calls = append(s.calls, paintCall{small: true, pts: pts, color: c})
}

func (s *captureSurface) polygons() []paintCall {
	var out []paintCall
	for _, c := range s.calls {
		if !c.small {
			out = append(out, c)
		}
	}
	return out
}

// plainConfig disables every source of randomness.
func plainConfig() Config {
	cfg := DefaultConfig()
	cfg.Shading.Jitter = 0
	cfg.Effects.Enabled = false
	return cfg
}

func constantPalette() Palette {
	return Palette{
		Name:  "constant",
		Top:   Solid(RGB{1, 0, 0}),
		Right: Solid(RGB{0, 1, 0}),
		Left:  Solid(RGB{0, 0, 1}),
	}
}

func TestRenderSingleVoxel(t *testing.T) {
	lat := NewLattice()
	set := NewVoxelSet(lat)
	set.Add(0, 0, 0)

	r := NewRenderer(plainConfig())
	mesh, err := r.Build(set, constantPalette())
	require.NoError(t, err)
	require.Equal(t, 6, mesh.Len())

	want := map[TriangleKey]RGB{
		{lat.Corner(0, 0), Right}:  {1, 0, 0},
		{lat.Corner(0, 0), Left}:   {1, 0, 0},
		{lat.Corner(1, -1), Left}:  {0, 1, 0},
		{lat.Corner(0, -1), Right}: {0, 1, 0},
		{lat.Corner(0, -1), Left}:  {0, 0, 1},
		{lat.Corner(-1, 0), Right}: {0, 0, 1},
	}
	for key, c := range want {
		cell, ok := mesh.Get(key.Corner, key.Orient)
		require.True(t, ok, "missing %v %v", key.Corner, key.Orient)
		assert.Equal(t, c, cell.Color, "%v %v", key.Corner, key.Orient)
	}

	surf := &captureSurface{}
	stats, err := r.Render(surf, set, constantPalette())
	require.NoError(t, err)
	assert.Len(t, surf.calls, 6)
	assert.Len(t, surf.polygons(), 6)
	assert.Equal(t, Stats{Voxels: 1, Triangles: 6, Polygons: 6}, stats)

	counts := map[RGB]int{}
	for _, c := range surf.calls {
		counts[c.color]++
	}
	assert.Equal(t, map[RGB]int{{1, 0, 0}: 2, {0, 1, 0}: 2, {0, 0, 1}: 2}, counts)
}

func TestRenderNearerVoxelWinsSharedTriangle(t *testing.T) {
	for _, order := range [][2][3]int{{{0, 0, 0}, {0, 0, 1}}, {{0, 0, 1}, {0, 0, 0}}} {
		lat := NewLattice()
		set := NewVoxelSet(lat)
		for _, c := range order {
			set.Add(c[0], c[1], c[2])
		}

		mesh, err := NewRenderer(plainConfig()).Build(set, constantPalette())
		require.NoError(t, err)

		cell, ok := mesh.Get(lat.Corner(1, -1), Left)
		require.True(t, ok)
		assert.Equal(t, RGB{1, 0, 0}, cell.Color, "up face of the front voxel, order %v", order)
		assert.Equal(t, lat.Voxel(0, 0, 1).DepthKey(), cell.Depth)
	}
}

func TestRenderEmptySet(t *testing.T) {
	surf := &captureSurface{}
	stats, err := NewRenderer(DefaultConfig()).Render(surf, NewVoxelSet(NewLattice()), constantPalette())
	require.NoError(t, err)
	assert.Empty(t, surf.calls)
	assert.Equal(t, Stats{}, stats)

	_, err = NewRenderer(DefaultConfig()).Render(surf, nil, constantPalette())
	require.NoError(t, err)
	assert.Empty(t, surf.calls)
}

func TestRenderRejectsEmptyGradient(t *testing.T) {
	set := NewVoxelSet(NewLattice())
	set.Add(0, 0, 0)
	p := constantPalette()
	p.Right = NewGradient()

	surf := &captureSurface{}
	_, err := NewRenderer(DefaultConfig()).Render(surf, set, p)
	require.ErrorIs(t, err, ErrNoColorStops)
	assert.Empty(t, surf.calls, "nothing is painted when the palette is invalid")
}

func TestRenderPaintsFarthestFirst(t *testing.T) {
	lat := NewLattice()
	set := NewVoxelSet(lat)
	set.Add(0, 0, 1) // nearer, inserted first
	set.Add(0, 0, 0)
	set.Add(0, 3, 0) // highest, nearest of all

	r := NewRenderer(plainConfig())
	mesh, err := r.Build(set, constantPalette())
	require.NoError(t, err)

	surf := &captureSurface{}
	r.Paint(surf, mesh)
	require.Len(t, surf.calls, mesh.Len())

	// Recover depths by matching painted triangles back to mesh entries.
	depthOf := map[[3]Point]float64{}
	for tri := range mesh.All() {
		depthOf[r.Projection().Triangle(tri.Key)] = tri.Cell.Depth
	}
	prev := depthOf[surf.calls[0].pts]
	for _, c := range surf.calls[1:] {
		d, ok := depthOf[c.pts]
		require.True(t, ok)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
}

func TestRenderReproducible(t *testing.T) {
	set := NewVoxelSet(NewLattice())
	for x := range 4 {
		for z := range 4 {
			for y := 0; y <= (x+z)%3; y++ {
				set.Add(x, y, z)
			}
		}
	}
	p := constantPalette()
	p.TopStyle = StyleTuft

	r := NewRenderer(DefaultConfig())
	a, b := &captureSurface{}, &captureSurface{}
	_, err := r.Render(a, set, p)
	require.NoError(t, err)
	_, err = r.Render(b, set, p)
	require.NoError(t, err)
	assert.Equal(t, a.calls, b.calls)

	// Two renderers sharing a seed agree as well.
	c := &captureSurface{}
	_, err = NewRenderer(DefaultConfig(), WithRand(rand.New(rand.NewPCG(3, 4)))).Render(c, set, p)
	require.NoError(t, err)
	d := &captureSurface{}
	_, err = NewRenderer(DefaultConfig(), WithRand(rand.New(rand.NewPCG(3, 4)))).Render(d, set, p)
	require.NoError(t, err)
	assert.Equal(t, c.calls, d.calls)
}

func TestRenderJitterBounded(t *testing.T) {
	set := NewVoxelSet(NewLattice())
	for x := range 5 {
		set.Add(x, 0, 0)
	}
	gray := Solid(RGB{0.5, 0.5, 0.5})
	p := Palette{Top: gray, Left: gray, Right: gray}

	cfg := plainConfig()
	cfg.Shading.Jitter = 0.05
	surf := &captureSurface{}
	_, err := NewRenderer(cfg).Render(surf, set, p)
	require.NoError(t, err)

	varied := false
	for _, c := range surf.calls {
		for _, ch := range []float64{c.color.R, c.color.G, c.color.B} {
			assert.InDelta(t, 0.5, ch, 0.05+1e-12)
			if ch != 0.5 {
				varied = true
			}
		}
	}
	assert.True(t, varied, "jitter perturbs colors")
}

func TestRenderClampsAtSurface(t *testing.T) {
	set := NewVoxelSet(NewLattice())
	set.Add(0, 0, 0)
	hot := Solid(RGB{2, -1, 0.5})

	surf := &captureSurface{}
	_, err := NewRenderer(plainConfig()).Render(surf, set, Palette{Top: hot, Left: hot, Right: hot})
	require.NoError(t, err)
	for _, c := range surf.calls {
		assert.Equal(t, RGB{1, 0, 0.5}, c.color)
	}
}

func TestRenderLightness(t *testing.T) {
	lat := NewLattice()
	set := NewVoxelSet(lat)
	set.Add(0, 4, 0)
	r := NewRenderer(DefaultConfig())

	l, shadowed := r.Lightness(set, lat.Voxel(0, 4, 0), FaceUp)
	assert.False(t, shadowed)
	assert.InDelta(t, 4.0/20+0.2+0.3, l, 1e-12)

	l, shadowed = r.Lightness(set, lat.Voxel(0, 4, 0), FaceRight)
	assert.False(t, shadowed)
	assert.InDelta(t, 4.0/20+0+0.3, l, 1e-12)

	// A blocker on the sun ray removes the bonus.
	set.Add(2, 6, 2)
	l, shadowed = r.Lightness(set, lat.Voxel(0, 4, 0), FaceUp)
	assert.True(t, shadowed)
	assert.InDelta(t, 4.0/20+0.2, l, 1e-12)
}

func TestRenderShadedGradient(t *testing.T) {
	lat := NewLattice()
	set := NewVoxelSet(lat)
	set.Add(0, 0, 0)
	set.Add(2, 2, 2) // shades the up face of (0,0,0)

	ramp := Even(Black, White)
	p := Palette{Top: ramp, Left: ramp, Right: ramp}
	mesh, err := NewRenderer(plainConfig()).Build(set, p)
	require.NoError(t, err)

	shaded, ok := mesh.Get(lat.Corner(0, 0), Right)
	require.True(t, ok)
	lit, ok := mesh.Get(lat.Corner(4, 0), Right)
	require.True(t, ok)
	assertRGBNear(t, ramp.At(0.2), shaded.Color, 1e-12)
	assertRGBNear(t, ramp.At(2.0/20+0.2+0.3), lit.Color, 1e-12)
}

func TestRenderEffects(t *testing.T) {
	lat := NewLattice()
	set := NewVoxelSet(lat)
	set.Add(0, 0, 0)
	p := constantPalette()
	p.TopStyle = StyleTuft

	cfg := plainConfig()
	cfg.Effects = EffectsConfig{Enabled: true, Shapes: 3, Size: 2, DepthBias: 0.001, Shade: 0.5}

	surf := &captureSurface{}
	stats, err := NewRenderer(cfg).Render(surf, set, p)
	require.NoError(t, err)

	// Two decorated triangles, two edges each, three blades per edge.
	assert.Equal(t, 2, stats.Effects)
	assert.Equal(t, 12, stats.SmallPolygons)
	assert.Equal(t, 6, stats.Polygons)

	var small []paintCall
	for i, c := range surf.calls {
		if !c.small {
			continue
		}
		small = append(small, c)
		assert.Equal(t, RGB{0.5, 0, 0}, c.color)
		// Blades come after the triangle they decorate.
		assert.Greater(t, i, 0)
		// Each blade points up on screen.
		assert.Less(t, c.pts[2].Y, c.pts[0].Y)
	}
	assert.Len(t, small, 12)

	// Disabling effects drops the overlay entirely.
	cfg.Effects.Enabled = false
	surf = &captureSurface{}
	_, err = NewRenderer(cfg).Render(surf, set, p)
	require.NoError(t, err)
	assert.Len(t, surf.calls, 6)
}

func TestWithSunRay(t *testing.T) {
	lat := NewLattice()
	set := NewVoxelSet(lat)
	set.Add(0, 0, 0)
	set.Add(2, 2, 2)

	blind := NewRenderer(DefaultConfig(), WithSunRay(SunRay{Direction: SunDirection, MaxDistance: 0, StepSize: 1}))
	_, shadowed := blind.Lightness(set, lat.Voxel(0, 0, 0), FaceUp)
	assert.False(t, shadowed)
}
