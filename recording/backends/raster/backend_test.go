package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/vector"

	"github.com/gogpu/isovox"
	"github.com/gogpu/isovox/palette"
	"github.com/gogpu/isovox/recording"
	"github.com/gogpu/isovox/terrain"
)

func bigTriangle() [3]isovox.Point {
	return [3]isovox.Point{{X: 2, Y: 60}, {X: 60, Y: 60}, {X: 2, Y: 2}}
}

func TestRegistered(t *testing.T) {
	assert.True(t, recording.IsRegistered("raster"))
	b, err := recording.NewBackend("raster")
	require.NoError(t, err)
	assert.IsType(t, &Backend{}, b)
}

func TestBackendFillsPolygons(t *testing.T) {
	b := NewBackend()
	assert.Nil(t, b.Image())
	require.NoError(t, b.Begin(64, 64))

	b.Clear(isovox.White)
	b.FillPolygon(bigTriangle(), isovox.Red)
	require.NoError(t, b.End())

	img := b.Image()
	require.NotNil(t, img)
	assert.Equal(t, 64, img.Bounds().Dx())

	// Inside the triangle.
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, color.RGBAModel.Convert(img.At(10, 50)))
	// Outside, the background shows.
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, color.RGBAModel.Convert(img.At(55, 10)))
}

func TestBackendPaintOrder(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Begin(64, 64))
	b.FillPolygon(bigTriangle(), isovox.Red)
	b.FillSmallPolygon(bigTriangle(), isovox.Blue)
	require.NoError(t, b.End())

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(b.Image().At(10, 50)),
		"later fills cover earlier ones")
}

func TestPlaybackAndPNG(t *testing.T) {
	rec := recording.NewRecorder(32, 16)
	rec.Clear(isovox.Black)
	rec.FillPolygon([3]isovox.Point{{X: 0, Y: 16}, {X: 32, Y: 16}, {X: 0, Y: 0}}, isovox.Green)

	b := NewBackend()
	_, err := b.WriteTo(&bytes.Buffer{})
	require.ErrorIs(t, err, recording.ErrNotEnded)

	require.NoError(t, rec.FinishRecording().Playback(b))

	var buf bytes.Buffer
	n, err := b.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 32, decoded.Bounds().Dx())
	assert.Equal(t, 16, decoded.Bounds().Dy())
}

func TestSaveToFile(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Begin(8, 8))
	b.Clear(isovox.Blue)

	path := filepath.Join(t.TempDir(), "out.png")
	require.ErrorIs(t, b.SaveToFile(path), recording.ErrNotEnded)

	require.NoError(t, b.End())
	require.NoError(t, b.SaveToFile(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, color.RGBAModel.Convert(img.At(3, 3)))
	assert.Equal(t, ".png", b.Ext())
}

func TestRenderDirectly(t *testing.T) {
	set := isovox.NewVoxelSet(isovox.NewLattice())
	set.Add(0, 0, 0)

	cfg := isovox.DefaultConfig()
	cfg.Projection = isovox.ProjectionConfig{Scale: 20, OriginX: 32, OriginY: 40}
	cfg.Shading.Jitter = 0
	pal := isovox.Palette{Top: isovox.Solid(isovox.Red), Left: isovox.Solid(isovox.Red), Right: isovox.Solid(isovox.Red)}

	b := NewBackend()
	require.NoError(t, b.Begin(64, 64))
	_, err := isovox.NewRenderer(cfg).Render(b, set, pal)
	require.NoError(t, err)
	require.NoError(t, b.End())

	// The top face sits just above the voxel's corner.
	_, _, _, a := b.Image().At(32, 36).RGBA()
	assert.NotZero(t, a)
	_, _, _, a = b.Image().At(1, 1).RGBA()
	assert.Zero(t, a)
}

// fullCanvasFill rasterizes pts over the whole image, the slow reference.
func fullCanvasFill(img *image.RGBA, pts [3]isovox.Point, c isovox.RGB) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	z.LineTo(float32(pts[1].X), float32(pts[1].Y))
	z.LineTo(float32(pts[2].X), float32(pts[2].Y))
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(c.NRGBA()), image.Point{})
}

func TestFillMatchesFullCanvas(t *testing.T) {
	tris := [][3]isovox.Point{
		{{X: 10.3, Y: 40.7}, {X: 30.9, Y: 30.2}, {X: 10.3, Y: 20.1}},
		{{X: 50, Y: 50}, {X: 51.5, Y: 49}, {X: 50.7, Y: 45.2}},
		{{X: -10, Y: 70}, {X: 20, Y: 55}, {X: -10, Y: 40}}, // off the left edge
		{{X: 60, Y: 70}, {X: 90, Y: 55}, {X: 60, Y: 40}},   // off the right and bottom
	}
	colors := []isovox.RGB{isovox.Red, isovox.Green, isovox.Blue, {R: 0.5, G: 0.25, B: 1}}

	b := NewBackend()
	require.NoError(t, b.Begin(64, 64))
	want := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i, p := range tris {
		b.FillPolygon(p, colors[i])
		fullCanvasFill(want, p, colors[i])
	}
	require.NoError(t, b.End())

	got := b.Image().(*image.RGBA)
	for y := range 64 {
		for x := range 64 {
			g, w := got.RGBAAt(x, y), want.RGBAAt(x, y)
			for _, d := range []int{int(g.R) - int(w.R), int(g.G) - int(w.G), int(g.B) - int(w.B), int(g.A) - int(w.A)} {
				if d < -2 || d > 2 {
					t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
				}
			}
		}
	}
}

func TestFillOutsideCanvasIsNoop(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Begin(16, 16))
	b.FillPolygon([3]isovox.Point{{X: 100, Y: 100}, {X: 120, Y: 90}, {X: 100, Y: 80}}, isovox.Red)
	b.FillSmallPolygon([3]isovox.Point{{X: -9, Y: -1}, {X: -5, Y: -3}, {X: -9, Y: -8}}, isovox.Red)
	require.NoError(t, b.End())

	img := b.Image().(*image.RGBA)
	for _, px := range img.Pix {
		require.Zero(t, px)
	}
}

func TestPlaybackRealisticCanvas(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full-size render in short mode")
	}
	lat := isovox.NewLattice()
	set := terrain.Hills(lat, terrain.Params{Width: 32, Depth: 32, Height: 8, Seed: 1})

	rec := recording.NewRecorder(800, 600)
	rec.Clear(isovox.Black)
	_, err := isovox.NewRenderer(isovox.DefaultConfig()).Render(rec, set, palette.Grass())
	require.NoError(t, err)
	r := rec.FinishRecording()
	require.Greater(t, len(r.Commands()), 5000)

	start := time.Now()
	require.NoError(t, r.Playback(NewBackend()))
	// Each fill touches only its own bounding box; canvas-sized fills took
	// over a minute here.
	assert.Less(t, time.Since(start), 5*time.Second)
}

func BenchmarkPlayback800x600(b *testing.B) {
	set := terrain.Hills(isovox.NewLattice(), terrain.Params{Width: 16, Depth: 16, Height: 8, Seed: 1})
	rec := recording.NewRecorder(800, 600)
	if _, err := isovox.NewRenderer(isovox.DefaultConfig()).Render(rec, set, palette.Grass()); err != nil {
		b.Fatal(err)
	}
	r := rec.FinishRecording()
	backend := NewBackend()

	b.ReportAllocs()
	b.ResetTimer()
	for range b.N {
		if err := r.Playback(backend); err != nil {
			b.Fatal(err)
		}
	}
}
