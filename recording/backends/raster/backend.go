// Package raster renders recordings to an RGBA image with the
// golang.org/x/image/vector scanline rasterizer and encodes them as PNG.
//
// Polygons are anti-aliased and composited with draw.Over, so triangles
// painted later cover earlier ones exactly like the painter's algorithm
// expects.
//
// # Example
//
//	// Import to register the backend
//	import _ "github.com/gogpu/isovox/recording/backends/raster"
//
//	backend, _ := recording.NewBackend("raster")
//	rec.Playback(backend)
//	backend.(recording.FileBackend).SaveToFile("scene.png")
//
// The backend is also an isovox.Surface, so a renderer can paint into it
// directly between Begin and End.
package raster

import (
	"bufio"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/isovox"
	"github.com/gogpu/isovox/recording"
)

func init() {
	recording.Register("raster", func() recording.Backend {
		return NewBackend()
	})
}

// Backend renders recordings to a pixel image.
type Backend struct {
	img   *image.RGBA
	ras   *vector.Rasterizer
	ended bool
}

var (
	_ recording.Backend       = (*Backend)(nil)
	_ recording.WriterBackend = (*Backend)(nil)
	_ recording.FileBackend   = (*Backend)(nil)
	_ recording.ImageBackend  = (*Backend)(nil)
)

// NewBackend creates a new raster backend.
// The backend must be initialized with Begin before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Begin allocates a transparent canvas of the given size.
func (b *Backend) Begin(width, height int) error {
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	b.ras = vector.NewRasterizer(width, height)
	b.ended = false
	return nil
}

// End finalizes the rendering.
// After End is called, output methods (WriteTo, SaveToFile) can be used.
func (b *Backend) End() error {
	b.ended = true
	return nil
}

// Clear replaces every pixel with c.
func (b *Backend) Clear(c isovox.RGB) {
	if b.img == nil {
		return
	}
	draw.Draw(b.img, b.img.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// FillPolygon fills a triangle with a flat color.
func (b *Backend) FillPolygon(pts [3]isovox.Point, c isovox.RGB) {
	b.fill(pts, c)
}

// FillSmallPolygon fills an overlay shape. Raster output does not
// distinguish it from a mesh triangle.
func (b *Backend) FillSmallPolygon(pts [3]isovox.Point, c isovox.RGB) {
	b.fill(pts, c)
}

func (b *Backend) fill(pts [3]isovox.Point, c isovox.RGB) {
	if b.img == nil {
		return
	}
	// Rasterize only the triangle's pixel box so cost tracks its area.
	box := triangleBounds(pts).Intersect(b.img.Bounds())
	if box.Empty() {
		return
	}
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	b.ras.Reset(box.Dx(), box.Dy())
	b.ras.DrawOp = draw.Over
	b.ras.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	b.ras.LineTo(float32(pts[1].X-ox), float32(pts[1].Y-oy))
	b.ras.LineTo(float32(pts[2].X-ox), float32(pts[2].Y-oy))
	b.ras.ClosePath()
	b.ras.Draw(b.img, box, image.NewUniform(c.NRGBA()), image.Point{})
}

// triangleBounds returns the smallest pixel rectangle covering pts.
func triangleBounds(pts [3]isovox.Point) image.Rectangle {
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// WriteTo writes the rendered content as PNG to the given writer.
func (b *Backend) WriteTo(w io.Writer) (int64, error) {
	if !b.ended || b.img == nil {
		return 0, recording.ErrNotEnded
	}
	cw := &countingWriter{w: w}
	err := png.Encode(cw, b.img)
	return cw.n, err
}

// SaveToFile saves the rendered content as PNG to a file.
func (b *Backend) SaveToFile(path string) (err error) {
	if !b.ended || b.img == nil {
		return recording.ErrNotEnded
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if _, err = b.WriteTo(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// Ext implements recording.FileBackend.
func (b *Backend) Ext() string {
	return ".png"
}

// Image returns the rendered image, or nil before Begin.
func (b *Backend) Image() image.Image {
	if b.img == nil {
		return nil
	}
	return b.img
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
