package recording

import (
	"errors"
	"image"
	"io"

	"github.com/gogpu/isovox"
)

// ErrNotEnded is returned by output methods called before End.
var ErrNotEnded = errors.New("recording: backend output requested before End")

// Backend is the interface that all export backends must implement.
// Backends receive paint commands and translate them to their output
// format (raster pixels, SVG elements, etc.). Because a Backend is also an
// isovox.Surface, a renderer can paint into it directly without a
// Recording in between, provided Begin was called first.
//
// # Implementation Contract
//
// Each backend must:
//  1. Register in init() using recording.Register()
//  2. Accept Begin before any drawing and End after the last one
//  3. Treat colors as already clamped
//
// # Example Backend Registration
//
//	func init() {
//	    recording.Register("pdf", func() recording.Backend {
//	        return NewPDFBackend()
//	    })
//	}
type Backend interface {
	isovox.Surface

	// Begin initializes the backend for rendering at the given dimensions.
	// Returns an error if initialization fails.
	Begin(width, height int) error

	// End finalizes the rendering and prepares the output.
	End() error

	// Clear fills the whole canvas with c.
	Clear(c isovox.RGB)
}

// WriterBackend extends Backend with the ability to write output to an io.Writer.
type WriterBackend interface {
	Backend

	// WriteTo writes the rendered content to the given writer.
	// This should only be called after End().
	WriteTo(w io.Writer) (int64, error)
}

// FileBackend extends Backend with the ability to save output directly to a file.
type FileBackend interface {
	Backend

	// SaveToFile saves the rendered content to a file at the given path.
	// This should only be called after End().
	SaveToFile(path string) error

	// Ext returns the conventional file extension, including the dot.
	Ext() string
}

// ImageBackend extends Backend with access to the rasterized image.
type ImageBackend interface {
	Backend

	// Image returns the rendered image, or nil before Begin.
	Image() image.Image
}
