// Package recording captures isovox paint commands for later playback.
//
// A Recorder implements isovox.Surface. Passing it to Renderer.Render
// stores every FillPolygon and FillSmallPolygon call as a typed command
// instead of drawing it. The resulting Recording is immutable and can be
// replayed to any number of backends (raster images, SVG documents, or
// custom formats).
//
// Design follows typed command structs for inspectability, so tests and
// tools can walk Recording.Commands directly.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(800, 600)
//	rec.Clear(isovox.White)
//	if _, err := renderer.Render(rec, set, pal); err != nil {
//	    return err
//	}
//	r := rec.FinishRecording()
//
//	backend, err := recording.NewBackend("raster")
//	if err != nil {
//	    return err
//	}
//	if err := r.Playback(backend); err != nil {
//	    return err
//	}
//
// # Backend Registration
//
// Backends are registered using the database/sql driver pattern. Import a
// backend package with a blank identifier to register it:
//
//	import (
//	    "github.com/gogpu/isovox/recording"
//	    _ "github.com/gogpu/isovox/recording/backends/raster" // "raster"
//	    _ "github.com/gogpu/isovox/recording/backends/svg"    // "svg"
//	)
//
// # Custom Backends
//
// Implement the [Backend] interface and register it with [Register]:
//
//	func init() {
//	    recording.Register("myformat", func() recording.Backend {
//	        return NewMyBackend()
//	    })
//	}
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. Recording objects are immutable
// after FinishRecording and can be played back from multiple goroutines,
// each into its own backend.
package recording
