package recording

import (
	"math"

	"github.com/gogpu/isovox"
)

// Recorder captures paint commands. It implements isovox.Surface.
// Use FinishRecording to obtain an immutable Recording that can be
// replayed to different backends.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	width, height int
	commands      []Command
}

// Ensure Recorder can be handed to a renderer.
var _ isovox.Surface = (*Recorder)(nil)

// NewRecorder creates a new Recorder for the given dimensions.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 256),
	}
}

// Width returns the width of the recording canvas.
func (r *Recorder) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recorder) Height() int {
	return r.height
}

// Len returns the number of commands recorded so far.
func (r *Recorder) Len() int {
	return len(r.commands)
}

// Clear records a full-canvas fill.
func (r *Recorder) Clear(c isovox.RGB) {
	r.commands = append(r.commands, ClearCommand{Color: c.Clamp()})
}

// FillPolygon implements isovox.Surface.
func (r *Recorder) FillPolygon(pts [3]isovox.Point, c isovox.RGB) {
	r.commands = append(r.commands, FillPolygonCommand{Points: pts, Color: c})
}

// FillSmallPolygon implements isovox.Surface.
func (r *Recorder) FillSmallPolygon(pts [3]isovox.Point, c isovox.RGB) {
	r.commands = append(r.commands, FillSmallPolygonCommand{Points: pts, Color: c})
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. After calling FinishRecording, the Recorder should not be used
// again.
func (r *Recorder) FinishRecording() *Recording {
	return &Recording{
		width:    r.width,
		height:   r.height,
		commands: r.commands,
	}
}

// Recording is an immutable container for recorded paint commands.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recording canvas.
func (r *Recording) Width() int {
	return r.width
}

// Height returns the height of the recording canvas.
func (r *Recording) Height() int {
	return r.height
}

// Commands returns the recorded commands. Callers must not modify the
// returned slice.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Count returns how many commands of type t were recorded.
func (r *Recording) Count(t CommandType) int {
	n := 0
	for _, cmd := range r.commands {
		if cmd.Type() == t {
			n++
		}
	}
	return n
}

// Bounds returns the bounding box of every polygon in the recording and
// false if there is none.
func (r *Recording) Bounds() (minPt, maxPt isovox.Point, ok bool) {
	minPt = isovox.Point{X: math.Inf(1), Y: math.Inf(1)}
	maxPt = isovox.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, cmd := range r.commands {
		var pts [3]isovox.Point
		switch c := cmd.(type) {
		case FillPolygonCommand:
			pts = c.Points
		case FillSmallPolygonCommand:
			pts = c.Points
		default:
			continue
		}
		for _, p := range pts {
			minPt.X, minPt.Y = math.Min(minPt.X, p.X), math.Min(minPt.Y, p.Y)
			maxPt.X, maxPt.Y = math.Max(maxPt.X, p.X), math.Max(maxPt.Y, p.Y)
		}
		ok = true
	}
	if !ok {
		return isovox.Point{}, isovox.Point{}, false
	}
	return minPt, maxPt, true
}

// Playback replays the recording to the given backend.
func (r *Recording) Playback(backend Backend) error {
	if err := backend.Begin(r.width, r.height); err != nil {
		return err
	}

	for _, cmd := range r.commands {
		switch c := cmd.(type) {
		case ClearCommand:
			backend.Clear(c.Color)
		case FillPolygonCommand:
			backend.FillPolygon(c.Points, c.Color)
		case FillSmallPolygonCommand:
			backend.FillSmallPolygon(c.Points, c.Color)
		}
	}

	isovox.Logger().Debug("recording: playback complete",
		"commands", len(r.commands),
		"width", r.width,
		"height", r.height)
	return backend.End()
}
