package isovox

// Face is one of the three cube faces visible from the fixed camera.
type Face uint8

const (
	// FaceUp is the top face, normal +y.
	FaceUp Face = iota
	// FaceLeft faces -x.
	FaceLeft
	// FaceRight faces +z.
	FaceRight
)

// Faces lists the visible faces in stamping order.
var Faces = [...]Face{FaceUp, FaceLeft, FaceRight}

// String implements fmt.Stringer.
func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	default:
		return "up"
	}
}

// Normal returns the outward unit normal of the face in voxel space.
func (f Face) Normal() (dx, dy, dz int) {
	switch f {
	case FaceLeft:
		return -1, 0, 0
	case FaceRight:
		return 0, 0, 1
	default:
		return 0, 1, 0
	}
}

// Keys returns the two triangles covered by the face of a voxel whose
// center line projects through c.
func (f Face) Keys(c Corner) [2]TriangleKey {
	switch f {
	case FaceLeft:
		return [2]TriangleKey{{c.Shift(0, -1), Left}, {c.Shift(-1, 0), Right}}
	case FaceRight:
		return [2]TriangleKey{{c.Shift(1, -1), Left}, {c.Shift(0, -1), Right}}
	default:
		return [2]TriangleKey{{c, Right}, {c, Left}}
	}
}

// Stamper writes cube faces into a Mesh with nearest-wins occlusion.
type Stamper struct {
	// DepthSkew is the x/z weight passed to Voxel.Depth.
	DepthSkew float64
}

// Stamp projects one face of v onto m. Each of the face's two triangles
// takes {depth, colorFn(), style} when it is empty or its stored depth is
// strictly greater; on a tie or a nearer stored cell it is left alone.
// colorFn runs at most once and only if some triangle is written.
// Stamp reports how many triangles were written.
func (s Stamper) Stamp(m *Mesh, v Voxel, f Face, style Style, colorFn func() RGB) int {
	depth := v.Depth(s.DepthSkew)

	var (
		color   RGB
		colored bool
		written int
	)
	for _, k := range f.Keys(v.Corner()) {
		m.Update(k.Corner, k.Orient, func(cur Cell, ok bool) Cell {
			if ok && cur.Depth <= depth {
				return cur
			}
			if !colored {
				color, colored = colorFn(), true
			}
			written++
			return Cell{Depth: depth, Color: color, Style: style}
		})
	}
	return written
}
