package isovox

import "math"

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// Projection maps lattice corners to surface coordinates with a fixed
// isometric affine transform.
type Projection struct {
	// Origin is where corner (0, 0) lands on the surface.
	Origin Point
	// Scale is the length of one lattice edge in surface units.
	Scale float64
}

// Project returns the surface position of c:
//
//	x = X0 + s·cos30°·tx
//	y = Y0 − s·ty − s·sin30°·tx
func (p Projection) Project(c Corner) Point {
	return p.ProjectXY(c.TX(), c.TY())
}

// ProjectXY is Project on raw lattice coordinates.
func (p Projection) ProjectXY(tx, ty int) Point {
	return Point{
		X: p.Origin.X + p.Scale*cos30*float64(tx),
		Y: p.Origin.Y - p.Scale*float64(ty) - p.Scale*sin30*float64(tx),
	}
}

// Triangle returns the projected vertices of the triangle key.
// The first vertex is always the lower apex.
func (p Projection) Triangle(k TriangleKey) [3]Point {
	var pts [3]Point
	for i, c := range k.Vertices() {
		pts[i] = p.Project(c)
	}
	return pts
}
