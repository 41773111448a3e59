package isovox

import (
	"fmt"
	"sync"
)

// Lattice canonicalizes lattice corners and voxel coordinates.
//
// Every call with equal coordinates returns the identical handle, so
// handles can be compared with == and used as map keys. The tables are
// append-only: lookups take a read lock and insertion is serialized with
// a double-checked write lock, which keeps the canonicalization invariant
// when several renders share one Lattice.
//
// Coordinates are plain ints; callers that derive them from real numbers
// must round first.
type Lattice struct {
	mu      sync.RWMutex
	corners map[[2]int]*cornerEntry
	voxels  map[[3]int]*voxelEntry
}

type cornerEntry struct {
	lat    *Lattice
	tx, ty int
}

type voxelEntry struct {
	lat     *Lattice
	x, y, z int
	corner  Corner
}

// NewLattice creates an empty canonicalization table.
func NewLattice() *Lattice {
	return &Lattice{
		corners: make(map[[2]int]*cornerEntry),
		voxels:  make(map[[3]int]*voxelEntry),
	}
}

// DefaultLattice is the process-wide table used by Pt and Pt3.
var DefaultLattice = NewLattice()

// Pt returns the canonical corner (tx, ty) on DefaultLattice.
func Pt(tx, ty int) Corner { return DefaultLattice.Corner(tx, ty) }

// Pt3 returns the canonical voxel (x, y, z) on DefaultLattice.
func Pt3(x, y, z int) Voxel { return DefaultLattice.Voxel(x, y, z) }

// Corner returns the canonical handle for lattice corner (tx, ty).
func (l *Lattice) Corner(tx, ty int) Corner {
	key := [2]int{tx, ty}

	l.mu.RLock()
	e, ok := l.corners[key]
	l.mu.RUnlock()
	if ok {
		return Corner{e}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.corners[key]; ok {
		return Corner{e}
	}
	e = &cornerEntry{lat: l, tx: tx, ty: ty}
	l.corners[key] = e
	return Corner{e}
}

// Voxel returns the canonical handle for voxel (x, y, z).
func (l *Lattice) Voxel(x, y, z int) Voxel {
	if v, ok := l.LookupVoxel(x, y, z); ok {
		return v
	}

	// Resolve the projected corner before taking the write lock;
	// Corner takes the same mutex.
	corner := l.Corner(x+z, y-z)
	key := [3]int{x, y, z}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok := l.voxels[key]; ok {
		return Voxel{e}
	}
	e := &voxelEntry{lat: l, x: x, y: y, z: z, corner: corner}
	l.voxels[key] = e
	return Voxel{e}
}

// LookupVoxel returns the handle for (x, y, z) only if it was already
// canonicalized. It never grows the table.
func (l *Lattice) LookupVoxel(x, y, z int) (Voxel, bool) {
	l.mu.RLock()
	e, ok := l.voxels[[3]int{x, y, z}]
	l.mu.RUnlock()
	return Voxel{e}, ok
}

// Len returns the number of canonical corners and voxels.
func (l *Lattice) Len() (corners, voxels int) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.corners), len(l.voxels)
}

// Corner is a canonical vertex of the triangular lattice.
// TY is the vertical axis and TX the up-right diagonal axis.
// The zero Corner is invalid.
type Corner struct {
	e *cornerEntry
}

// TX returns the diagonal coordinate.
func (c Corner) TX() int { return c.e.tx }

// TY returns the vertical coordinate.
func (c Corner) TY() int { return c.e.ty }

// IsValid reports whether c was produced by a Lattice.
func (c Corner) IsValid() bool { return c.e != nil }

// Shift returns the canonical corner (tx+dx, ty+dy) on the same lattice.
func (c Corner) Shift(dx, dy int) Corner {
	return c.e.lat.Corner(c.e.tx+dx, c.e.ty+dy)
}

// String implements fmt.Stringer.
func (c Corner) String() string {
	if c.e == nil {
		return "Corner(invalid)"
	}
	return fmt.Sprintf("Corner(%d, %d)", c.e.tx, c.e.ty)
}

// Voxel is a canonical unit cube position.
// The zero Voxel is invalid.
type Voxel struct {
	e *voxelEntry
}

// X returns the x coordinate.
func (v Voxel) X() int { return v.e.x }

// Y returns the y (height) coordinate.
func (v Voxel) Y() int { return v.e.y }

// Z returns the z coordinate.
func (v Voxel) Z() int { return v.e.z }

// IsValid reports whether v was produced by a Lattice.
func (v Voxel) IsValid() bool { return v.e != nil }

// Lattice returns the table that owns v.
func (v Voxel) Lattice() *Lattice { return v.e.lat }

// Corner returns the lattice corner (x+z, y-z) that the voxel's
// vertical center line projects through.
func (v Voxel) Corner() Corner { return v.e.corner }

// DefaultDepthSkew is the x/z weight used by DepthKey.
const DefaultDepthSkew = 0.01

// Depth returns -y - z*skew + x*skew. Smaller values are nearer the
// viewer. The key only orders voxels whose centers project near the same
// corner; it is not a 3D distance and must not be used as one.
func (v Voxel) Depth(skew float64) float64 {
	return -float64(v.e.y) - float64(v.e.z)*skew + float64(v.e.x)*skew
}

// DepthKey returns Depth(DefaultDepthSkew).
func (v Voxel) DepthKey() float64 {
	return v.Depth(DefaultDepthSkew)
}

// Shift returns the canonical voxel (x+dx, y+dy, z+dz) on the same lattice.
func (v Voxel) Shift(dx, dy, dz int) Voxel {
	return v.e.lat.Voxel(v.e.x+dx, v.e.y+dy, v.e.z+dz)
}

// String implements fmt.Stringer.
func (v Voxel) String() string {
	if v.e == nil {
		return "Voxel(invalid)"
	}
	return fmt.Sprintf("Voxel(%d, %d, %d)", v.e.x, v.e.y, v.e.z)
}
