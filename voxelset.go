package isovox

import (
	"iter"
	"math"
)

// VoxelSet is the scene description: a set of unique voxels on one
// Lattice. Iteration follows insertion order so renders are reproducible.
//
// A VoxelSet is not safe for concurrent mutation. The renderer only
// reads it.
type VoxelSet struct {
	lat   *Lattice
	order []Voxel
	index map[Voxel]struct{}
}

// NewVoxelSet creates an empty set. A nil lattice selects DefaultLattice.
func NewVoxelSet(lat *Lattice) *VoxelSet {
	if lat == nil {
		lat = DefaultLattice
	}
	return &VoxelSet{
		lat:   lat,
		index: make(map[Voxel]struct{}),
	}
}

// Lattice returns the canonicalization table the set is bound to.
func (s *VoxelSet) Lattice() *Lattice { return s.lat }

// Add inserts voxel (x, y, z) and reports whether it was new.
func (s *VoxelSet) Add(x, y, z int) bool {
	return s.Insert(s.lat.Voxel(x, y, z))
}

// Insert adds v and reports whether it was new.
// v must belong to the set's lattice.
func (s *VoxelSet) Insert(v Voxel) bool {
	if v.Lattice() != s.lat {
		panic("isovox: voxel from a different lattice")
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

// Contains reports whether v is in the set.
func (s *VoxelSet) Contains(v Voxel) bool {
	_, ok := s.index[v]
	return ok
}

// Has reports whether (x, y, z) is in the set without growing the lattice.
func (s *VoxelSet) Has(x, y, z int) bool {
	v, ok := s.lat.LookupVoxel(x, y, z)
	if !ok {
		return false
	}
	return s.Contains(v)
}

// Len returns the number of voxels.
func (s *VoxelSet) Len() int { return len(s.order) }

// All returns the voxels in insertion order.
func (s *VoxelSet) All() iter.Seq[Voxel] {
	return func(yield func(Voxel) bool) {
		for _, v := range s.order {
			if !yield(v) {
				return
			}
		}
	}
}

// Box is an inclusive integer bounding box.
type Box struct {
	Min, Max [3]int
}

// Bounds returns the bounding box of the set and false if it is empty.
func (s *VoxelSet) Bounds() (Box, bool) {
	if len(s.order) == 0 {
		return Box{}, false
	}
	b := Box{
		Min: [3]int{math.MaxInt, math.MaxInt, math.MaxInt},
		Max: [3]int{math.MinInt, math.MinInt, math.MinInt},
	}
	for _, v := range s.order {
		c := [3]int{v.X(), v.Y(), v.Z()}
		for i := range c {
			b.Min[i] = min(b.Min[i], c[i])
			b.Max[i] = max(b.Max[i], c[i])
		}
	}
	return b, true
}
