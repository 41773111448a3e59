package isovox

import "iter"

// Orientation selects one of the two triangles that have a corner as
// their lower apex.
type Orientation uint8

const (
	// Left is the triangle c, c+(0,1), c+(-1,1).
	Left Orientation = iota
	// Right is the triangle c, c+(1,0), c+(0,1).
	Right
)

// String implements fmt.Stringer.
func (o Orientation) String() string {
	if o == Right {
		return "right"
	}
	return "left"
}

// TriangleKey identifies one visible triangle of the lattice.
type TriangleKey struct {
	Corner Corner
	Orient Orientation
}

// Vertices returns the three lattice corners of the triangle, lower apex
// first.
func (k TriangleKey) Vertices() [3]Corner {
	c := k.Corner
	if k.Orient == Right {
		return [3]Corner{c, c.Shift(1, 0), c.Shift(0, 1)}
	}
	return [3]Corner{c, c.Shift(0, 1), c.Shift(-1, 1)}
}

// Style tags a cell for optional decoration.
type Style uint8

const (
	// StyleFlat is painted as a plain polygon.
	StyleFlat Style = iota
	// StyleTuft additionally receives the blade overlay when effects
	// are enabled.
	StyleTuft
)

// String implements fmt.Stringer.
func (s Style) String() string {
	switch s {
	case StyleTuft:
		return "tuft"
	default:
		return "flat"
	}
}

// Cell is the painted state of one triangle.
type Cell struct {
	Depth float64
	Color RGB
	Style Style
}

// Triangle is a populated mesh entry.
type Triangle struct {
	Key  TriangleKey
	Cell Cell
}

// Mesh is a sparse store of triangle cells addressed by corner and
// orientation. Entries are never removed. It is owned by one render and
// is not safe for concurrent use.
type Mesh struct {
	index map[TriangleKey]int
	tris  []Triangle
}

// NewMesh creates an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{index: make(map[TriangleKey]int)}
}

// Get returns the cell at (c, o) and whether it has been painted.
func (m *Mesh) Get(c Corner, o Orientation) (Cell, bool) {
	i, ok := m.index[TriangleKey{c, o}]
	if !ok {
		return Cell{}, false
	}
	return m.tris[i].Cell, true
}

// Set stores cell at (c, o) unconditionally.
func (m *Mesh) Set(c Corner, o Orientation, cell Cell) {
	m.Update(c, o, func(Cell, bool) Cell { return cell })
}

// Update replaces the cell at (c, o) with fn(current, present).
// fn sees present == false when nothing is stored yet and must always
// return the cell to keep.
func (m *Mesh) Update(c Corner, o Orientation, fn func(cur Cell, ok bool) Cell) {
	key := TriangleKey{c, o}
	if i, ok := m.index[key]; ok {
		m.tris[i].Cell = fn(m.tris[i].Cell, true)
		return
	}
	m.index[key] = len(m.tris)
	m.tris = append(m.tris, Triangle{Key: key, Cell: fn(Cell{}, false)})
}

// Len returns the number of populated triangles.
func (m *Mesh) Len() int { return len(m.tris) }

// All returns every populated triangle. The sequence is finite and can be
// iterated more than once; the order is first-write order and callers
// that need depth order must sort.
func (m *Mesh) All() iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for _, t := range m.tris {
			if !yield(t) {
				return
			}
		}
	}
}
