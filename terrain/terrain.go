// Package terrain builds voxel sets procedurally.
//
// Every builder is deterministic: the same Params always produce the same
// set with voxels inserted in the same order, so renders of a preset are
// reproducible.
package terrain

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/isovox"
)

// ErrUnknown is returned by Build for names missing from the preset table.
var ErrUnknown = errors.New("terrain: unknown scene")

// Params sizes a scene. Width runs along x, Depth along z.
type Params struct {
	Width  int
	Depth  int
	Height int // maximum column height; builders treat it as a cap
	Seed   uint64
}

// DefaultParams is a small square scene.
func DefaultParams() Params {
	return Params{Width: 16, Depth: 16, Height: 8, Seed: 1}
}

func (p Params) validate() error {
	if p.Width <= 0 || p.Depth <= 0 {
		return fmt.Errorf("terrain: footprint %dx%d must be positive", p.Width, p.Depth)
	}
	if p.Height < 1 {
		return fmt.Errorf("terrain: height %d must be at least 1", p.Height)
	}
	return nil
}

// Builder fills a new voxel set on lat.
type Builder func(lat *isovox.Lattice, p Params) *isovox.VoxelSet

// Presets maps scene names to builders.
type Presets map[string]Builder

// DefaultPresets returns the built-in scenes.
func DefaultPresets() Presets {
	return Presets{
		"flat":    Flat,
		"hills":   Hills,
		"pyramid": Pyramid,
		"towers":  Towers,
	}
}

// Names returns the preset names in sorted order.
func (ps Presets) Names() []string {
	return slices.Sorted(maps.Keys(ps))
}

// Build runs the builder called name.
func (ps Presets) Build(name string, lat *isovox.Lattice, p Params) (*isovox.VoxelSet, error) {
	b, ok := ps[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknown, name, ps.Names())
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	set := b(lat, p)
	isovox.Logger().Debug("terrain: built scene",
		"scene", name,
		"voxels", set.Len(),
		"seed", p.Seed)
	return set, nil
}

// Heightmap builds columns from y=0 up to h(x, z) inclusive. Columns with
// a negative height are left empty.
func Heightmap(lat *isovox.Lattice, p Params, h func(x, z int) int) *isovox.VoxelSet {
	set := isovox.NewVoxelSet(lat)
	for x := range p.Width {
		for z := range p.Depth {
			top := min(h(x, z), p.Height-1)
			for y := 0; y <= top; y++ {
				set.Add(x, y, z)
			}
		}
	}
	return set
}

// Flat is a single layer of voxels.
func Flat(lat *isovox.Lattice, p Params) *isovox.VoxelSet {
	return Heightmap(lat, p, func(int, int) int { return 0 })
}

// Pyramid is a stepped pyramid centered on the footprint.
func Pyramid(lat *isovox.Lattice, p Params) *isovox.VoxelSet {
	return Heightmap(lat, p, func(x, z int) int {
		return min(x, z, p.Width-1-x, p.Depth-1-z)
	})
}
