package terrain

import (
	"math/rand/v2"

	"github.com/gogpu/isovox"
)

// towerDensity is the chance a ground column carries a tower.
const towerDensity = 0.12

// Towers is flat ground with scattered pillars of random height.
func Towers(lat *isovox.Lattice, p Params) *isovox.VoxelSet {
	rng := rand.New(rand.NewPCG(p.Seed, 0x7077e25))
	heights := make(map[[2]int]int)
	for x := range p.Width {
		for z := range p.Depth {
			if rng.Float64() < towerDensity {
				heights[[2]int{x, z}] = 1 + rng.IntN(max(p.Height-1, 1))
			}
		}
	}
	return Heightmap(lat, p, func(x, z int) int {
		return heights[[2]int{x, z}]
	})
}
