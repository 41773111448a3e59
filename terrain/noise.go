package terrain

import (
	"math"

	"github.com/gogpu/isovox"
)

// hillCell is the lattice spacing of the coarse noise octave.
const hillCell = 6.0

// hash mixes a seed with integer lattice coordinates (splitmix64 finalizer).
func hash(seed uint64, x, z int) uint64 {
	h := seed ^ uint64(int64(x))*0x9e3779b97f4a7c15 ^ uint64(int64(z))*0xc2b2ae3d27d4eb4f
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}

// lattice returns a pseudo-random value in [0, 1) for a lattice point.
func lattice(seed uint64, x, z int) float64 {
	return float64(hash(seed, x, z)>>11) / (1 << 53)
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

// ValueNoise samples smoothed value noise in [0, 1) at (x, z).
func ValueNoise(seed uint64, x, z float64) float64 {
	x0, z0 := math.Floor(x), math.Floor(z)
	ix, iz := int(x0), int(z0)
	tx, tz := smooth(x-x0), smooth(z-z0)

	a := lattice(seed, ix, iz)
	b := lattice(seed, ix+1, iz)
	c := lattice(seed, ix, iz+1)
	d := lattice(seed, ix+1, iz+1)

	top := a + (b-a)*tx
	bottom := c + (d-c)*tx
	return top + (bottom-top)*tz
}

// Fractal sums octaves of ValueNoise, halving amplitude and doubling
// frequency each time. The result stays in [0, 1).
func Fractal(seed uint64, x, z float64, octaves int) float64 {
	var sum, norm float64
	amp, freq := 1.0, 1.0
	for i := range max(octaves, 1) {
		sum += amp * ValueNoise(seed+uint64(i), x*freq, z*freq)
		norm += amp
		amp /= 2
		freq *= 2
	}
	return sum / norm
}

// Hills is rolling terrain from two octaves of value noise.
func Hills(lat *isovox.Lattice, p Params) *isovox.VoxelSet {
	return Heightmap(lat, p, func(x, z int) int {
		n := Fractal(p.Seed, float64(x)/hillCell, float64(z)/hillCell, 2)
		return int(n * float64(p.Height))
	})
}
